package mapper

import (
	"strings"

	"github.com/jonathan/portfolio-builder/internal/types"
)

const (
	maxSkills       = 20
	maxProjects     = 6
	defaultLevel    = 80
	defaultStatus   = "proficient"
	statusLive      = "live"
	statusInProcess = "development"
)

var projectColors = []string{"#ffd23f", "#ff6b35", "#06ffa5", "#4ecdc4", "#96ceb4"}

func buildHero(doc *types.ResumeDocument, shape types.SocialLinkShape) types.HeroProps {
	basics := doc.Basics
	name := strings.TrimSpace(basics.Name)
	greeting := name
	if greeting == "" {
		greeting = "there"
	}

	hero := types.HeroProps{
		Title:       "Hi, I'm " + greeting + " 👋",
		Subtitle:    basics.Label,
		Description: basics.Summary,
		Name:        name,
		Location:    basics.Location.Display(),
		LinkShape:   shape,
	}
	if hero.LinkShape == "" {
		hero.LinkShape = types.SocialLinksArray
	}

	switch hero.LinkShape {
	case types.DiscreteURLs:
		hero.GithubURL = profileURL(basics.Profiles, "github")
		hero.LinkedinURL = profileURL(basics.Profiles, "linkedin")
		if basics.Email != "" {
			hero.EmailURL = "mailto:" + basics.Email
		}
	default:
		for _, p := range basics.Profiles {
			url := normalizeURL(p.URL)
			if url == "" {
				continue
			}
			hero.SocialLinks = append(hero.SocialLinks, types.SocialLink{
				Platform: strings.ToLower(p.Network),
				URL:      url,
				Username: p.Username,
			})
		}
		if basics.Email != "" {
			hero.SocialLinks = append(hero.SocialLinks, types.SocialLink{
				Platform: "email",
				URL:      "mailto:" + basics.Email,
				Username: basics.Email,
			})
		}
	}
	return hero
}

func buildAbout(doc *types.ResumeDocument) types.AboutProps {
	about := types.AboutProps{Description: doc.Basics.Summary}
	for _, w := range doc.Work {
		about.Experience = append(about.Experience, types.ExperienceItem{
			Role:        w.Position,
			Company:     w.Company,
			Period:      period(w.StartDate, w.EndDate),
			Description: w.Summary,
			Highlights:  w.Highlights,
		})
	}
	return about
}

// period renders "start – end", with "Present" for an open-ended role.
func period(start, end string) string {
	if end == "" {
		end = "Present"
	}
	if start == "" {
		return end
	}
	return start + " – " + end
}

func buildSkills(doc *types.ResumeDocument) types.SkillsProps {
	skills := doc.Skills
	if len(skills) > maxSkills {
		skills = skills[:maxSkills]
	}

	props := types.SkillsProps{Skills: make([]types.SkillItem, 0, len(skills))}
	for _, s := range skills {
		level := s.Level
		if level == 0 {
			level = defaultLevel
		}
		status := s.Status
		if status == "" {
			status = defaultStatus
		}
		props.Skills = append(props.Skills, types.SkillItem{
			Name:     strings.ToUpper(s.Name),
			Level:    level,
			Category: strings.ToUpper(s.Category),
			Years:    s.Years,
			Status:   status,
		})
	}
	return props
}

func buildProjects(doc *types.ResumeDocument) types.ProjectsProps {
	projects := doc.Projects
	if len(projects) > maxProjects {
		projects = projects[:maxProjects]
	}

	props := types.ProjectsProps{Projects: make([]types.ProjectItem, 0, len(projects))}
	for i, p := range projects {
		props.Projects = append(props.Projects, types.ProjectItem{
			Title:        p.Name,
			Description:  p.Description,
			Technologies: p.Technologies,
			Highlights:   p.Highlights,
			LiveURL:      p.URLs.Live,
			GithubURL:    p.URLs.Github,
			CaseStudyURL: p.URLs.CaseStudy,
			Image:        p.URLs.Image,
			Year:         p.Year,
			Status:       projectStatus(p),
			Category:     p.Category,
			Color:        projectColors[i%len(projectColors)],
		})
	}
	return props
}

func projectStatus(p types.Project) string {
	switch {
	case p.Status != "":
		return p.Status
	case p.URLs.Live != "":
		return statusLive
	default:
		return statusInProcess
	}
}

// buildContact probes email, phone, location and then each profile, in that order.
func buildContact(doc *types.ResumeDocument) (types.ContactProps, bool) {
	basics := doc.Basics
	var methods []types.ContactMethod

	if basics.Email != "" {
		methods = append(methods, types.ContactMethod{
			Type: "email", Label: "Email", Value: basics.Email, Href: "mailto:" + basics.Email,
		})
	}
	if basics.Phone != "" {
		methods = append(methods, types.ContactMethod{
			Type: "phone", Label: "Phone", Value: basics.Phone, Href: "tel:" + basics.Phone,
		})
	}
	if loc := basics.Location.Display(); loc != "" {
		methods = append(methods, types.ContactMethod{
			Type: "location", Label: "Location", Value: loc,
		})
	}
	for _, p := range basics.Profiles {
		url := normalizeURL(p.URL)
		if url == "" {
			continue
		}
		value := p.Username
		if value == "" {
			value = url
		}
		methods = append(methods, types.ContactMethod{
			Type: strings.ToLower(p.Network), Label: p.Network, Value: value, Href: url,
		})
	}

	if len(methods) == 0 {
		return types.ContactProps{}, false
	}
	return types.ContactProps{Methods: methods}, true
}

func profileURL(profiles []types.Profile, network string) string {
	for _, p := range profiles {
		if strings.EqualFold(p.Network, network) {
			return normalizeURL(p.URL)
		}
	}
	return ""
}

// normalizeURL prepends https:// to urls that lack an http prefix.
func normalizeURL(url string) string {
	url = strings.TrimSpace(url)
	if url == "" || strings.HasPrefix(url, "http") {
		return url
	}
	return "https://" + url
}
