package resume

import (
	"strings"

	"github.com/jonathan/portfolio-builder/internal/types"
)

// Normalize returns a cleaned copy of doc: strings are trimmed, skills and
// projects without a name are dropped, skill levels are clamped to 0..100,
// empty list entries are removed and profiles are de-duplicated by network.
func Normalize(doc *types.ResumeDocument) *types.ResumeDocument {
	if doc == nil {
		return &types.ResumeDocument{}
	}

	out := &types.ResumeDocument{
		Basics: normalizeBasics(doc.Basics),
	}

	for _, s := range doc.Skills {
		s.Name = strings.TrimSpace(s.Name)
		if s.Name == "" {
			continue
		}
		s.Category = strings.TrimSpace(s.Category)
		s.Status = strings.TrimSpace(s.Status)
		s.Level = clamp(s.Level, 0, 100)
		if s.Years < 0 {
			s.Years = 0
		}
		out.Skills = append(out.Skills, s)
	}

	for _, w := range doc.Work {
		w.Company = strings.TrimSpace(w.Company)
		w.Position = strings.TrimSpace(w.Position)
		if w.Company == "" && w.Position == "" {
			continue
		}
		w.StartDate = strings.TrimSpace(w.StartDate)
		w.EndDate = strings.TrimSpace(w.EndDate)
		w.Summary = strings.TrimSpace(w.Summary)
		w.Highlights = cleanList(w.Highlights)
		w.Technologies = cleanList(w.Technologies)
		out.Work = append(out.Work, w)
	}

	for _, p := range doc.Projects {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			continue
		}
		p.Description = strings.TrimSpace(p.Description)
		p.Status = strings.TrimSpace(p.Status)
		p.Category = strings.TrimSpace(p.Category)
		p.Highlights = cleanList(p.Highlights)
		p.Technologies = cleanList(p.Technologies)
		p.URLs = types.ProjectURLs{
			Live:      strings.TrimSpace(p.URLs.Live),
			Github:    strings.TrimSpace(p.URLs.Github),
			CaseStudy: strings.TrimSpace(p.URLs.CaseStudy),
			Image:     strings.TrimSpace(p.URLs.Image),
		}
		out.Projects = append(out.Projects, p)
	}

	for _, e := range doc.Education {
		e.Institution = strings.TrimSpace(e.Institution)
		if e.Institution == "" {
			continue
		}
		e.Area = strings.TrimSpace(e.Area)
		e.StudyType = strings.TrimSpace(e.StudyType)
		out.Education = append(out.Education, e)
	}

	return out
}

func normalizeBasics(b types.Basics) types.Basics {
	out := types.Basics{
		Name:    strings.TrimSpace(b.Name),
		Label:   strings.TrimSpace(b.Label),
		Email:   strings.TrimSpace(b.Email),
		Phone:   strings.TrimSpace(b.Phone),
		Summary: strings.TrimSpace(b.Summary),
		Location: types.Location{
			Text:        strings.TrimSpace(b.Location.Text),
			City:        strings.TrimSpace(b.Location.City),
			Region:      strings.TrimSpace(b.Location.Region),
			CountryCode: strings.TrimSpace(b.Location.CountryCode),
		},
		Websites: dedup(cleanList(b.Websites)),
	}

	seen := make(map[string]bool)
	for _, p := range b.Profiles {
		p.Network = strings.TrimSpace(p.Network)
		p.Username = strings.TrimSpace(p.Username)
		p.URL = strings.TrimSpace(p.URL)
		if p.URL == "" && p.Username == "" {
			continue
		}
		key := strings.ToLower(p.Network)
		if seen[key] {
			continue
		}
		seen[key] = true
		out.Profiles = append(out.Profiles, p)
	}
	return out
}

func cleanList(items []string) []string {
	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func dedup(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
