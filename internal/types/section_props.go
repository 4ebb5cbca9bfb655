//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SectionProps is the typed props payload of a section instance.
// Each section type has exactly one concrete props struct.
type SectionProps interface {
	Section() SectionType
}

// SocialLink is one entry of a hero's socialLinks array
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Username string `json:"username,omitempty"`
}

// HeroProps configures a hero section
type HeroProps struct {
	Title       string       `json:"title,omitempty"`
	Subtitle    string       `json:"subtitle,omitempty"`
	Description string       `json:"description,omitempty"`
	Name        string       `json:"name,omitempty"`
	Location    string       `json:"location,omitempty"`
	AvatarURL   string       `json:"avatarUrl,omitempty"`
	CTAText     string       `json:"ctaText,omitempty"`
	CTALink     string       `json:"ctaLink,omitempty"`
	Layout      string       `json:"layout,omitempty"`
	ShowAvatar  bool         `json:"showAvatar,omitempty"`
	GithubURL   string       `json:"githubUrl,omitempty"`
	LinkedinURL string       `json:"linkedinUrl,omitempty"`
	EmailURL    string       `json:"emailUrl,omitempty"`
	SocialLinks []SocialLink `json:"socialLinks,omitempty"`

	// LinkShape keeps the keys of the declared shape in the JSON output even
	// when they are empty. It is inferred from the keys on decode.
	LinkShape SocialLinkShape `json:"-"`
}

// Section implements SectionProps.
func (HeroProps) Section() SectionType { return SectionHero }

type heroPlain HeroProps

// MarshalJSON implements json.Marshaler.
func (h HeroProps) MarshalJSON() ([]byte, error) {
	out := struct {
		heroPlain
		GithubURL   *string       `json:"githubUrl,omitempty"`
		LinkedinURL *string       `json:"linkedinUrl,omitempty"`
		EmailURL    *string       `json:"emailUrl,omitempty"`
		SocialLinks *[]SocialLink `json:"socialLinks,omitempty"`
	}{heroPlain: heroPlain(h)}

	discrete := h.LinkShape == DiscreteURLs
	keep := func(v string) *string {
		if v == "" && !discrete {
			return nil
		}
		return &v
	}
	out.GithubURL = keep(h.GithubURL)
	out.LinkedinURL = keep(h.LinkedinURL)
	out.EmailURL = keep(h.EmailURL)

	if len(h.SocialLinks) > 0 || h.LinkShape == SocialLinksArray {
		links := h.SocialLinks
		if links == nil {
			links = []SocialLink{}
		}
		out.SocialLinks = &links
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (h *HeroProps) UnmarshalJSON(data []byte) error {
	var plain heroPlain
	if err := json.Unmarshal(data, &plain); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*h = HeroProps(plain)

	_, hasLinks := keys["socialLinks"]
	_, hasGithub := keys["githubUrl"]
	_, hasLinkedin := keys["linkedinUrl"]
	_, hasEmail := keys["emailUrl"]
	switch {
	case hasLinks:
		h.LinkShape = SocialLinksArray
	case hasGithub || hasLinkedin || hasEmail:
		h.LinkShape = DiscreteURLs
	}
	return nil
}

// ExperienceItem is one flattened work entry in the about section
type ExperienceItem struct {
	Role        string   `json:"role"`
	Company     string   `json:"company"`
	Period      string   `json:"period"`
	Description string   `json:"description,omitempty"`
	Highlights  []string `json:"highlights,omitempty"`
}

// AboutProps configures an about section
type AboutProps struct {
	Title        string           `json:"title,omitempty"`
	Description  string           `json:"description,omitempty"`
	ImageURL     string           `json:"imageUrl,omitempty"`
	ShowTimeline bool             `json:"showTimeline,omitempty"`
	Experience   []ExperienceItem `json:"experience,omitempty"`
}

// Section implements SectionProps.
func (AboutProps) Section() SectionType { return SectionAbout }

// SkillItem is one skill rendered in the skills section
type SkillItem struct {
	Name     string  `json:"name"`
	Level    int     `json:"level"`
	Category string  `json:"category,omitempty"`
	Years    float64 `json:"years,omitempty"`
	Status   string  `json:"status"`
}

// SkillsProps configures a skills section
type SkillsProps struct {
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Display     string      `json:"display,omitempty"`
	ShowLevels  bool        `json:"showLevels,omitempty"`
	Skills      []SkillItem `json:"skills,omitempty"`
}

// Section implements SectionProps.
func (SkillsProps) Section() SectionType { return SectionSkills }

// ProjectItem is one project card
type ProjectItem struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Highlights   []string `json:"highlights,omitempty"`
	LiveURL      string   `json:"liveUrl,omitempty"`
	GithubURL    string   `json:"githubUrl,omitempty"`
	CaseStudyURL string   `json:"caseStudyUrl,omitempty"`
	Image        string   `json:"image,omitempty"`
	Year         int      `json:"year,omitempty"`
	Status       string   `json:"status"`
	Category     string   `json:"category,omitempty"`
	Color        string   `json:"color"`
}

// ProjectsProps configures a projects section
type ProjectsProps struct {
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Columns     int           `json:"columns,omitempty"`
	ShowFilters bool          `json:"showFilters,omitempty"`
	Projects    []ProjectItem `json:"projects,omitempty"`
}

// Section implements SectionProps.
func (ProjectsProps) Section() SectionType { return SectionProjects }

// ContactMethod is one way to reach the portfolio owner
type ContactMethod struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Value string `json:"value"`
	Href  string `json:"href,omitempty"`
}

// ContactProps configures a contact section
type ContactProps struct {
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	ShowForm    bool            `json:"showForm,omitempty"`
	Methods     []ContactMethod `json:"methods,omitempty"`
}

// Section implements SectionProps.
func (ContactProps) Section() SectionType { return SectionContact }

// NavLink is a navigation entry
type NavLink struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// NavbarProps configures a navbar section
type NavbarProps struct {
	Brand  string    `json:"brand,omitempty"`
	Links  []NavLink `json:"links,omitempty"`
	Sticky bool      `json:"sticky,omitempty"`
}

// Section implements SectionProps.
func (NavbarProps) Section() SectionType { return SectionNavbar }

// FooterProps configures a footer section
type FooterProps struct {
	Text       string    `json:"text,omitempty"`
	Links      []NavLink `json:"links,omitempty"`
	ShowSocial bool      `json:"showSocial,omitempty"`
}

// Section implements SectionProps.
func (FooterProps) Section() SectionType { return SectionFooter }

// CustomProps carries the free-form configuration of custom (marketplace) sections
type CustomProps map[string]any

// Section implements SectionProps.
func (CustomProps) Section() SectionType { return SectionCustom }

// NewSectionProps returns the zero props value for a section type.
func NewSectionProps(section SectionType) (SectionProps, error) {
	switch section {
	case SectionHero:
		return HeroProps{}, nil
	case SectionAbout:
		return AboutProps{}, nil
	case SectionSkills:
		return SkillsProps{}, nil
	case SectionProjects:
		return ProjectsProps{}, nil
	case SectionContact:
		return ContactProps{}, nil
	case SectionNavbar:
		return NavbarProps{}, nil
	case SectionFooter:
		return FooterProps{}, nil
	case SectionCustom:
		return CustomProps{}, nil
	default:
		return nil, fmt.Errorf("unknown section type %q", section)
	}
}

// DecodeSectionProps decodes raw JSON props into the concrete struct for section.
// Empty or null input yields the zero value.
func DecodeSectionProps(section SectionType, raw []byte) (SectionProps, error) {
	raw = bytes.TrimSpace(raw)
	empty := len(raw) == 0 || bytes.Equal(raw, []byte("null"))

	switch section {
	case SectionHero:
		return decodeInto[HeroProps](raw, empty)
	case SectionAbout:
		return decodeInto[AboutProps](raw, empty)
	case SectionSkills:
		return decodeInto[SkillsProps](raw, empty)
	case SectionProjects:
		return decodeInto[ProjectsProps](raw, empty)
	case SectionContact:
		return decodeInto[ContactProps](raw, empty)
	case SectionNavbar:
		return decodeInto[NavbarProps](raw, empty)
	case SectionFooter:
		return decodeInto[FooterProps](raw, empty)
	case SectionCustom:
		props := CustomProps{}
		if empty {
			return props, nil
		}
		if err := json.Unmarshal(raw, &props); err != nil {
			return nil, fmt.Errorf("failed to decode %s props: %w", section, err)
		}
		return props, nil
	default:
		return nil, fmt.Errorf("unknown section type %q", section)
	}
}

func decodeInto[T SectionProps](raw []byte, empty bool) (SectionProps, error) {
	var props T
	if empty {
		return props, nil
	}
	if err := json.Unmarshal(raw, &props); err != nil {
		return nil, fmt.Errorf("failed to decode %s props: %w", props.Section(), err)
	}
	return props, nil
}
