// Package types provides type definitions for structured data used throughout the portfolio builder.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ResumeDocument is a normalized resume as produced by the resume parser.
// Every field is optional; consumers must tolerate missing sections.
type ResumeDocument struct {
	Basics    Basics      `json:"basics"`
	Skills    []Skill     `json:"skills,omitempty"`
	Work      []Work      `json:"work,omitempty"`
	Projects  []Project   `json:"projects,omitempty"`
	Education []Education `json:"education,omitempty"`
}

// Basics holds the identity and contact block of a resume
type Basics struct {
	Name     string    `json:"name,omitempty"`
	Label    string    `json:"label,omitempty"`
	Email    string    `json:"email,omitempty"`
	Phone    string    `json:"phone,omitempty"`
	Location Location  `json:"location,omitempty"`
	Summary  string    `json:"summary,omitempty"`
	Profiles []Profile `json:"profiles,omitempty"`
	Websites []string  `json:"websites,omitempty"`
}

// Profile is a social or professional network profile
type Profile struct {
	Network  string `json:"network,omitempty"`
	Username string `json:"username,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Location accepts either a free-form string or a structured address.
type Location struct {
	Text        string `json:"-"`
	City        string `json:"city,omitempty"`
	Region      string `json:"region,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
}

// UnmarshalJSON decodes a location given as a plain string or as an object.
func (l *Location) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = Location{}
		return nil
	}
	if data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*l = Location{Text: text}
		return nil
	}

	type structured Location
	var s structured
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*l = Location(s)
	return nil
}

// MarshalJSON writes free-form locations back as strings.
func (l Location) MarshalJSON() ([]byte, error) {
	if l.City == "" && l.Region == "" && l.CountryCode == "" {
		return json.Marshal(l.Text)
	}
	type structured Location
	return json.Marshal(structured(l))
}

// IsZero reports whether no location information is present.
func (l Location) IsZero() bool {
	return l.Display() == ""
}

// Display renders the location as a single line ("city, region").
func (l Location) Display() string {
	if t := strings.TrimSpace(l.Text); t != "" {
		return t
	}
	parts := make([]string, 0, 2)
	if l.City != "" {
		parts = append(parts, l.City)
	}
	if l.Region != "" {
		parts = append(parts, l.Region)
	} else if l.CountryCode != "" {
		parts = append(parts, l.CountryCode)
	}
	return strings.Join(parts, ", ")
}

// Skill is a single skill entry
type Skill struct {
	Name     string  `json:"name,omitempty"`
	Level    int     `json:"level,omitempty"` // 0-100
	Category string  `json:"category,omitempty"`
	Years    float64 `json:"years,omitempty"`
	Status   string  `json:"status,omitempty"`
}

// Work is a single employment entry
type Work struct {
	Company      string   `json:"company,omitempty"`
	Position     string   `json:"position,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	Summary      string   `json:"summary,omitempty"`
	Highlights   []string `json:"highlights,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// Project is a single project entry
type Project struct {
	Name         string      `json:"name,omitempty"`
	Description  string      `json:"description,omitempty"`
	Highlights   []string    `json:"highlights,omitempty"`
	Technologies []string    `json:"technologies,omitempty"`
	URLs         ProjectURLs `json:"urls,omitempty"`
	Year         int         `json:"year,omitempty"`
	Status       string      `json:"status,omitempty"`
	Category     string      `json:"category,omitempty"`
}

// ProjectURLs groups the links attached to a project
type ProjectURLs struct {
	Live      string `json:"live,omitempty"`
	Github    string `json:"github,omitempty"`
	CaseStudy string `json:"caseStudy,omitempty"`
	Image     string `json:"image,omitempty"`
}

// Education is a single education entry
type Education struct {
	Institution string `json:"institution,omitempty"`
	Area        string `json:"area,omitempty"`
	StudyType   string `json:"studyType,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Score       string `json:"score,omitempty"`
}
