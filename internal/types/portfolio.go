//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
)

// PortfolioComponent is one section instance in a portfolio layout.
// Order determines render sequence; IsActive allows soft-disable.
type PortfolioComponent struct {
	Type     SectionType  `json:"type"`
	Variant  string       `json:"variant"`
	Props    SectionProps `json:"props"`
	Styles   Styles       `json:"styles"`
	Order    int          `json:"order"`
	IsActive bool         `json:"isActive"`
}

// UnmarshalJSON decodes props into the concrete struct matching Type.
func (c *PortfolioComponent) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type     SectionType     `json:"type"`
		Variant  string          `json:"variant"`
		Props    json.RawMessage `json:"props"`
		Styles   Styles          `json:"styles"`
		Order    int             `json:"order"`
		IsActive bool            `json:"isActive"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	props, err := DecodeSectionProps(raw.Type, raw.Props)
	if err != nil {
		return fmt.Errorf("component %q: %w", raw.Variant, err)
	}

	*c = PortfolioComponent{
		Type:     raw.Type,
		Variant:  raw.Variant,
		Props:    props,
		Styles:   raw.Styles,
		Order:    raw.Order,
		IsActive: raw.IsActive,
	}
	return nil
}

// SavePortfolioData is the envelope handed to the persistence layer
type SavePortfolioData struct {
	Name        string               `json:"name"`
	Slug        string               `json:"slug"`
	Description string               `json:"description"`
	Layout      []PortfolioComponent `json:"layout"`
	IsPublic    bool                 `json:"isPublic"`
}

// Section returns the first component of the given type, if any.
func (d *SavePortfolioData) Section(section SectionType) (PortfolioComponent, bool) {
	for _, c := range d.Layout {
		if c.Type == section {
			return c, true
		}
	}
	return PortfolioComponent{}, false
}
