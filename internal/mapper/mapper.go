// Package mapper turns a resume document into a portfolio layout.
package mapper

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/portfolio-builder/internal/registry"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// DefaultPreset is used when neither a preset nor a variant is chosen for a section
const DefaultPreset = "minimal"

// Section slots. Orders are fixed and never compacted when a section is skipped.
const (
	OrderHero     = 0
	OrderAbout    = 1
	OrderSkills   = 2
	OrderProjects = 3
	OrderContact  = 4
)

// MappedSections are the sections a resume import can produce, in slot order
var MappedSections = []types.SectionType{
	types.SectionHero,
	types.SectionAbout,
	types.SectionSkills,
	types.SectionProjects,
	types.SectionContact,
}

// ChosenVariants maps a section to an explicit variant id
type ChosenVariants map[types.SectionType]string

// Options selects the look of an imported portfolio
type Options struct {
	Preset      string
	Variants    ChosenVariants
	ColorScheme string
	IsPublic    bool
}

// Mapper builds portfolio layouts from resumes
type Mapper struct {
	catalog  *registry.Registry
	resolver registry.Resolver
	now      func() time.Time
}

// Option configures a Mapper
type Option func(*Mapper)

// WithResolver resolves variant ids through r instead of the static catalog,
// e.g. a HybridRegistry snapshot that also knows marketplace components.
func WithResolver(r registry.Resolver) Option {
	return func(m *Mapper) { m.resolver = r }
}

// WithClock overrides the clock used for slug suffixes
func WithClock(now func() time.Time) Option {
	return func(m *Mapper) { m.now = now }
}

// New creates a Mapper backed by the given catalog
func New(catalog *registry.Registry, opts ...Option) *Mapper {
	m := &Mapper{
		catalog:  catalog,
		resolver: catalog,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Map converts doc into a portfolio envelope. Every variant and the color scheme
// are resolved before any section is built, so a lookup failure never yields a
// partial layout.
func (m *Mapper) Map(doc *types.ResumeDocument, opts Options) (*types.SavePortfolioData, error) {
	if doc == nil {
		doc = &types.ResumeDocument{}
	}

	variants, err := m.resolveVariants(opts)
	if err != nil {
		return nil, err
	}
	scheme, err := m.resolveScheme(opts)
	if err != nil {
		return nil, err
	}

	var layout []types.PortfolioComponent
	add := func(order int, derived types.SectionProps) error {
		variant := variants[derived.Section()]
		props, err := mergeProps(variant.DefaultProps, derived)
		if err != nil {
			return fmt.Errorf("failed to merge %s props: %w", variant.ID, err)
		}
		layout = append(layout, types.PortfolioComponent{
			Type:     derived.Section(),
			Variant:  variant.ID,
			Props:    props,
			Styles:   registry.ApplyColorScheme(variant.DefaultStyles, scheme),
			Order:    order,
			IsActive: true,
		})
		return nil
	}

	if err := add(OrderHero, buildHero(doc, variants[types.SectionHero].SocialLinkShape)); err != nil {
		return nil, err
	}
	if len(doc.Work) > 0 {
		if err := add(OrderAbout, buildAbout(doc)); err != nil {
			return nil, err
		}
	}
	if len(doc.Skills) > 0 {
		if err := add(OrderSkills, buildSkills(doc)); err != nil {
			return nil, err
		}
	}
	if len(doc.Projects) > 0 {
		if err := add(OrderProjects, buildProjects(doc)); err != nil {
			return nil, err
		}
	}
	if contact, ok := buildContact(doc); ok {
		if err := add(OrderContact, contact); err != nil {
			return nil, err
		}
	}

	name := PortfolioName(doc.Basics.Name)
	return &types.SavePortfolioData{
		Name:        name,
		Slug:        fmt.Sprintf("%s-%d", Slugify(name), m.now().UnixMilli()),
		Description: portfolioDescription(doc),
		Layout:      layout,
		IsPublic:    opts.IsPublic,
	}, nil
}

// resolveVariants picks one variant per mapped section. Explicit choices win over
// the preset. Explicit choices for sections the mapper never emits are still
// checked so a typo is not silently ignored.
func (m *Mapper) resolveVariants(opts Options) (map[types.SectionType]types.ComponentVariant, error) {
	presetID := opts.Preset
	if presetID == "" {
		presetID = DefaultPreset
	}
	preset, ok := m.catalog.Preset(presetID)
	if !ok {
		return nil, &UnknownPresetError{Preset: presetID}
	}

	for section, id := range opts.Variants {
		if _, ok := m.resolver.Lookup(section, id); !ok {
			return nil, &registry.VariantNotFoundError{Section: section, VariantID: id}
		}
	}

	resolved := make(map[types.SectionType]types.ComponentVariant, len(MappedSections))
	for _, section := range MappedSections {
		id, ok := opts.Variants[section]
		if !ok || id == "" {
			id = preset.Variants[section]
		}
		variant, ok := m.resolver.Lookup(section, id)
		if !ok {
			return nil, &registry.VariantNotFoundError{Section: section, VariantID: id}
		}
		resolved[section] = variant
	}
	return resolved, nil
}

// resolveScheme returns the explicit scheme, else the preset's scheme.
func (m *Mapper) resolveScheme(opts Options) (types.ColorScheme, error) {
	id := opts.ColorScheme
	if id == "" {
		presetID := opts.Preset
		if presetID == "" {
			presetID = DefaultPreset
		}
		preset, ok := m.catalog.Preset(presetID)
		if !ok {
			return types.ColorScheme{}, &UnknownPresetError{Preset: presetID}
		}
		id = preset.ColorScheme
	}
	scheme, ok := m.catalog.ColorScheme(id)
	if !ok {
		return types.ColorScheme{}, &UnknownColorSchemeError{Scheme: id}
	}
	return scheme, nil
}

// PortfolioName derives the portfolio title from the resume owner's name.
// A missing name yields "Imported Portfolio's Portfolio".
func PortfolioName(owner string) string {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		owner = "Imported Portfolio"
	}
	return owner + "'s Portfolio"
}

func portfolioDescription(doc *types.ResumeDocument) string {
	if s := strings.TrimSpace(doc.Basics.Label); s != "" {
		return s
	}
	return "Imported from resume"
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases s and collapses every run of non-alphanumerics into a dash.
func Slugify(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}
