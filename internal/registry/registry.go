// Package registry provides the static component catalog, color schemes, presets,
// and the hybrid lookup that merges the catalog with marketplace components.
package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/jonathan/portfolio-builder/internal/types"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Preset is a named bundle of variant choices and a color scheme
type Preset struct {
	ID          string                       `json:"id" yaml:"id"`
	Name        string                       `json:"name" yaml:"name"`
	ColorScheme string                       `json:"colorScheme" yaml:"colorScheme"`
	Variants    map[types.SectionType]string `json:"variants" yaml:"variants"`
}

// Registry is a read-only catalog of section variants.
// All accessors return copies; there are no mutation methods.
type Registry struct {
	sections []types.SectionDescriptor
	variants map[types.SectionType][]types.ComponentVariant
	index    map[types.SectionType]map[string]int
	schemes  []types.ColorScheme
	presets  []Preset
}

type catalogFile struct {
	Sections     []types.SectionDescriptor `yaml:"sections"`
	ColorSchemes []types.ColorScheme       `yaml:"colorSchemes"`
	Presets      []Preset                  `yaml:"presets"`
	Variants     []catalogSection          `yaml:"variants"`
}

type catalogSection struct {
	Section types.SectionType `yaml:"section"`
	Items   []catalogVariant  `yaml:"items"`
}

type catalogVariant struct {
	ID              string         `yaml:"id"`
	Name            string         `yaml:"name"`
	Description     string         `yaml:"description"`
	Category        string         `yaml:"category"`
	Tags            []string       `yaml:"tags"`
	Popular         bool           `yaml:"popular"`
	Premium         bool           `yaml:"premium"`
	SocialLinkShape string         `yaml:"socialLinkShape"`
	DefaultProps    map[string]any `yaml:"defaultProps"`
	DefaultStyles   types.Styles   `yaml:"defaultStyles"`
}

var loadDefault = sync.OnceValues(func() (*Registry, error) {
	return Load(catalogYAML)
})

// Default returns the process-wide catalog built from the embedded catalog.yaml.
// It panics if the embedded catalog is invalid.
func Default() *Registry {
	reg, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("failed to load component catalog: %v", err))
	}
	return reg
}

// Load parses a YAML catalog and builds a Registry.
func Load(data []byte) (*Registry, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &CatalogError{Message: "failed to parse catalog YAML", Cause: err}
	}

	reg := &Registry{
		sections: file.Sections,
		variants: make(map[types.SectionType][]types.ComponentVariant),
		index:    make(map[types.SectionType]map[string]int),
		schemes:  file.ColorSchemes,
		presets:  file.Presets,
	}

	for _, section := range file.Variants {
		if !section.Section.Valid() {
			return nil, &CatalogError{Message: fmt.Sprintf("unknown section type %q", section.Section)}
		}
		if reg.index[section.Section] == nil {
			reg.index[section.Section] = make(map[string]int)
		}
		for _, item := range section.Items {
			variant, err := buildVariant(section.Section, item)
			if err != nil {
				return nil, err
			}
			if _, dup := reg.index[section.Section][variant.ID]; dup {
				return nil, &CatalogError{Message: fmt.Sprintf("duplicate variant id %s/%s", section.Section, variant.ID)}
			}
			reg.index[section.Section][variant.ID] = len(reg.variants[section.Section])
			reg.variants[section.Section] = append(reg.variants[section.Section], variant)
		}
	}

	if err := reg.checkPresets(); err != nil {
		return nil, err
	}
	return reg, nil
}

func buildVariant(section types.SectionType, item catalogVariant) (types.ComponentVariant, error) {
	if item.ID == "" {
		return types.ComponentVariant{}, &CatalogError{Message: fmt.Sprintf("variant without id in section %s", section)}
	}

	raw, err := json.Marshal(item.DefaultProps)
	if err != nil {
		return types.ComponentVariant{}, &CatalogError{Message: "failed to encode default props for " + item.ID, Cause: err}
	}
	props, err := types.DecodeSectionProps(section, raw)
	if err != nil {
		return types.ComponentVariant{}, &CatalogError{Message: "invalid default props for " + item.ID, Cause: err}
	}

	shape := types.SocialLinkShape(item.SocialLinkShape)
	if section == types.SectionHero && shape == "" {
		shape = types.SocialLinksArray
	}

	tags := item.Tags
	if tags == nil {
		tags = []string{}
	}

	return types.ComponentVariant{
		ID:              item.ID,
		Name:            item.Name,
		Description:     item.Description,
		Section:         section,
		Category:        types.ComponentCategory(item.Category),
		Tags:            tags,
		DefaultProps:    props,
		DefaultStyles:   item.DefaultStyles,
		IsPopular:       item.Popular,
		IsPremium:       item.Premium,
		SocialLinkShape: shape,
	}, nil
}

// checkPresets verifies every preset references known variants and schemes.
func (r *Registry) checkPresets() error {
	for _, preset := range r.presets {
		if _, ok := r.ColorScheme(preset.ColorScheme); !ok {
			return &CatalogError{Message: fmt.Sprintf("preset %s references unknown color scheme %q", preset.ID, preset.ColorScheme)}
		}
		for section, id := range preset.Variants {
			if _, ok := r.GetComponentVariant(section, id); !ok {
				return &CatalogError{Message: fmt.Sprintf("preset %s references unknown variant %s/%s", preset.ID, section, id)}
			}
		}
	}
	return nil
}

// GetComponentVariant looks up a variant. A missing section or id is not an error;
// callers that need the variant should use MustVariant.
func (r *Registry) GetComponentVariant(section types.SectionType, variantID string) (types.ComponentVariant, bool) {
	idx, ok := r.index[section][variantID]
	if !ok {
		return types.ComponentVariant{}, false
	}
	return r.variants[section][idx], true
}

// MustVariant looks up a variant and returns a VariantNotFoundError if it is absent.
func (r *Registry) MustVariant(section types.SectionType, variantID string) (types.ComponentVariant, error) {
	variant, ok := r.GetComponentVariant(section, variantID)
	if !ok {
		return types.ComponentVariant{}, &VariantNotFoundError{Section: section, VariantID: variantID}
	}
	return variant, nil
}

// Lookup implements Resolver.
func (r *Registry) Lookup(section types.SectionType, variantID string) (types.ComponentVariant, bool) {
	return r.GetComponentVariant(section, variantID)
}

// VariantsForSection returns the variants of a section in declaration order.
func (r *Registry) VariantsForSection(section types.SectionType) []types.ComponentVariant {
	return append([]types.ComponentVariant(nil), r.variants[section]...)
}

// AllVariants returns every variant, section by section in catalog order.
func (r *Registry) AllVariants() []types.ComponentVariant {
	var all []types.ComponentVariant
	for _, section := range r.sectionOrder() {
		all = append(all, r.variants[section]...)
	}
	return all
}

// GetPopularVariants returns all variants flagged popular, in declaration order.
func (r *Registry) GetPopularVariants() []types.ComponentVariant {
	var popular []types.ComponentVariant
	for _, variant := range r.AllVariants() {
		if variant.IsPopular {
			popular = append(popular, variant)
		}
	}
	return popular
}

// SearchVariants returns variants whose name, description, or any tag contains
// query (case-insensitive), in declaration order.
func (r *Registry) SearchVariants(query string) []types.ComponentVariant {
	var matches []types.ComponentVariant
	for _, variant := range r.AllVariants() {
		if matchesQuery(variant, query) {
			matches = append(matches, variant)
		}
	}
	return matches
}

// Sections returns the section descriptors.
func (r *Registry) Sections() []types.SectionDescriptor {
	return append([]types.SectionDescriptor(nil), r.sections...)
}

// SectionDescriptor returns the descriptor of a section type.
func (r *Registry) SectionDescriptor(section types.SectionType) (types.SectionDescriptor, bool) {
	for _, d := range r.sections {
		if d.Type == section {
			return d, true
		}
	}
	return types.SectionDescriptor{}, false
}

// ColorSchemes returns all color schemes.
func (r *Registry) ColorSchemes() []types.ColorScheme {
	return append([]types.ColorScheme(nil), r.schemes...)
}

// ColorScheme looks up a color scheme by id.
func (r *Registry) ColorScheme(id string) (types.ColorScheme, bool) {
	for _, scheme := range r.schemes {
		if scheme.ID == id {
			return scheme, true
		}
	}
	return types.ColorScheme{}, false
}

// Presets returns all presets.
func (r *Registry) Presets() []Preset {
	return append([]Preset(nil), r.presets...)
}

// Preset looks up a preset by id.
func (r *Registry) Preset(id string) (Preset, bool) {
	for _, preset := range r.presets {
		if preset.ID == id {
			return preset, true
		}
	}
	return Preset{}, false
}

// sectionOrder returns section types in catalog order, followed by any
// section that has variants but no descriptor.
func (r *Registry) sectionOrder() []types.SectionType {
	order := make([]types.SectionType, 0, len(r.sections))
	seen := make(map[types.SectionType]bool)
	for _, d := range r.sections {
		order = append(order, d.Type)
		seen[d.Type] = true
	}
	for _, section := range types.AllSectionTypes {
		if !seen[section] && len(r.variants[section]) > 0 {
			order = append(order, section)
		}
	}
	return order
}

func matchesQuery(variant types.ComponentVariant, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(variant.Name), q) ||
		strings.Contains(strings.ToLower(variant.Description), q) {
		return true
	}
	for _, tag := range variant.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
