package registry

import (
	"context"
	"fmt"
	"slices"

	"github.com/jonathan/portfolio-builder/internal/types"
)

// HybridComponent is an entry of the unified static + marketplace list.
// Both types.ComponentVariant and types.MarketplaceComponentVariant satisfy it.
type HybridComponent interface {
	Descriptor() types.ComponentVariant
}

// Resolver resolves a (section, variant id) pair to a variant descriptor.
type Resolver interface {
	Lookup(section types.SectionType, variantID string) (types.ComponentVariant, bool)
}

// MarketplaceSource supplies the approved marketplace components.
type MarketplaceSource interface {
	Get(ctx context.Context) ([]types.MarketplaceComponentVariant, error)
}

// sectionCategories maps each section to the marketplace categories it accepts.
var sectionCategories = map[types.SectionType][]types.ComponentCategory{
	types.SectionHero:     {types.CategoryLayout, types.CategoryMedia, "hero"},
	types.SectionAbout:    {types.CategoryContent, "about"},
	types.SectionSkills:   {types.CategoryContent, "skills"},
	types.SectionProjects: {types.CategoryContent, types.CategoryMedia, "custom", "projects"},
	types.SectionContact:  {types.CategoryForm, "contact"},
	types.SectionNavbar:   {types.CategoryLayout, "navbar"},
	types.SectionFooter:   {types.CategoryLayout, "footer"},
	types.SectionCustom:   {"custom", types.CategoryContent, types.CategoryMedia, types.CategoryLayout, types.CategoryForm},
}

// AllowedCategories returns the marketplace categories accepted by a section.
func AllowedCategories(section types.SectionType) []types.ComponentCategory {
	return slices.Clone(sectionCategories[section])
}

// IsMarketplaceComponent reports whether c carries the marketplace tag.
func IsMarketplaceComponent(c HybridComponent) (types.MarketplaceComponentVariant, bool) {
	switch m := c.(type) {
	case types.MarketplaceComponentVariant:
		return m, m.IsMarketplace
	case *types.MarketplaceComponentVariant:
		if m == nil {
			return types.MarketplaceComponentVariant{}, false
		}
		return *m, m.IsMarketplace
	default:
		return types.MarketplaceComponentVariant{}, false
	}
}

// GetHybridComponentsForSection returns the static variants of a section followed
// by the marketplace components whose category the section accepts.
func GetHybridComponentsForSection(static *Registry, section types.SectionType, marketplace []types.MarketplaceComponentVariant) []HybridComponent {
	allowed := sectionCategories[section]

	var out []HybridComponent
	for _, v := range static.VariantsForSection(section) {
		out = append(out, v)
	}
	for _, m := range marketplace {
		if slices.Contains(allowed, m.Category) {
			out = append(out, m)
		}
	}
	return out
}

// GetPopularHybridComponents filters popular entries and orders them: marketplace
// entries by downloads descending, marketplace before static on ties, static
// entries in their original order.
func GetPopularHybridComponents(components []HybridComponent) []HybridComponent {
	var popular []HybridComponent
	for _, c := range components {
		if isPopular(c) {
			popular = append(popular, c)
		}
	}

	slices.SortStableFunc(popular, func(a, b HybridComponent) int {
		ma, aMarket := IsMarketplaceComponent(a)
		mb, bMarket := IsMarketplaceComponent(b)
		switch {
		case aMarket && bMarket:
			return mb.Downloads - ma.Downloads
		case aMarket:
			return -1
		case bMarket:
			return 1
		default:
			return 0
		}
	})
	return popular
}

func isPopular(c HybridComponent) bool {
	if m, ok := IsMarketplaceComponent(c); ok {
		return m.Downloads > 100 || m.Rating > 4.5
	}
	return c.Descriptor().IsPopular
}

// SearchHybridComponents applies the catalog substring search to a unified list.
func SearchHybridComponents(components []HybridComponent, query string) []HybridComponent {
	var matches []HybridComponent
	for _, c := range components {
		if matchesQuery(c.Descriptor(), query) {
			matches = append(matches, c)
		}
	}
	return matches
}

// HybridRegistry merges the static catalog with marketplace components.
type HybridRegistry struct {
	static      *Registry
	marketplace MarketplaceSource
}

// NewHybridRegistry creates a HybridRegistry. marketplace may be nil, in which
// case only the static catalog is served.
func NewHybridRegistry(static *Registry, marketplace MarketplaceSource) *HybridRegistry {
	return &HybridRegistry{static: static, marketplace: marketplace}
}

// Static returns the underlying static catalog.
func (h *HybridRegistry) Static() *Registry {
	return h.static
}

func (h *HybridRegistry) snapshot(ctx context.Context) ([]types.MarketplaceComponentVariant, error) {
	if h.marketplace == nil {
		return nil, nil
	}
	components, err := h.marketplace.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load marketplace components: %w", err)
	}
	return components, nil
}

// ComponentsForSection returns the unified list for one section.
func (h *HybridRegistry) ComponentsForSection(ctx context.Context, section types.SectionType) ([]HybridComponent, error) {
	components, err := h.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return GetHybridComponentsForSection(h.static, section, components), nil
}

// All returns every static variant followed by every marketplace component.
func (h *HybridRegistry) All(ctx context.Context) ([]HybridComponent, error) {
	components, err := h.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	var out []HybridComponent
	for _, v := range h.static.AllVariants() {
		out = append(out, v)
	}
	for _, m := range components {
		out = append(out, m)
	}
	return out, nil
}

// Popular returns popular entries across both sources.
func (h *HybridRegistry) Popular(ctx context.Context) ([]HybridComponent, error) {
	all, err := h.All(ctx)
	if err != nil {
		return nil, err
	}
	return GetPopularHybridComponents(all), nil
}

// Search returns matching entries across both sources.
func (h *HybridRegistry) Search(ctx context.Context, query string) ([]HybridComponent, error) {
	all, err := h.All(ctx)
	if err != nil {
		return nil, err
	}
	return SearchHybridComponents(all, query), nil
}

// Resolver returns a Resolver bound to the current marketplace snapshot.
// Static variants shadow marketplace components with the same id.
func (h *HybridRegistry) Resolver(ctx context.Context) (Resolver, error) {
	components, err := h.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &snapshotResolver{static: h.static, marketplace: components}, nil
}

type snapshotResolver struct {
	static      *Registry
	marketplace []types.MarketplaceComponentVariant
}

func (r *snapshotResolver) Lookup(section types.SectionType, variantID string) (types.ComponentVariant, bool) {
	if v, ok := r.static.GetComponentVariant(section, variantID); ok {
		return v, true
	}
	allowed := sectionCategories[section]
	for _, m := range r.marketplace {
		if m.ID == variantID && m.Section == section && slices.Contains(allowed, m.Category) {
			return m.ComponentVariant, true
		}
	}
	return types.ComponentVariant{}, false
}
