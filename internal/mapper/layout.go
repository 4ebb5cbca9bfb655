package mapper

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/jonathan/portfolio-builder/internal/registry"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// SortLayout returns a copy of layout in render order. Components with equal
// order keep their relative position.
func SortLayout(layout []types.PortfolioComponent) []types.PortfolioComponent {
	sorted := slices.Clone(layout)
	slices.SortStableFunc(sorted, func(a, b types.PortfolioComponent) int {
		return cmp.Compare(a.Order, b.Order)
	})
	return sorted
}

// ValidateLayout checks a user-edited layout before it is persisted: every variant
// must resolve for its section, props must match the section, and the placement
// rules of each section descriptor must hold. Required sections count only when
// active.
func ValidateLayout(layout []types.PortfolioComponent, resolver registry.Resolver, sections []types.SectionDescriptor) error {
	var issues []string
	total := make(map[types.SectionType]int)
	active := make(map[types.SectionType]int)

	for i, c := range layout {
		if !c.Type.Valid() {
			issues = append(issues, fmt.Sprintf("component %d: unknown section type %q", i, c.Type))
			continue
		}
		if _, ok := resolver.Lookup(c.Type, c.Variant); !ok {
			issues = append(issues, fmt.Sprintf("component %d: %v", i, &registry.VariantNotFoundError{Section: c.Type, VariantID: c.Variant}))
		}
		if c.Props != nil && c.Props.Section() != c.Type {
			issues = append(issues, fmt.Sprintf("component %d: %s props on a %s section", i, c.Props.Section(), c.Type))
		}
		total[c.Type]++
		if c.IsActive {
			active[c.Type]++
		}
	}

	for _, d := range sections {
		if d.IsRequired && active[d.Type] == 0 {
			issues = append(issues, fmt.Sprintf("section %s is required", d.Type))
		}
		if !d.AllowMultiple && total[d.Type] > 1 {
			issues = append(issues, fmt.Sprintf("section %s allows a single instance, found %d", d.Type, total[d.Type]))
		}
	}

	if len(issues) > 0 {
		return &LayoutError{Issues: issues}
	}
	return nil
}
