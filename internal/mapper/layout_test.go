package mapper

import (
	"testing"

	"github.com/jonathan/portfolio-builder/internal/registry"
	"github.com/jonathan/portfolio-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func component(section types.SectionType, variant string, order int, active bool) types.PortfolioComponent {
	props, _ := types.NewSectionProps(section)
	return types.PortfolioComponent{Type: section, Variant: variant, Props: props, Order: order, IsActive: active}
}

func TestSortLayout_StableByOrder(t *testing.T) {
	layout := []types.PortfolioComponent{
		component(types.SectionContact, "minimal-contact", 4, true),
		component(types.SectionProjects, "minimal-projects", 3, true),
		component(types.SectionHero, "minimal-hero", 0, true),
		component(types.SectionProjects, "project-grid", 3, true),
	}

	sorted := SortLayout(layout)

	got := make([]string, 0, len(sorted))
	for _, c := range sorted {
		got = append(got, c.Variant)
	}
	assert.Equal(t, []string{"minimal-hero", "minimal-projects", "project-grid", "minimal-contact"}, got)
	assert.Equal(t, "minimal-contact", layout[0].Variant, "input is left untouched")
}

func TestValidateLayout(t *testing.T) {
	reg := registry.Default()
	sections := reg.Sections()

	tests := []struct {
		name       string
		layout     []types.PortfolioComponent
		wantIssues []string
	}{
		{
			name: "valid mapped layout",
			layout: []types.PortfolioComponent{
				component(types.SectionHero, "minimal-hero", 0, true),
				component(types.SectionProjects, "minimal-projects", 3, true),
				component(types.SectionProjects, "project-grid", 5, true),
			},
		},
		{
			name:       "missing hero",
			layout:     []types.PortfolioComponent{component(types.SectionAbout, "minimal-about", 1, true)},
			wantIssues: []string{"section hero is required"},
		},
		{
			name:       "inactive hero does not satisfy required",
			layout:     []types.PortfolioComponent{component(types.SectionHero, "minimal-hero", 0, false)},
			wantIssues: []string{"section hero is required"},
		},
		{
			name: "two heroes",
			layout: []types.PortfolioComponent{
				component(types.SectionHero, "minimal-hero", 0, true),
				component(types.SectionHero, "hero-section", 1, false),
			},
			wantIssues: []string{"section hero allows a single instance, found 2"},
		},
		{
			name: "unknown variant",
			layout: []types.PortfolioComponent{
				component(types.SectionHero, "minimal-hero", 0, true),
				component(types.SectionSkills, "ghost-skills", 2, true),
			},
			wantIssues: []string{"component 1: Variant not found: skills/ghost-skills"},
		},
		{
			name: "props for the wrong section",
			layout: []types.PortfolioComponent{
				{Type: types.SectionHero, Variant: "minimal-hero", Props: types.AboutProps{}, IsActive: true},
			},
			wantIssues: []string{"component 0: about props on a hero section"},
		},
		{
			name: "unknown section type",
			layout: []types.PortfolioComponent{
				component(types.SectionHero, "minimal-hero", 0, true),
				{Type: "sidebar", Variant: "x"},
			},
			wantIssues: []string{`component 1: unknown section type "sidebar"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLayout(tt.layout, reg, sections)
			if tt.wantIssues == nil {
				assert.NoError(t, err)
				return
			}
			var layoutErr *LayoutError
			require.ErrorAs(t, err, &layoutErr)
			assert.Equal(t, tt.wantIssues, layoutErr.Issues)
		})
	}
}

func TestValidateLayout_AcceptsMappedOutput(t *testing.T) {
	reg := registry.Default()
	for _, preset := range reg.Presets() {
		data, err := newTestMapper().Map(fullResume(), Options{Preset: preset.ID})
		require.NoError(t, err)
		assert.NoError(t, ValidateLayout(data.Layout, reg, reg.Sections()), preset.ID)
	}
}
