package registry

import (
	"testing"

	"github.com/jonathan/portfolio-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LoadsEmbeddedCatalog(t *testing.T) {
	reg := Default()
	require.NotNil(t, reg)

	for _, section := range []types.SectionType{
		types.SectionHero, types.SectionAbout, types.SectionSkills,
		types.SectionProjects, types.SectionContact, types.SectionNavbar,
	} {
		assert.NotEmpty(t, reg.VariantsForSection(section), "section %s should have variants", section)
	}

	assert.Len(t, reg.Presets(), 3)
	assert.NotEmpty(t, reg.ColorSchemes())
}

func TestGetComponentVariant(t *testing.T) {
	reg := Default()

	v, ok := reg.GetComponentVariant(types.SectionHero, "hero-section")
	require.True(t, ok)
	assert.Equal(t, "Classic Hero", v.Name)
	assert.Equal(t, types.SectionHero, v.Section)
	assert.Equal(t, types.DiscreteURLs, v.SocialLinkShape)

	props, ok := v.DefaultProps.(types.HeroProps)
	require.True(t, ok, "hero default props should be HeroProps")
	assert.True(t, props.ShowAvatar)

	_, ok = reg.GetComponentVariant(types.SectionHero, "does-not-exist")
	assert.False(t, ok)

	_, ok = reg.GetComponentVariant("sidebar", "hero-section")
	assert.False(t, ok)

	// A variant id is scoped to its section.
	_, ok = reg.GetComponentVariant(types.SectionAbout, "hero-section")
	assert.False(t, ok)
}

func TestMustVariant_NotFound(t *testing.T) {
	_, err := Default().MustVariant(types.SectionSkills, "holographic-skills")
	require.Error(t, err)

	var notFound *VariantNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Variant not found: skills/holographic-skills", err.Error())
}

func TestHeroVariants_DeclareSocialLinkShape(t *testing.T) {
	for _, v := range Default().VariantsForSection(types.SectionHero) {
		if v.ID == "hero-section" {
			assert.Equal(t, types.DiscreteURLs, v.SocialLinkShape)
			continue
		}
		assert.Equal(t, types.SocialLinksArray, v.SocialLinkShape, v.ID)
	}
}

func TestGetPopularVariants(t *testing.T) {
	popular := Default().GetPopularVariants()
	require.NotEmpty(t, popular)
	for _, v := range popular {
		assert.True(t, v.IsPopular, v.ID)
	}
	// navbar is declared first in the catalog
	assert.Equal(t, types.SectionNavbar, popular[0].Section)
}

func TestSearchVariants(t *testing.T) {
	reg := Default()

	tests := []struct {
		name    string
		query   string
		wantIDs []string
		wantAll bool
	}{
		{name: "matches tag", query: "masonry", wantIDs: []string{"project-grid"}},
		{name: "case insensitive name", query: "SPLIT HERO", wantIDs: []string{"split-hero"}},
		{name: "matches description", query: "drop-cap", wantIDs: []string{"typography-about"}},
		{name: "no match", query: "zzz-nothing", wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []string
			for _, v := range reg.SearchVariants(tt.query) {
				ids = append(ids, v.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}

	brutalist := reg.SearchVariants("brutalist")
	assert.GreaterOrEqual(t, len(brutalist), 6)
}

func TestAccessorsReturnCopies(t *testing.T) {
	reg := Default()
	variants := reg.VariantsForSection(types.SectionHero)
	variants[0].Name = "mutated"

	v, _ := reg.GetComponentVariant(types.SectionHero, variants[0].ID)
	assert.NotEqual(t, "mutated", v.Name)
}

func TestSectionDescriptors(t *testing.T) {
	hero, ok := Default().SectionDescriptor(types.SectionHero)
	require.True(t, ok)
	assert.True(t, hero.IsRequired)
	assert.False(t, hero.AllowMultiple)
}

func TestPresetsReferenceKnownVariants(t *testing.T) {
	reg := Default()
	for _, preset := range reg.Presets() {
		_, ok := reg.ColorScheme(preset.ColorScheme)
		assert.True(t, ok, preset.ID)
		for section, id := range preset.Variants {
			_, err := reg.MustVariant(section, id)
			assert.NoError(t, err)
		}
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		errMsg string
	}{
		{name: "invalid yaml", yaml: "variants: [", errMsg: "failed to parse catalog YAML"},
		{
			name: "duplicate id",
			yaml: `
variants:
  - section: hero
    items:
      - id: a
      - id: a
`,
			errMsg: "duplicate variant id hero/a",
		},
		{
			name: "unknown section",
			yaml: `
variants:
  - section: sidebar
    items: [{id: a}]
`,
			errMsg: "unknown section type",
		},
		{
			name: "preset with unknown variant",
			yaml: `
colorSchemes: [{id: light, name: Light}]
presets:
  - id: p
    colorScheme: light
    variants: {hero: missing}
`,
			errMsg: "unknown variant hero/missing",
		},
		{
			name: "bad default props",
			yaml: `
variants:
  - section: projects
    items:
      - id: p
        defaultProps: {columns: "three"}
`,
			errMsg: "invalid default props for p",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
