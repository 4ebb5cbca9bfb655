package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type variantsResponse struct {
	Section  string           `json:"section"`
	Query    string           `json:"query"`
	Variants []map[string]any `json:"variants"`
	Count    int              `json:"count"`
}

func variantIDs(resp variantsResponse) []string {
	ids := make([]string, 0, len(resp.Variants))
	for _, v := range resp.Variants {
		ids = append(ids, v["id"].(string))
	}
	return ids
}

func TestRegistry_Sections(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/registry/sections", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeJSON[struct {
		Sections []struct {
			Type       string `json:"type"`
			IsRequired bool   `json:"isRequired"`
		} `json:"sections"`
	}](t, w)
	require.NotEmpty(t, resp.Sections)

	required := map[string]bool{}
	for _, s := range resp.Sections {
		required[s.Type] = s.IsRequired
	}
	assert.True(t, required["hero"])
	assert.False(t, required["projects"])
}

func TestRegistry_SectionVariants(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name       string
		section    string
		wantStatus int
		wantIDs    []string
	}{
		{name: "hero", section: "hero", wantStatus: http.StatusOK, wantIDs: []string{"hero-section", "minimal-hero"}},
		{name: "projects", section: "projects", wantStatus: http.StatusOK, wantIDs: []string{"minimal-projects"}},
		{name: "unknown section", section: "sidebar", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodGet, "/registry/sections/"+tt.section+"/variants", nil, "")
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}
			resp := decodeJSON[variantsResponse](t, w)
			assert.Equal(t, tt.section, resp.Section)
			assert.Equal(t, len(resp.Variants), resp.Count)
			ids := variantIDs(resp)
			for _, id := range tt.wantIDs {
				assert.Contains(t, ids, id)
			}
			for _, v := range resp.Variants {
				assert.Equal(t, tt.section, v["section"])
			}
		})
	}
}

func TestRegistry_PopularAndSearch(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/registry/popular", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	popular := decodeJSON[variantsResponse](t, w)
	assert.Contains(t, variantIDs(popular), "hero-section")
	for _, v := range popular.Variants {
		assert.Equal(t, true, v["isPopular"])
	}

	w = env.do(t, http.MethodGet, "/registry/search?q=MINIMAL", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	search := decodeJSON[variantsResponse](t, w)
	assert.Equal(t, "MINIMAL", search.Query)
	assert.Contains(t, variantIDs(search), "minimal-hero")

	w = env.do(t, http.MethodGet, "/registry/search?q=zzzz-no-match", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"query":"zzzz-no-match","variants":[],"count":0}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/registry/search?q=%20", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegistry_ColorSchemesAndPresets(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/registry/color-schemes", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	schemes := decodeJSON[struct {
		ColorSchemes []struct {
			ID string `json:"id"`
		} `json:"colorSchemes"`
	}](t, w)
	ids := make([]string, 0, len(schemes.ColorSchemes))
	for _, s := range schemes.ColorSchemes {
		ids = append(ids, s.ID)
	}
	assert.Subset(t, ids, []string{"light", "dark", "monochrome", "paper", "brutalist-yellow"})

	w = env.do(t, http.MethodGet, "/registry/presets", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	presets := decodeJSON[struct {
		Presets []struct {
			ID string `json:"id"`
		} `json:"presets"`
	}](t, w)
	presetIDs := make([]string, 0, len(presets.Presets))
	for _, p := range presets.Presets {
		presetIDs = append(presetIDs, p.ID)
	}
	assert.ElementsMatch(t, []string{"minimal", "typography", "brutalist"}, presetIDs)
}
