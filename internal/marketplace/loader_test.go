package marketplace

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/portfolio-builder/internal/db"
	"github.com/jonathan/portfolio-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToVariant(t *testing.T) {
	id := uuid.New()
	row := db.MarketplaceComponent{
		ID:            id,
		AuthorName:    "Grace",
		Name:          "Bento Projects",
		Description:   "Bento grid of project cards",
		Section:       "projects",
		Category:      "media",
		Tags:          db.StringArray{"grid"},
		ComponentCode: "export default Bento",
		DefaultProps:  []byte(`{"columns":4}`),
		DefaultStyles: types.Styles{BackgroundColor: "#fff"},
		Status:        db.MarketplaceStatusApproved,
		Downloads:     150,
		Rating:        4.2,
	}

	v, err := ToVariant(row)
	require.NoError(t, err)
	assert.Equal(t, id.String(), v.ID)
	assert.Equal(t, types.SectionProjects, v.Section)
	assert.Equal(t, types.CategoryMedia, v.Category)
	assert.Equal(t, types.ProjectsProps{Columns: 4}, v.DefaultProps)
	assert.Equal(t, "Grace", v.Author)
	assert.Equal(t, 150, v.Downloads)
	assert.True(t, v.IsMarketplace)
	assert.Empty(t, v.SocialLinkShape)

	row.Section = "sidebar"
	_, err = ToVariant(row)
	assert.Error(t, err)
}

type listerFunc func(ctx context.Context, status string) ([]db.MarketplaceComponent, error)

func (f listerFunc) ListMarketplaceComponents(ctx context.Context, status string) ([]db.MarketplaceComponent, error) {
	return f(ctx, status)
}

func TestDBLoader_SkipsBrokenRows(t *testing.T) {
	var gotStatus string
	loader := NewDBLoader(listerFunc(func(_ context.Context, status string) ([]db.MarketplaceComponent, error) {
		gotStatus = status
		return []db.MarketplaceComponent{
			{ID: uuid.New(), Section: "hero", Category: "layout", DefaultProps: []byte(`{"title":"Hi"}`)},
			{ID: uuid.New(), Section: "hero", Category: "layout", DefaultProps: []byte(`{"title":7}`)},
			{ID: uuid.New(), Section: "nowhere", Category: "layout"},
		}, nil
	}), nil)

	variants, err := loader.LoadApproved(context.Background())
	require.NoError(t, err)
	assert.Equal(t, db.MarketplaceStatusApproved, gotStatus)
	require.Len(t, variants, 1)
	assert.Equal(t, "Hi", variants[0].DefaultProps.(types.HeroProps).Title)
	assert.Equal(t, []string{}, variants[0].Tags)
}
