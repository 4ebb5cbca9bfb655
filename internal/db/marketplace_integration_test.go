package db

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/portfolio-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_MarketplaceWorkflow(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	author := createTestUser(t, db, "Author")
	admin := createTestUser(t, db, "Admin")
	fan := createTestUser(t, db, "Fan")

	c, err := db.CreateMarketplaceComponent(ctx, &MarketplaceComponentInput{
		AuthorID:      author,
		Name:          "Neon Hero " + uuid.New().String()[:8],
		Description:   "Glowing hero",
		Section:       "hero",
		Category:      "layout",
		Tags:          []string{"neon"},
		ComponentCode: "export default function NeonHero() {}",
		DefaultProps:  []byte(`{"layout":"neon"}`),
		DefaultStyles: types.Styles{BackgroundColor: "#000000"},
	})
	require.NoError(t, err)
	assert.Equal(t, MarketplaceStatusPending, c.Status)
	assert.Equal(t, "Author", c.AuthorName)
	assert.Equal(t, StringArray{"neon"}, c.Tags)
	assert.Equal(t, "#000000", c.DefaultStyles.BackgroundColor)

	reviewed, err := db.ReviewMarketplaceComponent(ctx, c.ID, admin, MarketplaceStatusApproved, "looks good")
	require.NoError(t, err)
	require.NotNil(t, reviewed)
	assert.Equal(t, MarketplaceStatusApproved, reviewed.Status)

	again, err := db.ReviewMarketplaceComponent(ctx, c.ID, admin, MarketplaceStatusRejected, "")
	require.NoError(t, err)
	assert.Nil(t, again, "reviewed components cannot be reviewed twice")

	first, err := db.RecordInstall(ctx, c.ID, fan)
	require.NoError(t, err)
	assert.True(t, first)
	repeat, err := db.RecordInstall(ctx, c.ID, fan)
	require.NoError(t, err)
	assert.False(t, repeat)

	_, err = db.RateMarketplaceComponent(ctx, c.ID, fan, 2)
	require.NoError(t, err)
	summary, err := db.RateMarketplaceComponent(ctx, c.ID, author, 5)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, summary.Rating, 0.001)
	assert.Equal(t, 2, summary.RatingCount)

	got, err := db.GetMarketplaceComponent(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Downloads)
	assert.JSONEq(t, `{"layout":"neon"}`, string(got.DefaultProps))
}
