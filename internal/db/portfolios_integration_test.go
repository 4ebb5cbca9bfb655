package db

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/portfolio-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_PortfolioLifecycle(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	userID := createTestUser(t, db, "Portfolio Owner")
	data := &types.SavePortfolioData{
		Name:        "Owner's Portfolio",
		Slug:        "owner-s-portfolio-" + uuid.New().String(),
		Description: "Imported from resume",
		Layout: []types.PortfolioComponent{{
			Type:     types.SectionHero,
			Variant:  "minimal-hero",
			Props:    types.HeroProps{Title: "Hi, I'm Owner 👋"},
			IsActive: true,
		}},
	}

	created, err := db.CreatePortfolio(ctx, userID, data)
	require.NoError(t, err)
	assert.Equal(t, data.Layout, created.Layout)

	hidden, err := db.GetPublicPortfolioBySlug(ctx, data.Slug)
	require.NoError(t, err)
	assert.Nil(t, hidden, "private portfolios are not served by slug")

	public := true
	layout := append(created.Layout, types.PortfolioComponent{
		Type: types.SectionAbout, Variant: "minimal-about", Props: types.AboutProps{Title: "About"}, Order: 1, IsActive: true,
	})
	updated, err := db.UpdatePortfolioLayout(ctx, created.ID, layout, &public)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.True(t, updated.IsPublic)
	assert.Len(t, updated.Layout, 2)

	bySlug, err := db.GetPublicPortfolioBySlug(ctx, data.Slug)
	require.NoError(t, err)
	require.NotNil(t, bySlug)
	assert.Equal(t, created.ID, bySlug.ID)

	list, err := db.ListPortfoliosByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].Sections)

	deleted, err := db.DeletePortfolio(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	gone, err := db.GetPortfolio(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
