package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// Portfolio is a saved portfolio with its layout
type Portfolio struct {
	ID          uuid.UUID                  `json:"id"`
	UserID      uuid.UUID                  `json:"user_id"`
	Name        string                     `json:"name"`
	Slug        string                     `json:"slug"`
	Description string                     `json:"description"`
	Layout      []types.PortfolioComponent `json:"layout"`
	IsPublic    bool                       `json:"is_public"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at"`
}

// PortfolioSummary is a portfolio without its layout, used in listings
type PortfolioSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	IsPublic    bool      `json:"is_public"`
	Sections    int       `json:"sections"`
	UpdatedAt   time.Time `json:"updated_at"`
}
