package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// Marketplace component statuses
const (
	MarketplaceStatusPending  = "pending"
	MarketplaceStatusApproved = "approved"
	MarketplaceStatusRejected = "rejected"
)

// MarketplaceComponent is a community-submitted component row
type MarketplaceComponent struct {
	ID            uuid.UUID    `json:"id"`
	AuthorID      uuid.UUID    `json:"author_id"`
	AuthorName    string       `json:"author_name"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Section       string       `json:"section"`
	Category      string       `json:"category"`
	Tags          StringArray  `json:"tags"`
	ComponentCode string       `json:"component_code"`
	DefaultProps  []byte       `json:"-"`
	DefaultStyles types.Styles `json:"default_styles"`
	IsPremium     bool         `json:"is_premium"`
	Status        string       `json:"status"`
	ReviewNotes   *string      `json:"review_notes,omitempty"`
	ReviewedBy    *uuid.UUID   `json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time   `json:"reviewed_at,omitempty"`
	Downloads     int          `json:"downloads"`
	Rating        float64      `json:"rating"`
	RatingCount   int          `json:"rating_count"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// MarketplaceComponentInput holds the fields of a new submission
type MarketplaceComponentInput struct {
	AuthorID      uuid.UUID
	Name          string
	Description   string
	Section       string
	Category      string
	Tags          []string
	ComponentCode string
	DefaultProps  []byte
	DefaultStyles types.Styles
	IsPremium     bool
}

// RatingSummary is the aggregate rating of a component after a vote
type RatingSummary struct {
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"rating_count"`
}
