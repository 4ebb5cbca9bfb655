//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// MarketplaceStatus is the review state of a submitted component
type MarketplaceStatus string

// Review states
const (
	StatusPending  MarketplaceStatus = "pending"
	StatusApproved MarketplaceStatus = "approved"
	StatusRejected MarketplaceStatus = "rejected"
)

// SubmitComponentRequest is a community submission to the marketplace
type SubmitComponentRequest struct {
	Name          string          `json:"name" validate:"required,min=3,max=80"`
	Description   string          `json:"description" validate:"required,max=500"`
	Section       SectionType     `json:"section" validate:"required,oneof=hero about skills projects contact navbar footer custom"`
	Category      string          `json:"category" validate:"required,min=2,max=40"`
	Tags          []string        `json:"tags,omitempty" validate:"max=10,dive,min=1,max=30"`
	ComponentCode string          `json:"componentCode" validate:"required,max=200000"`
	DefaultProps  json.RawMessage `json:"defaultProps,omitempty"`
	DefaultStyles Styles          `json:"defaultStyles"`
	IsPremium     bool            `json:"isPremium"`
}

// Validate validates the SubmitComponentRequest using the validator.
func (r *SubmitComponentRequest) Validate() error {
	return validator.New().Struct(r)
}

// ReviewComponentRequest is an admin decision on a pending submission
type ReviewComponentRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
	Notes    string `json:"notes" validate:"max=1000"`
}

// Validate validates the ReviewComponentRequest using the validator.
func (r *ReviewComponentRequest) Validate() error {
	return validator.New().Struct(r)
}

// RateComponentRequest is a 1-5 star rating
type RateComponentRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

// Validate validates the RateComponentRequest using the validator.
func (r *RateComponentRequest) Validate() error {
	return validator.New().Struct(r)
}

// ImportPortfolioRequest maps a resume into a new portfolio
type ImportPortfolioRequest struct {
	Resume         ResumeDocument         `json:"resume"`
	Preset         string                 `json:"preset,omitempty" validate:"omitempty,oneof=minimal typography brutalist"`
	Variants       map[SectionType]string `json:"variants,omitempty"`
	ColorScheme    string                 `json:"colorScheme,omitempty"`
	IsPublic       bool                   `json:"isPublic"`
	EnrichPreviews bool                   `json:"enrichPreviews,omitempty"`
}

// Validate validates the ImportPortfolioRequest using the validator.
func (r *ImportPortfolioRequest) Validate() error {
	return validator.New().Struct(r)
}

// UpdateLayoutRequest replaces the layout of an existing portfolio
type UpdateLayoutRequest struct {
	Layout   []PortfolioComponent `json:"layout" validate:"required,min=1"`
	IsPublic *bool                `json:"isPublic,omitempty"`
}

// Validate validates the UpdateLayoutRequest using the validator.
func (r *UpdateLayoutRequest) Validate() error {
	return validator.New().Struct(r)
}
