package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/portfolio-builder/internal/mapper"
	"github.com/jonathan/portfolio-builder/internal/marketplace"
	"github.com/jonathan/portfolio-builder/internal/parsing"
	"github.com/jonathan/portfolio-builder/internal/registry"
	"github.com/jonathan/portfolio-builder/internal/resume"
	"github.com/jonathan/portfolio-builder/internal/schemas"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrPortfolioNotFound indicates a portfolio that does not exist or is not visible
// to the caller. Foreign portfolios are reported as missing.
type ErrPortfolioNotFound struct {
	Ref string
}

func (e *ErrPortfolioNotFound) Error() string {
	return fmt.Sprintf("portfolio not found: %s", e.Ref)
}

// ErrUnavailable indicates a feature disabled by configuration
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not configured", e.Feature)
}

// HTTPStatus returns the HTTP status code for an error. Wrapped errors are
// matched through their chain.
func HTTPStatus(err error) int {
	var (
		emailExists    *ErrEmailAlreadyExists
		badCredentials *ErrInvalidCredentials
		mismatch       *ErrPasswordMismatch
		userNotFound   *ErrUserNotFound
		validation     *ErrValidation
		portfolio      *ErrPortfolioNotFound
		unavailable    *ErrUnavailable
		unknownPreset  *mapper.UnknownPresetError
		unknownScheme  *mapper.UnknownColorSchemeError
		layout         *mapper.LayoutError
		variant        *registry.VariantNotFoundError
		mpValidation   *marketplace.ValidationError
		mpNotFound     *marketplace.NotFoundError
		mpForbidden    *marketplace.ForbiddenError
		mpConflict     *marketplace.ConflictError
		parseInput     *parsing.InputError
		extraction     *parsing.ExtractionError
		provider       *parsing.ProviderError
		loadErr        *resume.LoadError
		schemaErr      *schemas.ValidationError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &emailExists), errors.As(err, &mpConflict):
		return http.StatusConflict
	case errors.As(err, &badCredentials), errors.As(err, &mismatch):
		return http.StatusUnauthorized
	case errors.As(err, &mpForbidden):
		return http.StatusForbidden
	case errors.As(err, &userNotFound), errors.As(err, &portfolio), errors.As(err, &mpNotFound):
		return http.StatusNotFound
	case errors.As(err, &layout):
		return http.StatusUnprocessableEntity
	case errors.As(err, &extraction), errors.As(err, &provider):
		return http.StatusBadGateway
	case errors.As(err, &validation), errors.As(err, &unknownPreset), errors.As(err, &unknownScheme),
		errors.As(err, &variant), errors.As(err, &mpValidation), errors.As(err, &parseInput),
		errors.As(err, &loadErr), errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// errorDetails returns the per-issue messages carried by validation errors.
func errorDetails(err error) []string {
	var (
		layout       *mapper.LayoutError
		mpValidation *marketplace.ValidationError
		extraction   *parsing.ExtractionError
		schemaErr    *schemas.ValidationError
	)
	switch {
	case errors.As(err, &layout):
		return layout.Issues
	case errors.As(err, &extraction):
		return extraction.Details()
	case errors.As(err, &mpValidation):
		return mpValidation.Details
	case errors.As(err, &schemaErr):
		return schemaErr.Messages()
	default:
		return nil
	}
}
