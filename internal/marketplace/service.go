package marketplace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/portfolio-builder/internal/db"
	"github.com/jonathan/portfolio-builder/internal/logging"
	"github.com/jonathan/portfolio-builder/internal/schemas"
	"github.com/jonathan/portfolio-builder/internal/types"
	"go.uber.org/zap"
)

// Store is the persistence the workflow needs
type Store interface {
	ComponentLister
	CreateMarketplaceComponent(ctx context.Context, input *db.MarketplaceComponentInput) (*db.MarketplaceComponent, error)
	GetMarketplaceComponent(ctx context.Context, id uuid.UUID) (*db.MarketplaceComponent, error)
	ReviewMarketplaceComponent(ctx context.Context, id, reviewerID uuid.UUID, status, notes string) (*db.MarketplaceComponent, error)
	RecordInstall(ctx context.Context, componentID, userID uuid.UUID) (bool, error)
	RateMarketplaceComponent(ctx context.Context, componentID, userID uuid.UUID, rating int) (*db.RatingSummary, error)
}

// Actor is the authenticated user performing an action
type Actor struct {
	ID      uuid.UUID
	IsAdmin bool
}

// InstallResult reports the outcome of an install
type InstallResult struct {
	Component types.MarketplaceComponentVariant `json:"component"`
	FirstTime bool                              `json:"firstTime"`
}

// Service implements the submit, review, install and rate workflow
type Service struct {
	store  Store
	cache  *Cache
	logger *zap.Logger
}

// NewService creates a workflow service. Review decisions invalidate cache.
func NewService(store Store, cache *Cache, logger *zap.Logger) *Service {
	return &Service{store: store, cache: cache, logger: logging.OrNop(logger)}
}

// Approved returns the approved components through the cache.
func (s *Service) Approved(ctx context.Context) ([]types.MarketplaceComponentVariant, error) {
	return s.cache.Get(ctx)
}

// Submit validates a submission and stores it as pending.
func (s *Service) Submit(ctx context.Context, author Actor, req *types.SubmitComponentRequest) (*db.MarketplaceComponent, error) {
	if err := validateSubmission(req); err != nil {
		return nil, err
	}

	component, err := s.store.CreateMarketplaceComponent(ctx, &db.MarketplaceComponentInput{
		AuthorID:      author.ID,
		Name:          req.Name,
		Description:   req.Description,
		Section:       string(req.Section),
		Category:      req.Category,
		Tags:          req.Tags,
		ComponentCode: req.ComponentCode,
		DefaultProps:  req.DefaultProps,
		DefaultStyles: req.DefaultStyles,
		IsPremium:     req.IsPremium,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to submit component: %w", err)
	}

	s.logger.Info("marketplace component submitted",
		zap.String("component_id", component.ID.String()),
		zap.String("author_id", author.ID.String()),
		zap.String("section", component.Section))
	return component, nil
}

func validateSubmission(req *types.SubmitComponentRequest) error {
	if err := req.Validate(); err != nil {
		return &ValidationError{Message: "invalid submission", Details: validatorDetails(err)}
	}

	document, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode submission: %w", err)
	}
	if err := schemas.ValidateJSON(schemas.MarketplaceSubmission, document); err != nil {
		var schemaErr *schemas.ValidationError
		if errors.As(err, &schemaErr) {
			return &ValidationError{Message: "invalid submission", Details: schemaErr.Messages()}
		}
		return err
	}

	if _, err := types.DecodeSectionProps(req.Section, req.DefaultProps); err != nil {
		return &ValidationError{Message: "invalid default props", Details: []string{err.Error()}}
	}
	return nil
}

func validatorDetails(err error) []string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}
	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return details
}

// ListPending returns submissions awaiting review. Admin only.
func (s *Service) ListPending(ctx context.Context, actor Actor) ([]db.MarketplaceComponent, error) {
	if !actor.IsAdmin {
		return nil, &ForbiddenError{Action: "listing pending components"}
	}
	pending, err := s.store.ListMarketplaceComponents(ctx, db.MarketplaceStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending components: %w", err)
	}
	return pending, nil
}

// Review approves or rejects a pending submission. Admin only. The approved
// registry is invalidated so the decision is visible on the next read.
func (s *Service) Review(ctx context.Context, reviewer Actor, id uuid.UUID, req *types.ReviewComponentRequest) (*db.MarketplaceComponent, error) {
	if !reviewer.IsAdmin {
		return nil, &ForbiddenError{Action: "reviewing components"}
	}
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Message: "invalid review", Details: validatorDetails(err)}
	}

	existing, err := s.store.GetMarketplaceComponent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get component: %w", err)
	}
	if existing == nil {
		return nil, &NotFoundError{ID: id}
	}
	if existing.Status != db.MarketplaceStatusPending {
		return nil, &ConflictError{ID: id, Status: existing.Status}
	}

	status := db.MarketplaceStatusRejected
	if req.Decision == "approve" {
		status = db.MarketplaceStatusApproved
	}

	reviewed, err := s.store.ReviewMarketplaceComponent(ctx, id, reviewer.ID, status, req.Notes)
	if err != nil {
		return nil, fmt.Errorf("failed to review component: %w", err)
	}
	if reviewed == nil {
		// Another reviewer got there first.
		return nil, &ConflictError{ID: id, Status: "reviewed"}
	}

	s.cache.Invalidate()
	s.logger.Info("marketplace component reviewed",
		zap.String("component_id", id.String()),
		zap.String("reviewer_id", reviewer.ID.String()),
		zap.String("status", status))
	return reviewed, nil
}

// Install records that a user installed an approved component.
func (s *Service) Install(ctx context.Context, actor Actor, id uuid.UUID) (*InstallResult, error) {
	component, err := s.approvedComponent(ctx, id)
	if err != nil {
		return nil, err
	}

	first, err := s.store.RecordInstall(ctx, id, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to install component: %w", err)
	}
	if first {
		component.Downloads++
	}

	variant, err := ToVariant(*component)
	if err != nil {
		return nil, fmt.Errorf("failed to convert component: %w", err)
	}
	return &InstallResult{Component: variant, FirstTime: first}, nil
}

// Rate records a 1-5 rating for an approved component.
func (s *Service) Rate(ctx context.Context, actor Actor, id uuid.UUID, req *types.RateComponentRequest) (*db.RatingSummary, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Message: "invalid rating", Details: validatorDetails(err)}
	}
	if _, err := s.approvedComponent(ctx, id); err != nil {
		return nil, err
	}

	summary, err := s.store.RateMarketplaceComponent(ctx, id, actor.ID, req.Rating)
	if err != nil {
		return nil, fmt.Errorf("failed to rate component: %w", err)
	}
	return summary, nil
}

// approvedComponent hides pending and rejected components from non-review actions.
func (s *Service) approvedComponent(ctx context.Context, id uuid.UUID) (*db.MarketplaceComponent, error) {
	component, err := s.store.GetMarketplaceComponent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get component: %w", err)
	}
	if component == nil || component.Status != db.MarketplaceStatusApproved {
		return nil, &NotFoundError{ID: id}
	}
	return component, nil
}
