package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// -----------------------------------------------------------------------------
// Portfolio Methods
// -----------------------------------------------------------------------------

const portfolioColumns = `id, user_id, name, slug, description, layout, is_public, created_at, updated_at`

func scanPortfolio(row pgx.Row) (*Portfolio, error) {
	var p Portfolio
	var layout []byte
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Slug, &p.Description, &layout, &p.IsPublic, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(layout, &p.Layout); err != nil {
		return nil, fmt.Errorf("failed to decode layout of portfolio %s: %w", p.ID, err)
	}
	return &p, nil
}

func encodeLayout(layout []types.PortfolioComponent) ([]byte, error) {
	if layout == nil {
		layout = []types.PortfolioComponent{}
	}
	data, err := json.Marshal(layout)
	if err != nil {
		return nil, fmt.Errorf("failed to encode layout: %w", err)
	}
	return data, nil
}

// CreatePortfolio persists a mapped portfolio envelope verbatim
func (db *DB) CreatePortfolio(ctx context.Context, userID uuid.UUID, data *types.SavePortfolioData) (*Portfolio, error) {
	layout, err := encodeLayout(data.Layout)
	if err != nil {
		return nil, err
	}

	p, err := scanPortfolio(db.pool.QueryRow(ctx,
		`INSERT INTO portfolios (user_id, name, slug, description, layout, is_public)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+portfolioColumns,
		userID, data.Name, data.Slug, data.Description, layout, data.IsPublic,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create portfolio: %w", err)
	}
	return p, nil
}

// GetPortfolio retrieves a portfolio by ID. Returns nil, nil if not found.
func (db *DB) GetPortfolio(ctx context.Context, id uuid.UUID) (*Portfolio, error) {
	p, err := scanPortfolio(db.pool.QueryRow(ctx,
		`SELECT `+portfolioColumns+` FROM portfolios WHERE id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}
	return p, nil
}

// GetPublicPortfolioBySlug retrieves a public portfolio. Private portfolios are
// reported as missing.
func (db *DB) GetPublicPortfolioBySlug(ctx context.Context, slug string) (*Portfolio, error) {
	p, err := scanPortfolio(db.pool.QueryRow(ctx,
		`SELECT `+portfolioColumns+` FROM portfolios WHERE slug = $1 AND is_public`, slug))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio by slug: %w", err)
	}
	return p, nil
}

// ListPortfoliosByUser lists a user's portfolios, most recently updated first
func (db *DB) ListPortfoliosByUser(ctx context.Context, userID uuid.UUID) ([]PortfolioSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, slug, description, is_public, jsonb_array_length(layout), updated_at
		 FROM portfolios WHERE user_id = $1
		 ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}
	defer rows.Close()

	summaries := []PortfolioSummary{}
	for rows.Next() {
		var s PortfolioSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Slug, &s.Description, &s.IsPublic, &s.Sections, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// UpdatePortfolioLayout replaces the layout, and the visibility when isPublic is
// non-nil. Returns nil, nil if the portfolio does not exist.
func (db *DB) UpdatePortfolioLayout(ctx context.Context, id uuid.UUID, layout []types.PortfolioComponent, isPublic *bool) (*Portfolio, error) {
	encoded, err := encodeLayout(layout)
	if err != nil {
		return nil, err
	}

	p, err := scanPortfolio(db.pool.QueryRow(ctx,
		`UPDATE portfolios
		 SET layout = $1, is_public = COALESCE($2, is_public), updated_at = NOW()
		 WHERE id = $3
		 RETURNING `+portfolioColumns,
		encoded, isPublic, id,
	))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update portfolio layout: %w", err)
	}
	return p, nil
}

// DeletePortfolio removes a portfolio. Returns false if nothing was deleted.
func (db *DB) DeletePortfolio(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM portfolios WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete portfolio: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
