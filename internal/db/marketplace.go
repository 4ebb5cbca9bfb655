package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Marketplace Methods
// -----------------------------------------------------------------------------

const marketplaceColumns = `c.id, c.author_id, u.name, c.name, c.description, c.section, c.category,
	c.tags, c.component_code, c.default_props, c.default_styles, c.is_premium, c.status,
	c.review_notes, c.reviewed_by, c.reviewed_at, c.downloads, c.rating, c.rating_count,
	c.created_at, c.updated_at`

const marketplaceFrom = ` FROM marketplace_components c JOIN users u ON u.id = c.author_id`

func scanMarketplaceComponent(row pgx.Row) (*MarketplaceComponent, error) {
	var c MarketplaceComponent
	var styles []byte
	err := row.Scan(&c.ID, &c.AuthorID, &c.AuthorName, &c.Name, &c.Description, &c.Section, &c.Category,
		&c.Tags, &c.ComponentCode, &c.DefaultProps, &styles, &c.IsPremium, &c.Status,
		&c.ReviewNotes, &c.ReviewedBy, &c.ReviewedAt, &c.Downloads, &c.Rating, &c.RatingCount,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(styles) > 0 {
		if err := json.Unmarshal(styles, &c.DefaultStyles); err != nil {
			return nil, fmt.Errorf("failed to decode styles of component %s: %w", c.ID, err)
		}
	}
	return &c, nil
}

// CreateMarketplaceComponent stores a new submission in pending status
func (db *DB) CreateMarketplaceComponent(ctx context.Context, input *MarketplaceComponentInput) (*MarketplaceComponent, error) {
	props := input.DefaultProps
	if len(props) == 0 {
		props = []byte("{}")
	}
	styles, err := json.Marshal(input.DefaultStyles)
	if err != nil {
		return nil, fmt.Errorf("failed to encode default styles: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO marketplace_components
		   (author_id, name, description, section, category, tags, component_code,
		    default_props, default_styles, is_premium)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		input.AuthorID, input.Name, input.Description, input.Section, input.Category,
		StringArray(input.Tags), input.ComponentCode, props, styles, input.IsPremium,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create marketplace component: %w", err)
	}

	return db.GetMarketplaceComponent(ctx, id)
}

// GetMarketplaceComponent retrieves a component by ID. Returns nil, nil if not found.
func (db *DB) GetMarketplaceComponent(ctx context.Context, id uuid.UUID) (*MarketplaceComponent, error) {
	c, err := scanMarketplaceComponent(db.pool.QueryRow(ctx,
		`SELECT `+marketplaceColumns+marketplaceFrom+` WHERE c.id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get marketplace component: %w", err)
	}
	return c, nil
}

// ListMarketplaceComponents lists components in the given status, most
// downloaded first.
func (db *DB) ListMarketplaceComponents(ctx context.Context, status string) ([]MarketplaceComponent, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+marketplaceColumns+marketplaceFrom+`
		 WHERE c.status = $1
		 ORDER BY c.downloads DESC, c.created_at ASC`, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list marketplace components: %w", err)
	}
	defer rows.Close()

	components := []MarketplaceComponent{}
	for rows.Next() {
		c, err := scanMarketplaceComponent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan marketplace component: %w", err)
		}
		components = append(components, *c)
	}
	return components, rows.Err()
}

// ReviewMarketplaceComponent moves a pending component to approved or rejected.
// Returns nil, nil if the component does not exist or was already reviewed.
func (db *DB) ReviewMarketplaceComponent(ctx context.Context, id, reviewerID uuid.UUID, status, notes string) (*MarketplaceComponent, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE marketplace_components
		 SET status = $1, review_notes = $2, reviewed_by = $3, reviewed_at = NOW(), updated_at = NOW()
		 WHERE id = $4 AND status = 'pending'`,
		status, nullIfEmpty(notes), reviewerID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to review marketplace component: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return db.GetMarketplaceComponent(ctx, id)
}

// RecordInstall records that userID installed a component. The download count is
// incremented only on the first install per user; the return value reports
// whether this call was that first install.
func (db *DB) RecordInstall(ctx context.Context, componentID, userID uuid.UUID) (bool, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`INSERT INTO marketplace_installs (component_id, user_id) VALUES ($1, $2)
		 ON CONFLICT (component_id, user_id) DO NOTHING`,
		componentID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to record install: %w", err)
	}
	first := tag.RowsAffected() > 0
	if first {
		if _, err := tx.Exec(ctx,
			`UPDATE marketplace_components SET downloads = downloads + 1 WHERE id = $1`, componentID,
		); err != nil {
			return false, fmt.Errorf("failed to increment downloads: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit install: %w", err)
	}
	return first, nil
}

// RateMarketplaceComponent records or replaces a user's 1-5 rating and
// recomputes the component's average.
func (db *DB) RateMarketplaceComponent(ctx context.Context, componentID, userID uuid.UUID, rating int) (*RatingSummary, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO marketplace_ratings (component_id, user_id, rating) VALUES ($1, $2, $3)
		 ON CONFLICT (component_id, user_id) DO UPDATE SET rating = EXCLUDED.rating, rated_at = NOW()`,
		componentID, userID, rating,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record rating: %w", err)
	}

	var summary RatingSummary
	err = tx.QueryRow(ctx,
		`UPDATE marketplace_components c
		 SET rating = agg.avg, rating_count = agg.cnt, updated_at = NOW()
		 FROM (SELECT AVG(rating)::float8 AS avg, COUNT(*)::int AS cnt
		       FROM marketplace_ratings WHERE component_id = $1) agg
		 WHERE c.id = $1
		 RETURNING c.rating, c.rating_count`,
		componentID,
	).Scan(&summary.Rating, &summary.RatingCount)
	if err != nil {
		return nil, fmt.Errorf("failed to update rating: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit rating: %w", err)
	}
	return &summary, nil
}
