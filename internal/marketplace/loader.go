package marketplace

import (
	"context"
	"fmt"

	"github.com/jonathan/portfolio-builder/internal/db"
	"github.com/jonathan/portfolio-builder/internal/logging"
	"github.com/jonathan/portfolio-builder/internal/types"
	"go.uber.org/zap"
)

// ComponentLister lists stored components by review status
type ComponentLister interface {
	ListMarketplaceComponents(ctx context.Context, status string) ([]db.MarketplaceComponent, error)
}

// DBLoader loads approved components from the database
type DBLoader struct {
	db     ComponentLister
	logger *zap.Logger
}

// NewDBLoader creates a loader over the given store
func NewDBLoader(store ComponentLister, logger *zap.Logger) *DBLoader {
	return &DBLoader{db: store, logger: logging.OrNop(logger)}
}

// LoadApproved implements Loader. Rows whose stored props do not fit their
// section are skipped and logged.
func (l *DBLoader) LoadApproved(ctx context.Context) ([]types.MarketplaceComponentVariant, error) {
	rows, err := l.db.ListMarketplaceComponents(ctx, db.MarketplaceStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to load approved components: %w", err)
	}

	variants := make([]types.MarketplaceComponentVariant, 0, len(rows))
	for _, row := range rows {
		v, err := ToVariant(row)
		if err != nil {
			l.logger.Warn("skipping marketplace component",
				zap.String("component_id", row.ID.String()),
				zap.Error(err))
			continue
		}
		variants = append(variants, v)
	}
	return variants, nil
}

// ToVariant converts a stored component into a catalog variant.
func ToVariant(row db.MarketplaceComponent) (types.MarketplaceComponentVariant, error) {
	section := types.SectionType(row.Section)
	if !section.Valid() {
		return types.MarketplaceComponentVariant{}, fmt.Errorf("unknown section %q", row.Section)
	}
	props, err := types.DecodeSectionProps(section, row.DefaultProps)
	if err != nil {
		return types.MarketplaceComponentVariant{}, err
	}

	shape := types.SocialLinkShape("")
	if section == types.SectionHero {
		shape = types.SocialLinksArray
	}
	tags := []string(row.Tags)
	if tags == nil {
		tags = []string{}
	}

	return types.MarketplaceComponentVariant{
		ComponentVariant: types.ComponentVariant{
			ID:              row.ID.String(),
			Name:            row.Name,
			Description:     row.Description,
			Section:         section,
			Category:        types.ComponentCategory(row.Category),
			Tags:            tags,
			DefaultProps:    props,
			DefaultStyles:   row.DefaultStyles,
			IsPremium:       row.IsPremium,
			SocialLinkShape: shape,
		},
		Author:        row.AuthorName,
		Rating:        row.Rating,
		Downloads:     row.Downloads,
		ComponentCode: row.ComponentCode,
		IsMarketplace: true,
	}, nil
}
