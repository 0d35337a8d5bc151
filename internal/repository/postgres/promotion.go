package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/agripay/agripay/internal/domain/promotion"
	ierr "github.com/agripay/agripay/internal/errors"
	"github.com/agripay/agripay/internal/logger"
	"github.com/agripay/agripay/internal/postgres"
	"github.com/agripay/agripay/internal/types"
)

type promotionRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPromotionRepository(db *postgres.DB, logger *logger.Logger) promotion.Repository {
	return &promotionRepository{db: db, logger: logger}
}

const promotionColumns = `
	id, name, discounted_rate_per_hectare, normal_rate_per_hectare,
	discount_percent, start_date, end_date,
	status, created_at, updated_at, created_by, updated_by
`

func (r *promotionRepository) Create(ctx context.Context, w *promotion.PromotionWindow) error {
	query := `
	INSERT INTO promotion_windows (` + promotionColumns + `) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
	)
	`

	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.Name,
		w.DiscountedRatePerHectare,
		w.NormalRatePerHectare,
		w.DiscountPercent,
		w.StartDate,
		w.EndDate,
		w.Status,
		w.CreatedAt,
		w.UpdatedAt,
		w.CreatedBy,
		w.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create promotion window").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *promotionRepository) Get(ctx context.Context, id string) (*promotion.PromotionWindow, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotion_windows WHERE id = $1`

	var w promotion.PromotionWindow
	if err := r.db.GetContext(ctx, &w, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("promotion not found").
				WithHintf("Promotion %s not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get promotion").
			Mark(ierr.ErrDatabase)
	}

	return &w, nil
}

func (r *promotionRepository) GetActiveAt(ctx context.Context, t time.Time) (*promotion.PromotionWindow, error) {
	// Boundaries are inclusive. Earliest start wins if windows overlap.
	query := `
	SELECT ` + promotionColumns + `
	FROM promotion_windows
	WHERE start_date <= $1 AND end_date >= $1
	ORDER BY start_date ASC
	LIMIT 1
	`

	var w promotion.PromotionWindow
	if err := r.db.GetContext(ctx, &w, query, t); err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("no active promotion").
				WithHint("No promotion window is active").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to resolve active promotion").
			Mark(ierr.ErrDatabase)
	}

	return &w, nil
}

func (r *promotionRepository) List(ctx context.Context, filter *types.QueryFilter) ([]*promotion.PromotionWindow, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotion_windows ORDER BY start_date DESC LIMIT $1 OFFSET $2`

	windows := make([]*promotion.PromotionWindow, 0)
	if err := r.db.SelectContext(ctx, &windows, query, filter.GetLimit(), filter.GetOffset()); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list promotions").
			Mark(ierr.ErrDatabase)
	}

	return windows, nil
}

func (r *promotionRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM promotion_windows`); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count promotions").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}
