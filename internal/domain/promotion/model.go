package promotion

import (
	"time"

	ierr "github.com/agripay/agripay/internal/errors"
	"github.com/agripay/agripay/internal/types"
	"github.com/shopspring/decimal"
)

// PromotionWindow is a time-bounded discounted per-hectare rate for the
// access fee. Windows are assumed closed and non-overlapping; the core does
// not enforce that invariant.
type PromotionWindow struct {
	ID string `db:"id" json:"id"`
	// Name is disclosed to the payer when the window applies
	Name string `db:"name" json:"name"`
	// Discounted per-hectare rate while the window is active
	DiscountedRatePerHectare decimal.Decimal `db:"discounted_rate_per_hectare" json:"discounted_rate_per_hectare"`
	// Normal per-hectare rate the discount is taken from
	NormalRatePerHectare decimal.Decimal `db:"normal_rate_per_hectare" json:"normal_rate_per_hectare"`
	// DiscountPercent for disclosure, e.g. 16.67
	DiscountPercent decimal.Decimal `db:"discount_percent" json:"discount_percent"`
	// StartDate and EndDate bound the window, both inclusive
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`

	types.BaseModel
}

// Validate validates the promotion window
func (w *PromotionWindow) Validate() error {
	if w.Name == "" {
		return ierr.NewError("name is required").
			WithHint("Promotion name is required").
			Mark(ierr.ErrValidation)
	}
	if !w.DiscountedRatePerHectare.IsPositive() {
		return ierr.NewError("invalid discounted rate").
			WithHint("Discounted rate must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	if w.DiscountedRatePerHectare.GreaterThan(w.NormalRatePerHectare) {
		return ierr.NewError("discounted rate above normal rate").
			WithHint("Discounted rate cannot exceed the normal rate").
			Mark(ierr.ErrValidation)
	}
	if w.EndDate.Before(w.StartDate) {
		return ierr.NewError("window ends before it starts").
			WithHint("End date must not be before start date").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Contains reports whether t falls inside the window, boundaries included
func (w *PromotionWindow) Contains(t time.Time) bool {
	return !t.Before(w.StartDate) && !t.After(w.EndDate)
}

// TableName returns the table name for the promotion window
func (w *PromotionWindow) TableName() string {
	return "promotion_windows"
}
