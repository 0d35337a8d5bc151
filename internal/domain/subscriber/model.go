package subscriber

import (
	ierr "github.com/agripay/agripay/internal/errors"
	"github.com/agripay/agripay/internal/types"
	"github.com/shopspring/decimal"
)

// Subscriber is a member of the agricultural subscription program. The
// phone number is the identity key the mobile-money provider reports
// payments under; the two totals are the aggregates the ledger writer
// maintains.
type Subscriber struct {
	// Unique identifier for this subscriber
	ID string `db:"id" json:"id"`
	// The telephone number payments are attributed to; unique
	Telephone string `db:"telephone" json:"telephone"`
	// Full name as captured at onboarding
	FullName string `db:"full_name" json:"full_name"`
	// Cumulative access-fee amount ever recorded for this subscriber.
	// A value above zero is what flips classification from access fee to
	// recurring contribution.
	TotalAccessFeePaid decimal.Decimal `db:"total_access_fee_paid" json:"total_access_fee_paid"`
	// Cumulative recurring contributions ever recorded
	TotalContributionsPaid decimal.Decimal `db:"total_contributions_paid" json:"total_contributions_paid"`

	types.BaseModel
}

// Parcel is a plot of land enrolled under a subscriber. Access fees are
// priced on the summed area.
type Parcel struct {
	ID           string          `db:"id" json:"id"`
	SubscriberID string          `db:"subscriber_id" json:"subscriber_id"`
	Name         string          `db:"name" json:"name"`
	AreaHectares decimal.Decimal `db:"area_hectares" json:"area_hectares"`

	types.BaseModel
}

// Validate validates the subscriber
func (s *Subscriber) Validate() error {
	if s.Telephone == "" {
		return ierr.NewError("telephone is required").
			WithHint("Subscriber telephone is required").
			Mark(ierr.ErrValidation)
	}
	if s.TotalAccessFeePaid.IsNegative() || s.TotalContributionsPaid.IsNegative() {
		return ierr.NewError("negative aggregate total").
			WithHint("Subscriber totals cannot be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Validate validates the parcel
func (p *Parcel) Validate() error {
	if p.SubscriberID == "" {
		return ierr.NewError("subscriber id is required").
			WithHint("Parcel must belong to a subscriber").
			Mark(ierr.ErrValidation)
	}
	if !p.AreaHectares.IsPositive() {
		return ierr.NewError("invalid parcel area").
			WithHint("Parcel area must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TotalArea sums parcel areas in hectares
func TotalArea(parcels []*Parcel) decimal.Decimal {
	total := decimal.Zero
	for _, p := range parcels {
		total = total.Add(p.AreaHectares)
	}
	return total
}
