package payment

import (
	"time"

	ierr "github.com/agripay/agripay/internal/errors"
	"github.com/agripay/agripay/internal/types"
	"github.com/shopspring/decimal"
)

// Payment is one row of the normalized ledger: the CRM's own view of a
// provider transaction, attached to a parcel and a campaign year. Each
// provider transaction maps to at most one Payment, correlated by
// ProviderTxID.
type Payment struct {
	// Unique identifier for this payment
	ID string `db:"id" json:"id"`
	// Unique key used to prevent duplicate payment processing; derived from
	// the provider transaction id so ingestion and reconciliation collide on
	// the same key
	IdempotencyKey string `db:"idempotency_key" json:"idempotency_key"`
	// Subscriber the payment was recorded for
	SubscriberID string `db:"subscriber_id" json:"subscriber_id"`
	// Parcel the payment is booked against; the subscriber's first parcel
	// when several exist
	ParcelID string `db:"parcel_id" json:"parcel_id"`
	// Classification the payment was recorded under
	PaymentType types.PaymentType `db:"payment_type" json:"payment_type"`
	// AmountDue is what the pricing rules said was owed at recording time
	AmountDue decimal.Decimal `db:"amount_due" json:"amount_due"`
	// AmountPaid is what the provider actually delivered
	AmountPaid decimal.Decimal `db:"amount_paid" json:"amount_paid"`
	// InstallmentCount is amount_paid / daily_rate for recurring payments,
	// zero for access fees
	InstallmentCount int `db:"installment_count" json:"installment_count"`
	// When the payment happened
	PaidAt time.Time `db:"paid_at" json:"paid_at"`
	// How the money moved
	PaymentMode types.PaymentMode `db:"payment_mode" json:"payment_mode"`
	// ProviderTxID correlates back to the external ledger; unique
	ProviderTxID string `db:"provider_tx_id" json:"provider_tx_id"`
	// FiscalYear is the campaign-year label, e.g. "2025-2026"
	FiscalYear string `db:"fiscal_year" json:"fiscal_year"`

	types.BaseModel
}

// Validate validates the payment
func (p *Payment) Validate() error {
	if p.ProviderTxID == "" {
		return ierr.NewError("provider tx id is required").
			WithHint("Payment must correlate to a provider transaction").
			Mark(ierr.ErrValidation)
	}
	if p.SubscriberID == "" {
		return ierr.NewError("subscriber id is required").
			WithHint("Payment must belong to a subscriber").
			Mark(ierr.ErrValidation)
	}
	if p.AmountPaid.IsZero() || p.AmountPaid.IsNegative() {
		return ierr.NewError("invalid amount").
			WithHint("Amount must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	if err := p.PaymentType.Validate(); err != nil {
		return ierr.WithError(err).
			WithHint("Payment type is invalid").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TableName returns the table name for the payment
func (p *Payment) TableName() string {
	return "payments"
}
