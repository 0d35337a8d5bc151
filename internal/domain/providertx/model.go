package providertx

import (
	"time"

	ierr "github.com/agripay/agripay/internal/errors"
	"github.com/agripay/agripay/internal/types"
	"github.com/shopspring/decimal"
)

// ProviderTransaction is one row of the external ledger: the mobile-money
// notification exactly as the provider delivered it, keyed by the
// provider's transaction id. Rows are created once by the ingestion gateway
// and never mutated or deleted; the unique constraint on TransactionID is
// the sole idempotency guard under at-least-once delivery.
type ProviderTransaction struct {
	// Unique identifier for this ledger row
	ID string `db:"id" json:"id"`
	// The provider's transaction id; globally unique, the idempotency key
	TransactionID string `db:"transaction_id" json:"transaction_id"`
	// Telephone the provider attributed the payment to
	Telephone string `db:"telephone" json:"telephone"`
	// Amount paid, whole currency units
	Amount decimal.Decimal `db:"amount" json:"amount"`
	// Classification assigned at ingestion time. The provider's own type
	// hint is advisory only and lives in the raw payload.
	PaymentType types.PaymentType `db:"payment_type" json:"payment_type"`
	// When the payment happened according to the provider
	PaidAt time.Time `db:"paid_at" json:"paid_at"`
	// Subscriber resolved at ingestion time
	SubscriberID string `db:"subscriber_id" json:"subscriber_id"`
	// RawPayload keeps the provider's metadata verbatim
	RawPayload types.Metadata `db:"raw_payload" json:"raw_payload,omitempty"`

	types.BaseModel
}

// Validate validates the provider transaction
func (t *ProviderTransaction) Validate() error {
	if t.TransactionID == "" {
		return ierr.NewError("transaction id is required").
			WithHint("Provider transaction id is required").
			Mark(ierr.ErrValidation)
	}
	if t.Telephone == "" {
		return ierr.NewError("telephone is required").
			WithHint("Telephone is required").
			Mark(ierr.ErrValidation)
	}
	if t.Amount.IsZero() || t.Amount.IsNegative() {
		return ierr.NewError("invalid amount").
			WithHint("Amount must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	if err := t.PaymentType.Validate(); err != nil {
		return ierr.WithError(err).
			WithHint("Payment type is invalid").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TableName returns the table name for the provider transaction
func (t *ProviderTransaction) TableName() string {
	return "provider_transactions"
}
