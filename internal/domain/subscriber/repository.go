package subscriber

import (
	"context"

	"github.com/agripay/agripay/internal/types"
	"github.com/shopspring/decimal"
)

// Repository defines the interface for subscriber persistence. Subscribers
// and parcels are created by the onboarding workflow and only read and
// aggregated here; IncrementTotals is the single mutation the payment core
// performs.
type Repository interface {
	Create(ctx context.Context, sub *Subscriber) error
	Get(ctx context.Context, id string) (*Subscriber, error)
	GetByTelephone(ctx context.Context, telephone string) (*Subscriber, error)
	List(ctx context.Context, filter *types.QueryFilter) ([]*Subscriber, error)
	Count(ctx context.Context) (int, error)

	// IncrementTotals adds amount to the aggregate matching paymentType.
	// Additive so concurrent ingestion of distinct transactions for the
	// same subscriber cannot lose updates.
	IncrementTotals(ctx context.Context, id string, paymentType types.PaymentType, amount decimal.Decimal) error

	// Parcel operations
	CreateParcel(ctx context.Context, parcel *Parcel) error
	ListParcels(ctx context.Context, subscriberID string) ([]*Parcel, error)
}
