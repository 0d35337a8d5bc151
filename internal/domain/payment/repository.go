package payment

import (
	"context"

	"github.com/agripay/agripay/internal/types"
)

// Repository defines the interface for the append-only normalized ledger
type Repository interface {
	// Create inserts the payment. A row correlated to the same provider
	// transaction already present fails with ErrAlreadyExists, which the
	// reconciliation sweep treats as already-repaired.
	Create(ctx context.Context, payment *Payment) error
	Get(ctx context.Context, id string) (*Payment, error)
	GetByProviderTxID(ctx context.Context, providerTxID string) (*Payment, error)
	ExistsByProviderTxID(ctx context.Context, providerTxID string) (bool, error)
	List(ctx context.Context, filter *types.QueryFilter) ([]*Payment, error)
	Count(ctx context.Context) (int, error)
}
