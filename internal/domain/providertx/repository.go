package providertx

import (
	"context"

	"github.com/agripay/agripay/internal/types"
)

// Repository defines the interface for the append-only external ledger.
// There is no Update or Delete: corrections happen by inserting the missing
// counterpart in the normalized ledger, never by editing history.
type Repository interface {
	// Create inserts the transaction. A row with the same TransactionID
	// already present fails with ErrAlreadyExists; callers treat that as
	// "duplicate transaction".
	Create(ctx context.Context, tx *ProviderTransaction) error
	Get(ctx context.Context, id string) (*ProviderTransaction, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*ProviderTransaction, error)
	// List returns rows most recent first. The reconciliation sweep calls
	// this with an unlimited filter to rescan the full ledger each run.
	List(ctx context.Context, filter *types.QueryFilter) ([]*ProviderTransaction, error)
	Count(ctx context.Context) (int, error)
}
