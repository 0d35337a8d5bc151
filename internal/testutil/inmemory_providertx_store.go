package testutil

import (
	"context"

	"github.com/agripay/agripay/internal/domain/providertx"
	ierr "github.com/agripay/agripay/internal/errors"
	"github.com/agripay/agripay/internal/types"
	"github.com/samber/lo"
)

// InMemoryProviderTxStore implements providertx.Repository. Keyed on the
// provider transaction id so duplicate deliveries collide like the unique
// constraint does in postgres.
type InMemoryProviderTxStore struct {
	*InMemoryStore[*providertx.ProviderTransaction]
}

// NewInMemoryProviderTxStore creates a new in-memory provider ledger store
func NewInMemoryProviderTxStore() *InMemoryProviderTxStore {
	return &InMemoryProviderTxStore{
		InMemoryStore: NewInMemoryStore[*providertx.ProviderTransaction](),
	}
}

func copyProviderTx(tx *providertx.ProviderTransaction) *providertx.ProviderTransaction {
	if tx == nil {
		return nil
	}
	out := *tx
	out.RawPayload = lo.Assign(types.Metadata{}, tx.RawPayload)
	return &out
}

func (s *InMemoryProviderTxStore) Create(ctx context.Context, tx *providertx.ProviderTransaction) error {
	if err := s.InMemoryStore.Create(ctx, tx.TransactionID, copyProviderTx(tx)); err != nil {
		return ierr.NewError("duplicate transaction").
			WithHint("This transaction was already recorded").
			WithReportableDetails(map[string]any{
				"transaction_id": tx.TransactionID,
			}).
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}

func (s *InMemoryProviderTxStore) Get(ctx context.Context, id string) (*providertx.ProviderTransaction, error) {
	txs, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, item *providertx.ProviderTransaction, _ interface{}) bool {
		return item.ID == id
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(txs) == 0 {
		return nil, ierr.NewError("transaction not found").
			WithHint("Transaction not found").
			Mark(ierr.ErrNotFound)
	}
	return copyProviderTx(txs[0]), nil
}

func (s *InMemoryProviderTxStore) GetByTransactionID(ctx context.Context, transactionID string) (*providertx.ProviderTransaction, error) {
	tx, err := s.InMemoryStore.Get(ctx, transactionID)
	if err != nil {
		return nil, ierr.NewError("transaction not found").
			WithHint("Transaction not found").
			Mark(ierr.ErrNotFound)
	}
	return copyProviderTx(tx), nil
}

func (s *InMemoryProviderTxStore) List(ctx context.Context, filter *types.QueryFilter) ([]*providertx.ProviderTransaction, error) {
	txs, err := s.InMemoryStore.List(ctx, filter, nil, func(i, j *providertx.ProviderTransaction) bool {
		if i.PaidAt.Equal(j.PaidAt) {
			return i.ID > j.ID
		}
		return i.PaidAt.After(j.PaidAt)
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(txs, func(item *providertx.ProviderTransaction, _ int) *providertx.ProviderTransaction {
		return copyProviderTx(item)
	}), nil
}

func (s *InMemoryProviderTxStore) Count(ctx context.Context) (int, error) {
	return s.InMemoryStore.Count(ctx, nil, nil)
}
