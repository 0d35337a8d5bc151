package testutil

import (
	"context"

	"github.com/agripay/agripay/internal/domain/payment"
	ierr "github.com/agripay/agripay/internal/errors"
	"github.com/agripay/agripay/internal/types"
	"github.com/samber/lo"
)

// InMemoryPaymentStore implements payment.Repository. Keyed on the
// provider tx correlation so the repair path collides with ingestion like
// the unique constraint does in postgres.
type InMemoryPaymentStore struct {
	*InMemoryStore[*payment.Payment]
}

// NewInMemoryPaymentStore creates a new in-memory normalized ledger store
func NewInMemoryPaymentStore() *InMemoryPaymentStore {
	return &InMemoryPaymentStore{
		InMemoryStore: NewInMemoryStore[*payment.Payment](),
	}
}

func copyPayment(p *payment.Payment) *payment.Payment {
	if p == nil {
		return nil
	}
	out := *p
	return &out
}

func (s *InMemoryPaymentStore) Create(ctx context.Context, p *payment.Payment) error {
	if err := s.InMemoryStore.Create(ctx, p.ProviderTxID, copyPayment(p)); err != nil {
		return ierr.NewError("payment already recorded").
			WithHint("A payment for this transaction already exists").
			WithReportableDetails(map[string]any{
				"provider_tx_id": p.ProviderTxID,
			}).
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}

func (s *InMemoryPaymentStore) Get(ctx context.Context, id string) (*payment.Payment, error) {
	pays, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, item *payment.Payment, _ interface{}) bool {
		return item.ID == id
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(pays) == 0 {
		return nil, ierr.NewError("payment not found").
			WithHint("Payment not found").
			Mark(ierr.ErrNotFound)
	}
	return copyPayment(pays[0]), nil
}

func (s *InMemoryPaymentStore) GetByProviderTxID(ctx context.Context, providerTxID string) (*payment.Payment, error) {
	p, err := s.InMemoryStore.Get(ctx, providerTxID)
	if err != nil {
		return nil, ierr.NewError("payment not found").
			WithHint("Payment not found").
			Mark(ierr.ErrNotFound)
	}
	return copyPayment(p), nil
}

func (s *InMemoryPaymentStore) ExistsByProviderTxID(ctx context.Context, providerTxID string) (bool, error) {
	_, err := s.InMemoryStore.Get(ctx, providerTxID)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (s *InMemoryPaymentStore) List(ctx context.Context, filter *types.QueryFilter) ([]*payment.Payment, error) {
	pays, err := s.InMemoryStore.List(ctx, filter, nil, func(i, j *payment.Payment) bool {
		if i.PaidAt.Equal(j.PaidAt) {
			return i.ID > j.ID
		}
		return i.PaidAt.After(j.PaidAt)
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(pays, func(item *payment.Payment, _ int) *payment.Payment {
		return copyPayment(item)
	}), nil
}

func (s *InMemoryPaymentStore) Count(ctx context.Context) (int, error) {
	return s.InMemoryStore.Count(ctx, nil, nil)
}
