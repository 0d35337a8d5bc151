package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/agripay/agripay/internal/domain/subscriber"
	ierr "github.com/agripay/agripay/internal/errors"
	"github.com/agripay/agripay/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// InMemorySubscriberStore implements subscriber.Repository
type InMemorySubscriberStore struct {
	*InMemoryStore[*subscriber.Subscriber]

	mu      sync.Mutex
	parcels map[string][]*subscriber.Parcel
}

// NewInMemorySubscriberStore creates a new in-memory subscriber store
func NewInMemorySubscriberStore() *InMemorySubscriberStore {
	return &InMemorySubscriberStore{
		InMemoryStore: NewInMemoryStore[*subscriber.Subscriber](),
		parcels:       make(map[string][]*subscriber.Parcel),
	}
}

func copySubscriber(s *subscriber.Subscriber) *subscriber.Subscriber {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}

func copyParcel(p *subscriber.Parcel) *subscriber.Parcel {
	if p == nil {
		return nil
	}
	out := *p
	return &out
}

func (s *InMemorySubscriberStore) Create(ctx context.Context, sub *subscriber.Subscriber) error {
	existing, _ := s.InMemoryStore.List(ctx, nil, func(_ context.Context, item *subscriber.Subscriber, _ interface{}) bool {
		return item.Telephone == sub.Telephone
	}, nil)
	if len(existing) > 0 {
		return ierr.NewError("subscriber already exists").
			WithHint("A subscriber with this telephone already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	return s.InMemoryStore.Create(ctx, sub.ID, copySubscriber(sub))
}

func (s *InMemorySubscriberStore) Get(ctx context.Context, id string) (*subscriber.Subscriber, error) {
	sub, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("subscriber not found").
			WithHint("Subscriber not found").
			Mark(ierr.ErrNotFound)
	}
	return copySubscriber(sub), nil
}

func (s *InMemorySubscriberStore) GetByTelephone(ctx context.Context, telephone string) (*subscriber.Subscriber, error) {
	subs, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, item *subscriber.Subscriber, _ interface{}) bool {
		return item.Telephone == telephone
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, ierr.NewError("subscriber not found").
			WithHint("Subscriber not found").
			Mark(ierr.ErrNotFound)
	}
	return copySubscriber(subs[0]), nil
}

func (s *InMemorySubscriberStore) List(ctx context.Context, filter *types.QueryFilter) ([]*subscriber.Subscriber, error) {
	subs, err := s.InMemoryStore.List(ctx, filter, nil, func(i, j *subscriber.Subscriber) bool {
		return i.CreatedAt.After(j.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(subs, func(item *subscriber.Subscriber, _ int) *subscriber.Subscriber {
		return copySubscriber(item)
	}), nil
}

func (s *InMemorySubscriberStore) Count(ctx context.Context) (int, error) {
	return s.InMemoryStore.Count(ctx, nil, nil)
}

func (s *InMemorySubscriberStore) IncrementTotals(ctx context.Context, id string, paymentType types.PaymentType, amount decimal.Decimal) error {
	sub, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return ierr.NewError("subscriber not found").
			WithHint("Subscriber not found").
			Mark(ierr.ErrNotFound)
	}
	updated := copySubscriber(sub)
	switch paymentType {
	case types.PaymentTypeAccessFee:
		updated.TotalAccessFeePaid = updated.TotalAccessFeePaid.Add(amount)
	case types.PaymentTypeContribution:
		updated.TotalContributionsPaid = updated.TotalContributionsPaid.Add(amount)
	default:
		return ierr.NewError("unknown payment type").
			WithHint("Payment type is invalid").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, id, updated)
}

func (s *InMemorySubscriberStore) CreateParcel(ctx context.Context, parcel *subscriber.Parcel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parcels[parcel.SubscriberID] = append(s.parcels[parcel.SubscriberID], copyParcel(parcel))
	return nil
}

func (s *InMemorySubscriberStore) ListParcels(ctx context.Context, subscriberID string) ([]*subscriber.Parcel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	parcels := lo.Map(s.parcels[subscriberID], func(p *subscriber.Parcel, _ int) *subscriber.Parcel {
		return copyParcel(p)
	})
	sort.SliceStable(parcels, func(i, j int) bool {
		if parcels[i].CreatedAt.Equal(parcels[j].CreatedAt) {
			return parcels[i].ID < parcels[j].ID
		}
		return parcels[i].CreatedAt.Before(parcels[j].CreatedAt)
	})
	return parcels, nil
}
