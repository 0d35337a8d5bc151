package testutil

import (
	"context"
	"time"

	"github.com/agripay/agripay/internal/domain/promotion"
	ierr "github.com/agripay/agripay/internal/errors"
	"github.com/agripay/agripay/internal/types"
	"github.com/samber/lo"
)

// InMemoryPromotionStore implements promotion.Repository
type InMemoryPromotionStore struct {
	*InMemoryStore[*promotion.PromotionWindow]
}

// NewInMemoryPromotionStore creates a new in-memory promotion store
func NewInMemoryPromotionStore() *InMemoryPromotionStore {
	return &InMemoryPromotionStore{
		InMemoryStore: NewInMemoryStore[*promotion.PromotionWindow](),
	}
}

func copyPromotion(w *promotion.PromotionWindow) *promotion.PromotionWindow {
	if w == nil {
		return nil
	}
	out := *w
	return &out
}

func (s *InMemoryPromotionStore) Create(ctx context.Context, window *promotion.PromotionWindow) error {
	return s.InMemoryStore.Create(ctx, window.ID, copyPromotion(window))
}

func (s *InMemoryPromotionStore) Get(ctx context.Context, id string) (*promotion.PromotionWindow, error) {
	w, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("promotion not found").
			WithHint("Promotion not found").
			Mark(ierr.ErrNotFound)
	}
	return copyPromotion(w), nil
}

func (s *InMemoryPromotionStore) GetActiveAt(ctx context.Context, t time.Time) (*promotion.PromotionWindow, error) {
	windows, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, item *promotion.PromotionWindow, _ interface{}) bool {
		return item.Contains(t)
	}, func(i, j *promotion.PromotionWindow) bool {
		return i.StartDate.Before(j.StartDate)
	})
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return nil, ierr.NewError("no active promotion").
			WithHint("No promotion window is active at this time").
			Mark(ierr.ErrNotFound)
	}
	return copyPromotion(windows[0]), nil
}

func (s *InMemoryPromotionStore) List(ctx context.Context, filter *types.QueryFilter) ([]*promotion.PromotionWindow, error) {
	windows, err := s.InMemoryStore.List(ctx, filter, nil, func(i, j *promotion.PromotionWindow) bool {
		return i.StartDate.After(j.StartDate)
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(windows, func(item *promotion.PromotionWindow, _ int) *promotion.PromotionWindow {
		return copyPromotion(item)
	}), nil
}

func (s *InMemoryPromotionStore) Count(ctx context.Context) (int, error) {
	return s.InMemoryStore.Count(ctx, nil, nil)
}
