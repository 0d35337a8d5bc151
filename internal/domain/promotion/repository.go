package promotion

import (
	"context"
	"time"

	"github.com/agripay/agripay/internal/types"
)

// Repository defines the interface for promotion window persistence
type Repository interface {
	Create(ctx context.Context, window *PromotionWindow) error
	Get(ctx context.Context, id string) (*PromotionWindow, error)
	// GetActiveAt returns the window containing t, boundaries inclusive,
	// or ErrNotFound when no window is active. When the non-overlap data
	// invariant is violated the window with the earliest start date wins.
	GetActiveAt(ctx context.Context, t time.Time) (*PromotionWindow, error)
	List(ctx context.Context, filter *types.QueryFilter) ([]*PromotionWindow, error)
	Count(ctx context.Context) (int, error)
}
