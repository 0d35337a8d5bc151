package service

import (
	"context"
	"time"

	"github.com/agripay/agripay/internal/api/dto"
	"github.com/agripay/agripay/internal/cache"
	"github.com/agripay/agripay/internal/domain/promotion"
	ierr "github.com/agripay/agripay/internal/errors"
	"github.com/agripay/agripay/internal/types"
	"github.com/samber/lo"
)

// promotionCacheExpiry is short because windows open and close on calendar
// boundaries and a stale hit must not outlive them by much.
const promotionCacheExpiry = 1 * time.Minute

// PromotionService resolves the access fee rate for a point in time and
// manages promotion windows.
type PromotionService interface {
	CreatePromotion(ctx context.Context, req *dto.CreatePromotionRequest) (*dto.PromotionResponse, error)
	GetPromotion(ctx context.Context, id string) (*dto.PromotionResponse, error)
	ListPromotions(ctx context.Context, filter *types.QueryFilter) (*dto.ListPromotionsResponse, error)

	// ResolveRate returns the per-hectare access fee rate effective at t.
	// Window boundaries are inclusive on both ends; outside any window the
	// configured normal rate applies.
	ResolveRate(ctx context.Context, t time.Time) (*dto.RateResolution, error)
}

type promotionService struct {
	ServiceParams
}

// NewPromotionService creates a new promotion service
func NewPromotionService(params ServiceParams) PromotionService {
	return &promotionService{
		ServiceParams: params,
	}
}

func (s *promotionService) CreatePromotion(ctx context.Context, req *dto.CreatePromotionRequest) (*dto.PromotionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	window := req.ToPromotionWindow(ctx, s.Config.Billing.NormalRate())
	if err := window.Validate(); err != nil {
		return nil, err
	}

	if err := s.PromotionRepo.Create(ctx, window); err != nil {
		return nil, err
	}

	// New windows change rate resolution immediately
	s.Cache.Flush(ctx)

	s.Logger.Infow("created promotion window",
		"promotion_id", window.ID,
		"rate_per_hectare", window.DiscountedRatePerHectare,
		"start_date", window.StartDate,
		"end_date", window.EndDate)

	return dto.NewPromotionResponse(window), nil
}

func (s *promotionService) GetPromotion(ctx context.Context, id string) (*dto.PromotionResponse, error) {
	if id == "" {
		return nil, ierr.NewError("promotion id is required").
			WithHint("Promotion ID is required").
			Mark(ierr.ErrValidation)
	}

	window, err := s.PromotionRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return dto.NewPromotionResponse(window), nil
}

func (s *promotionService) ListPromotions(ctx context.Context, filter *types.QueryFilter) (*dto.ListPromotionsResponse, error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	windows, err := s.PromotionRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.PromotionRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.ListPromotionsResponse{
		Items: lo.Map(windows, func(w *promotion.PromotionWindow, _ int) *dto.PromotionResponse {
			return dto.NewPromotionResponse(w)
		}),
		Pagination: types.NewPaginationResponse(count, filter.GetLimit(), filter.GetOffset()),
	}, nil
}

func (s *promotionService) ResolveRate(ctx context.Context, t time.Time) (*dto.RateResolution, error) {
	// Second granularity dedups webhook bursts without a stale hit ever
	// straddling a window boundary
	cacheKey := cache.GenerateKey(cache.PrefixPromotion, t.UTC().Format(time.RFC3339))
	if cached, found := s.Cache.Get(ctx, cacheKey); found {
		if res, ok := cached.(*dto.RateResolution); ok {
			return res, nil
		}
	}

	normal := s.Config.Billing.NormalRate()

	window, err := s.PromotionRepo.GetActiveAt(ctx, t)
	if err != nil {
		if ierr.IsNotFound(err) {
			res := &dto.RateResolution{
				RatePerHectare:       normal,
				NormalRatePerHectare: normal,
			}
			s.Cache.Set(ctx, cacheKey, res, promotionCacheExpiry)
			return res, nil
		}
		return nil, err
	}

	res := &dto.RateResolution{
		RatePerHectare:       window.DiscountedRatePerHectare,
		NormalRatePerHectare: normal,
		DiscountPercent:      window.DiscountPercent,
		PromotionName:        window.Name,
		PromotionID:          window.ID,
		Promoted:             true,
	}
	s.Cache.Set(ctx, cacheKey, res, promotionCacheExpiry)
	return res, nil
}
