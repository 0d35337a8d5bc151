package dto

import (
	"context"
	"time"

	"github.com/agripay/agripay/internal/domain/promotion"
	ierr "github.com/agripay/agripay/internal/errors"
	"github.com/agripay/agripay/internal/types"
	"github.com/agripay/agripay/internal/validator"
	"github.com/shopspring/decimal"
)

// CreatePromotionRequest opens a discount window on the access fee rate
type CreatePromotionRequest struct {
	Nom            string          `json:"nom" validate:"required"`
	TauxParHectare decimal.Decimal `json:"taux_par_hectare" validate:"required"`
	DateDebut      time.Time       `json:"date_debut" validate:"required"`
	DateFin        time.Time       `json:"date_fin" validate:"required"`
}

// Validate validates the create promotion request
func (r *CreatePromotionRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.TauxParHectare.IsZero() || r.TauxParHectare.IsNegative() {
		return ierr.NewError("invalid taux_par_hectare").
			WithHint("taux_par_hectare must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	if r.DateFin.Before(r.DateDebut) {
		return ierr.NewError("invalid window").
			WithHint("date_fin must not precede date_debut").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToPromotionWindow converts the request to a domain window. The normal
// rate is pinned at creation time so later rate changes do not rewrite
// history.
func (r *CreatePromotionRequest) ToPromotionWindow(ctx context.Context, normalRate decimal.Decimal) *promotion.PromotionWindow {
	discount := decimal.Zero
	if normalRate.IsPositive() {
		discount = normalRate.Sub(r.TauxParHectare).
			Div(normalRate).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	return &promotion.PromotionWindow{
		ID:                       types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PROMOTION),
		Name:                     r.Nom,
		DiscountedRatePerHectare: r.TauxParHectare,
		NormalRatePerHectare:     normalRate,
		DiscountPercent:          discount,
		StartDate:                r.DateDebut.UTC(),
		EndDate:                  r.DateFin.UTC(),
		BaseModel:                types.GetDefaultBaseModel(ctx),
	}
}

// PromotionResponse is the API shape of a promotion window
type PromotionResponse struct {
	ID             string          `json:"id"`
	Nom            string          `json:"nom"`
	TauxParHectare decimal.Decimal `json:"taux_par_hectare"`
	TauxNormal     decimal.Decimal `json:"taux_normal"`
	TauxRemise     decimal.Decimal `json:"taux_remise"`
	DateDebut      time.Time       `json:"date_debut"`
	DateFin        time.Time       `json:"date_fin"`
}

// NewPromotionResponse converts a domain window to the API shape
func NewPromotionResponse(p *promotion.PromotionWindow) *PromotionResponse {
	return &PromotionResponse{
		ID:             p.ID,
		Nom:            p.Name,
		TauxParHectare: p.DiscountedRatePerHectare,
		TauxNormal:     p.NormalRatePerHectare,
		TauxRemise:     p.DiscountPercent,
		DateDebut:      p.StartDate,
		DateFin:        p.EndDate,
	}
}

// ListPromotionsResponse is a paginated list of promotion windows
type ListPromotionsResponse struct {
	Items      []*PromotionResponse     `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}

// RateResolution is the outcome of resolving the access fee rate at a
// point in time
type RateResolution struct {
	RatePerHectare       decimal.Decimal
	NormalRatePerHectare decimal.Decimal
	DiscountPercent      decimal.Decimal
	PromotionName        string
	PromotionID          string
	Promoted             bool
}
