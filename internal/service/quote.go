package service

import (
	"context"
	"time"

	"github.com/agripay/agripay/internal/api/dto"
	"github.com/agripay/agripay/internal/domain/payment"
	"github.com/agripay/agripay/internal/domain/subscriber"
	ierr "github.com/agripay/agripay/internal/errors"
	"github.com/agripay/agripay/internal/types"
)

// QuoteService answers "how much should this subscriber pay next". It is a
// read-only composition of the classifier, the promotion resolver and the
// contribution calculator; it never touches the ledgers.
type QuoteService interface {
	GetQuote(ctx context.Context, telephone string) (*dto.QuoteResponse, error)
}

type quoteService struct {
	ServiceParams
	promotionSvc    PromotionService
	contributionSvc ContributionService
}

// NewQuoteService creates a new quote service
func NewQuoteService(params ServiceParams, promotionSvc PromotionService, contributionSvc ContributionService) QuoteService {
	return &quoteService{
		ServiceParams:   params,
		promotionSvc:    promotionSvc,
		contributionSvc: contributionSvc,
	}
}

func (s *quoteService) GetQuote(ctx context.Context, telephone string) (*dto.QuoteResponse, error) {
	if telephone == "" {
		return nil, ierr.NewError("telephone is required").
			WithHint("telephone is required").
			Mark(ierr.ErrValidation)
	}

	sub, err := s.SubscriberRepo.GetByTelephone(ctx, telephone)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.WithError(err).
				WithHint("No subscriber is enrolled with this telephone").
				WithReportableDetails(map[string]any{
					"telephone": telephone,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, err
	}

	parcels, err := s.SubscriberRepo.ListParcels(ctx, sub.ID)
	if err != nil {
		return nil, err
	}

	resp := &dto.QuoteResponse{
		Souscripteur: dto.QuoteSubscriberInfo{
			SouscripteurID:    sub.ID,
			NomComplet:        sub.FullName,
			Telephone:         sub.Telephone,
			SuperficieTotale:  subscriber.TotalArea(parcels),
			NombreDeParcelles: len(parcels),
		},
		TypePaiement: payment.Classify(sub),
	}

	now := time.Now().UTC()

	if resp.TypePaiement == types.PaymentTypeAccessFee {
		return s.quoteAccessFee(ctx, resp, parcels, now)
	}
	return s.quoteContribution(ctx, resp, sub, now)
}

// quoteAccessFee prices the entry fee for the subscriber's total area at
// the rate in force right now, disclosing the promotion when one applies.
func (s *quoteService) quoteAccessFee(ctx context.Context, resp *dto.QuoteResponse, parcels []*subscriber.Parcel, now time.Time) (*dto.QuoteResponse, error) {
	rate, err := s.promotionSvc.ResolveRate(ctx, now)
	if err != nil {
		return nil, err
	}

	area := subscriber.TotalArea(parcels)
	resp.MontantRecommande = area.Mul(rate.RatePerHectare)
	resp.Statut = types.ArrearsStatusUnknown

	if rate.Promoted {
		normal := area.Mul(rate.NormalRatePerHectare)
		resp.Promotion = &dto.PromotionDisclosure{
			Nom:           rate.PromotionName,
			TauxRemise:    rate.DiscountPercent,
			MontantNormal: normal,
			Economie:      normal.Sub(resp.MontantRecommande),
		}
	}
	return resp, nil
}

func (s *quoteService) quoteContribution(ctx context.Context, resp *dto.QuoteResponse, sub *subscriber.Subscriber, now time.Time) (*dto.QuoteResponse, error) {
	standing := s.contributionSvc.AssessStanding(ctx, sub, now)
	resp.MontantRecommande = standing.RecommendedAmount
	resp.Statut = standing.Status
	return resp, nil
}
