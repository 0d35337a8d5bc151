package service

import (
	"context"
	"time"

	"github.com/agripay/agripay/internal/api/dto"
	"github.com/agripay/agripay/internal/domain/payment"
	"github.com/agripay/agripay/internal/domain/providertx"
	"github.com/agripay/agripay/internal/domain/subscriber"
	ierr "github.com/agripay/agripay/internal/errors"
	"github.com/agripay/agripay/internal/types"
	"github.com/shopspring/decimal"
)

// IngestionService is the webhook entry point. Provider deliveries are
// at-least-once; redeliveries are absorbed by the provider ledger's unique
// transaction id.
type IngestionService interface {
	ProcessNotification(ctx context.Context, req *dto.NotifyPaymentRequest) (*dto.NotifyPaymentResponse, error)
}

type ingestionService struct {
	ServiceParams
	promotionSvc PromotionService
	ledgerSvc    LedgerWriterService
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(params ServiceParams, promotionSvc PromotionService, ledgerSvc LedgerWriterService) IngestionService {
	return &ingestionService{
		ServiceParams: params,
		promotionSvc:  promotionSvc,
		ledgerSvc:     ledgerSvc,
	}
}

func (s *ingestionService) ProcessNotification(ctx context.Context, req *dto.NotifyPaymentRequest) (*dto.NotifyPaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sub, err := s.SubscriberRepo.GetByTelephone(ctx, req.Telephone)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.WithError(err).
				WithHint("No subscriber is enrolled with this telephone").
				WithReportableDetails(map[string]any{
					"telephone": req.Telephone,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, err
	}

	// Classification ignores the provider's type hint; the hint survives
	// only inside the raw payload.
	paymentType := payment.Classify(sub)

	parcels, err := s.SubscriberRepo.ListParcels(ctx, sub.ID)
	if err != nil {
		return nil, err
	}

	// Captured once so the stored timestamp and the rate lookup agree
	// even when the provider omits date_paiement.
	paidAt := req.PaidAt()

	amountDue, parcelID, err := s.resolveAmountDue(ctx, req, sub, parcels, paymentType, paidAt)
	if err != nil {
		return nil, err
	}

	tx := &providertx.ProviderTransaction{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PROVIDER_TRANSACTION),
		TransactionID: req.TransactionID,
		Telephone:     req.Telephone,
		Amount:        req.Montant,
		PaymentType:   paymentType,
		PaidAt:        paidAt,
		SubscriberID:  sub.ID,
		RawPayload:    s.rawPayload(req),
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	pay, err := s.ledgerSvc.Record(ctx, &RecordInput{
		Tx:         tx,
		Subscriber: sub,
		ParcelID:   parcelID,
		AmountDue:  amountDue,
	})
	if err != nil {
		if ierr.IsAlreadyExists(err) {
			s.Logger.Infow("duplicate provider delivery ignored",
				"transaction_id", req.TransactionID)
		}
		return nil, err
	}

	s.Logger.Infow("payment recorded",
		"payment_id", pay.ID,
		"transaction_id", req.TransactionID,
		"subscriber_id", sub.ID,
		"payment_type", paymentType,
		"amount", req.Montant)

	return &dto.NotifyPaymentResponse{
		PaiementID:     pay.ID,
		SouscripteurID: sub.ID,
		TypePaiement:   paymentType,
		Montant:        req.Montant,
	}, nil
}

// resolveAmountDue prices the payment at delivery time. Access fees owe
// total hectares times the rate in force at the payment date; contributions
// owe exactly what was paid, counted in daily installments downstream.
func (s *ingestionService) resolveAmountDue(ctx context.Context, req *dto.NotifyPaymentRequest, sub *subscriber.Subscriber, parcels []*subscriber.Parcel, paymentType types.PaymentType, paidAt time.Time) (decimal.Decimal, string, error) {
	parcelID := ""
	if len(parcels) > 0 {
		parcelID = parcels[0].ID
	}

	if paymentType == types.PaymentTypeAccessFee {
		rate, err := s.promotionSvc.ResolveRate(ctx, paidAt)
		if err != nil {
			return decimal.Zero, "", err
		}
		return subscriber.TotalArea(parcels).Mul(rate.RatePerHectare), parcelID, nil
	}

	return req.Montant, parcelID, nil
}

func (s *ingestionService) rawPayload(req *dto.NotifyPaymentRequest) types.Metadata {
	raw := types.Metadata{}
	for k, v := range req.DonneesSupplementaires {
		raw[k] = v
	}
	if req.TypePaiement != "" {
		raw["type_paiement_fourni"] = req.TypePaiement
	}
	return raw
}
