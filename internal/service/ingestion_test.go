package service

import (
	"context"
	"testing"
	"time"

	"github.com/agripay/agripay/internal/api/dto"
	"github.com/agripay/agripay/internal/domain/subscriber"
	ierr "github.com/agripay/agripay/internal/errors"
	"github.com/agripay/agripay/internal/idempotency"
	"github.com/agripay/agripay/internal/testutil"
	"github.com/agripay/agripay/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type IngestionServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  IngestionService
	testData struct {
		newSubscriber    *subscriber.Subscriber
		activeSubscriber *subscriber.Subscriber
	}
}

func TestIngestionService(t *testing.T) {
	suite.Run(t, new(IngestionServiceSuite))
}

func (s *IngestionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *IngestionServiceSuite) serviceParams() ServiceParams {
	return ServiceParams{
		Logger:         s.GetLogger(),
		Config:         s.GetConfig(),
		Cache:          s.GetCache(),
		IdempGen:       idempotency.NewGenerator(),
		SubscriberRepo: s.GetStores().SubscriberRepo,
		ProviderTxRepo: s.GetStores().ProviderTxRepo,
		PaymentRepo:    s.GetStores().PaymentRepo,
		PromotionRepo:  s.GetStores().PromotionRepo,
	}
}

func (s *IngestionServiceSuite) setupService() {
	params := s.serviceParams()
	promotionSvc := NewPromotionService(params)
	ledgerSvc := NewLedgerWriterService(params)
	s.service = NewIngestionService(params, promotionSvc, ledgerSvc)
}

func (s *IngestionServiceSuite) setupTestData() {
	s.testData.newSubscriber = &subscriber.Subscriber{
		ID:        "sub_new",
		Telephone: "0700000001",
		FullName:  "Awa Diabate",
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().SubscriberRepo.Create(s.GetContext(), s.testData.newSubscriber))
	s.NoError(s.GetStores().SubscriberRepo.CreateParcel(s.GetContext(), &subscriber.Parcel{
		ID:           "parcel_new_1",
		SubscriberID: s.testData.newSubscriber.ID,
		Name:         "Parcelle Nord",
		AreaHectares: decimal.NewFromFloat(2.0),
		BaseModel:    types.GetDefaultBaseModel(s.GetContext()),
	}))

	s.testData.activeSubscriber = &subscriber.Subscriber{
		ID:                 "sub_active",
		Telephone:          "0700000002",
		FullName:           "Moussa Kone",
		TotalAccessFeePaid: decimal.NewFromInt(60000),
		BaseModel:          types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().SubscriberRepo.Create(s.GetContext(), s.testData.activeSubscriber))
	s.NoError(s.GetStores().SubscriberRepo.CreateParcel(s.GetContext(), &subscriber.Parcel{
		ID:           "parcel_active_1",
		SubscriberID: s.testData.activeSubscriber.ID,
		Name:         "Parcelle Sud",
		AreaHectares: decimal.NewFromFloat(1.5),
		BaseModel:    types.GetDefaultBaseModel(s.GetContext()),
	}))
}

func (s *IngestionServiceSuite) TestProcessNotificationAccessFee() {
	resp, err := s.service.ProcessNotification(s.GetContext(), &dto.NotifyPaymentRequest{
		TransactionID: "MM-001",
		Telephone:     "0700000001",
		Montant:       decimal.NewFromInt(60000),
	})
	s.NoError(err)
	s.NotNil(resp)
	s.Equal(types.PaymentTypeAccessFee, resp.TypePaiement)
	s.Equal(s.testData.newSubscriber.ID, resp.SouscripteurID)

	pay, err := s.GetStores().PaymentRepo.GetByProviderTxID(s.GetContext(), "MM-001")
	s.NoError(err)
	s.Equal("parcel_new_1", pay.ParcelID)
	// 2.0 ha at the normal 30000/ha rate
	s.True(pay.AmountDue.Equal(decimal.NewFromInt(60000)), "amount due %s", pay.AmountDue)
	s.Equal(0, pay.InstallmentCount)

	sub, err := s.GetStores().SubscriberRepo.Get(s.GetContext(), s.testData.newSubscriber.ID)
	s.NoError(err)
	s.True(sub.TotalAccessFeePaid.Equal(decimal.NewFromInt(60000)))
	s.True(sub.TotalContributionsPaid.IsZero())
}

func (s *IngestionServiceSuite) TestProcessNotificationContribution() {
	resp, err := s.service.ProcessNotification(s.GetContext(), &dto.NotifyPaymentRequest{
		TransactionID: "MM-002",
		Telephone:     "0700000002",
		Montant:       decimal.NewFromInt(1950),
	})
	s.NoError(err)
	s.Equal(types.PaymentTypeContribution, resp.TypePaiement)

	pay, err := s.GetStores().PaymentRepo.GetByProviderTxID(s.GetContext(), "MM-002")
	s.NoError(err)
	// 1950 / 65 daily rate
	s.Equal(30, pay.InstallmentCount)
	s.True(pay.AmountDue.Equal(decimal.NewFromInt(1950)))

	sub, err := s.GetStores().SubscriberRepo.Get(s.GetContext(), s.testData.activeSubscriber.ID)
	s.NoError(err)
	s.True(sub.TotalContributionsPaid.Equal(decimal.NewFromInt(1950)))
	// Access fee aggregate untouched
	s.True(sub.TotalAccessFeePaid.Equal(decimal.NewFromInt(60000)))
}

func (s *IngestionServiceSuite) TestProcessNotificationDuplicateDelivery() {
	req := &dto.NotifyPaymentRequest{
		TransactionID: "MM-003",
		Telephone:     "0700000002",
		Montant:       decimal.NewFromInt(650),
	}

	_, err := s.service.ProcessNotification(s.GetContext(), req)
	s.NoError(err)

	// Redelivery of the same transaction id must not double anything,
	// even when the provider retries with a different amount.
	_, err = s.service.ProcessNotification(s.GetContext(), &dto.NotifyPaymentRequest{
		TransactionID: "MM-003",
		Telephone:     "0700000002",
		Montant:       decimal.NewFromInt(1300),
	})
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))

	count, err := s.GetStores().PaymentRepo.Count(s.GetContext())
	s.NoError(err)
	s.Equal(1, count)

	// First delivery wins on every surface
	tx, err := s.GetStores().ProviderTxRepo.GetByTransactionID(s.GetContext(), "MM-003")
	s.NoError(err)
	s.True(tx.Amount.Equal(decimal.NewFromInt(650)))

	sub, err := s.GetStores().SubscriberRepo.Get(s.GetContext(), s.testData.activeSubscriber.ID)
	s.NoError(err)
	s.True(sub.TotalContributionsPaid.Equal(decimal.NewFromInt(650)))
}

func (s *IngestionServiceSuite) TestProcessNotificationIgnoresProviderTypeHint() {
	// Provider claims droit_acces but the subscriber already paid the
	// access fee; state wins.
	resp, err := s.service.ProcessNotification(s.GetContext(), &dto.NotifyPaymentRequest{
		TransactionID: "MM-004",
		Telephone:     "0700000002",
		Montant:       decimal.NewFromInt(650),
		TypePaiement:  string(types.PaymentTypeAccessFee),
	})
	s.NoError(err)
	s.Equal(types.PaymentTypeContribution, resp.TypePaiement)

	tx, err := s.GetStores().ProviderTxRepo.GetByTransactionID(s.GetContext(), "MM-004")
	s.NoError(err)
	s.Equal(string(types.PaymentTypeAccessFee), tx.RawPayload["type_paiement_fourni"])
}

func (s *IngestionServiceSuite) TestProcessNotificationUnknownSubscriber() {
	_, err := s.service.ProcessNotification(s.GetContext(), &dto.NotifyPaymentRequest{
		TransactionID: "MM-005",
		Telephone:     "0799999999",
		Montant:       decimal.NewFromInt(1000),
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))

	// Nothing was written
	count, err := s.GetStores().ProviderTxRepo.Count(s.GetContext())
	s.NoError(err)
	s.Equal(0, count)
}

func (s *IngestionServiceSuite) TestProcessNotificationValidation() {
	testCases := []struct {
		name string
		req  *dto.NotifyPaymentRequest
	}{
		{
			name: "missing transaction id",
			req: &dto.NotifyPaymentRequest{
				Telephone: "0700000001",
				Montant:   decimal.NewFromInt(1000),
			},
		},
		{
			name: "missing telephone",
			req: &dto.NotifyPaymentRequest{
				TransactionID: "MM-006",
				Montant:       decimal.NewFromInt(1000),
			},
		},
		{
			name: "zero amount",
			req: &dto.NotifyPaymentRequest{
				TransactionID: "MM-007",
				Telephone:     "0700000001",
				Montant:       decimal.Zero,
			},
		},
		{
			name: "negative amount",
			req: &dto.NotifyPaymentRequest{
				TransactionID: "MM-008",
				Telephone:     "0700000001",
				Montant:       decimal.NewFromInt(-500),
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.ProcessNotification(s.GetContext(), tc.req)
			s.Error(err)
			s.True(ierr.IsValidation(err))
		})
	}
}

func (s *IngestionServiceSuite) TestProcessNotificationPromotedAccessFee() {
	window := (&dto.CreatePromotionRequest{
		Nom:            "Promo Rentree",
		TauxParHectare: decimal.NewFromInt(25000),
		DateDebut:      time.Now().UTC().Add(-24 * time.Hour),
		DateFin:        time.Now().UTC().Add(24 * time.Hour),
	}).ToPromotionWindow(s.GetContext(), s.GetConfig().Billing.NormalRate())
	s.NoError(s.GetStores().PromotionRepo.Create(s.GetContext(), window))

	paidAt := lo.ToPtr(time.Now().UTC())
	_, err := s.service.ProcessNotification(s.GetContext(), &dto.NotifyPaymentRequest{
		TransactionID: "MM-009",
		Telephone:     "0700000001",
		Montant:       decimal.NewFromInt(50000),
		DatePaiement:  paidAt,
	})
	s.NoError(err)

	pay, err := s.GetStores().PaymentRepo.GetByProviderTxID(s.GetContext(), "MM-009")
	s.NoError(err)
	// 2.0 ha at the promotional 25000/ha rate
	s.True(pay.AmountDue.Equal(decimal.NewFromInt(50000)), "amount due %s", pay.AmountDue)
}

// rateInstantRecorder captures the instant the rate was resolved at so
// tests can compare it against the stored payment timestamp.
type rateInstantRecorder struct {
	PromotionService
	resolvedAt []time.Time
}

func (r *rateInstantRecorder) ResolveRate(ctx context.Context, t time.Time) (*dto.RateResolution, error) {
	r.resolvedAt = append(r.resolvedAt, t)
	return r.PromotionService.ResolveRate(ctx, t)
}

func (s *IngestionServiceSuite) TestProcessNotificationOmittedDateUsesOneInstant() {
	params := s.serviceParams()
	recorder := &rateInstantRecorder{PromotionService: NewPromotionService(params)}
	svc := NewIngestionService(params, recorder, NewLedgerWriterService(params))

	// No date_paiement: the delivery time is sampled exactly once, so the
	// rate is resolved at the same instant that gets stored.
	_, err := svc.ProcessNotification(s.GetContext(), &dto.NotifyPaymentRequest{
		TransactionID: "MM-010",
		Telephone:     "0700000001",
		Montant:       decimal.NewFromInt(60000),
	})
	s.NoError(err)

	tx, err := s.GetStores().ProviderTxRepo.GetByTransactionID(s.GetContext(), "MM-010")
	s.NoError(err)
	s.Len(recorder.resolvedAt, 1)
	s.True(tx.PaidAt.Equal(recorder.resolvedAt[0]))
}
