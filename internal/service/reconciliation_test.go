package service

import (
	"testing"
	"time"

	"github.com/agripay/agripay/internal/domain/providertx"
	"github.com/agripay/agripay/internal/domain/subscriber"
	"github.com/agripay/agripay/internal/idempotency"
	"github.com/agripay/agripay/internal/testutil"
	"github.com/agripay/agripay/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ReconciliationServiceSuite struct {
	testutil.BaseServiceTestSuite
	service   ReconciliationService
	ledgerSvc LedgerWriterService
	testData  struct {
		sub *subscriber.Subscriber
	}
}

func TestReconciliationService(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceSuite))
}

func (s *ReconciliationServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	params := ServiceParams{
		Logger:         s.GetLogger(),
		Config:         s.GetConfig(),
		Cache:          s.GetCache(),
		IdempGen:       idempotency.NewGenerator(),
		SubscriberRepo: s.GetStores().SubscriberRepo,
		ProviderTxRepo: s.GetStores().ProviderTxRepo,
		PaymentRepo:    s.GetStores().PaymentRepo,
		PromotionRepo:  s.GetStores().PromotionRepo,
	}
	s.ledgerSvc = NewLedgerWriterService(params)
	s.service = NewReconciliationService(params, NewPromotionService(params), s.ledgerSvc)

	s.testData.sub = &subscriber.Subscriber{
		ID:                 "sub_rec",
		Telephone:          "0700000030",
		FullName:           "Aminata Coulibaly",
		TotalAccessFeePaid: decimal.NewFromInt(60000),
		BaseModel:          types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().SubscriberRepo.Create(s.GetContext(), s.testData.sub))
	s.NoError(s.GetStores().SubscriberRepo.CreateParcel(s.GetContext(), &subscriber.Parcel{
		ID:           "parcel_rec_1",
		SubscriberID: s.testData.sub.ID,
		AreaHectares: decimal.NewFromFloat(2.0),
		BaseModel:    types.GetDefaultBaseModel(s.GetContext()),
	}))
}

// orphanedProviderEntry simulates a crash between the provider insert and
// the normalized insert: the money landed, the counterpart never did.
func (s *ReconciliationServiceSuite) orphanedProviderEntry(txID string, amount int64) *providertx.ProviderTransaction {
	tx := &providertx.ProviderTransaction{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PROVIDER_TRANSACTION),
		TransactionID: txID,
		Telephone:     s.testData.sub.Telephone,
		Amount:        decimal.NewFromInt(amount),
		PaymentType:   types.PaymentTypeContribution,
		PaidAt:        s.GetNow().Add(-time.Hour),
		SubscriberID:  s.testData.sub.ID,
		BaseModel:     types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().ProviderTxRepo.Create(s.GetContext(), tx))
	return tx
}

func (s *ReconciliationServiceSuite) TestRepairsMissingNormalizedEntry() {
	s.orphanedProviderEntry("MM-REC-1", 1950)

	summary, err := s.service.Run(s.GetContext())
	s.NoError(err)
	s.Equal(1, summary.TotalVerifies)
	s.Equal(1, summary.Corriges)
	s.Len(summary.Incoherences, 1)
	s.Equal(types.IncoherenceMissingEntry, summary.Incoherences[0].Type)
	s.Equal("MM-REC-1", summary.Incoherences[0].TransactionID)

	pay, err := s.GetStores().PaymentRepo.GetByProviderTxID(s.GetContext(), "MM-REC-1")
	s.NoError(err)
	s.Equal(s.testData.sub.ID, pay.SubscriberID)
	s.Equal("parcel_rec_1", pay.ParcelID)
	s.Equal(30, pay.InstallmentCount)
}

func (s *ReconciliationServiceSuite) TestRepairNeverTouchesAggregates() {
	s.orphanedProviderEntry("MM-REC-2", 1950)

	_, err := s.service.Run(s.GetContext())
	s.NoError(err)

	// The sweep restores ledger correlation only; the aggregate drift from
	// the interrupted write stays visible.
	sub, err := s.GetStores().SubscriberRepo.Get(s.GetContext(), s.testData.sub.ID)
	s.NoError(err)
	s.True(sub.TotalContributionsPaid.IsZero())
	s.True(sub.TotalAccessFeePaid.Equal(decimal.NewFromInt(60000)))
}

func (s *ReconciliationServiceSuite) TestSecondRunRepairsNothing() {
	s.orphanedProviderEntry("MM-REC-3", 650)

	first, err := s.service.Run(s.GetContext())
	s.NoError(err)
	s.Equal(1, first.Corriges)

	second, err := s.service.Run(s.GetContext())
	s.NoError(err)
	s.Equal(1, second.TotalVerifies)
	s.Equal(0, second.Corriges)
	s.Empty(second.Incoherences)
}

func (s *ReconciliationServiceSuite) TestOrphanTransactionNeverSelfHeals() {
	tx := &providertx.ProviderTransaction{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PROVIDER_TRANSACTION),
		TransactionID: "MM-REC-4",
		Telephone:     "0788888888",
		Amount:        decimal.NewFromInt(650),
		PaymentType:   types.PaymentTypeContribution,
		PaidAt:        s.GetNow(),
		BaseModel:     types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().ProviderTxRepo.Create(s.GetContext(), tx))

	for run := 0; run < 2; run++ {
		summary, err := s.service.Run(s.GetContext())
		s.NoError(err)
		s.Equal(0, summary.Corriges)
		s.Len(summary.Incoherences, 1)
		s.Equal(types.IncoherenceOrphanTransaction, summary.Incoherences[0].Type)
		s.Equal("0788888888", summary.Incoherences[0].Telephone)
	}
}

func (s *ReconciliationServiceSuite) TestConsistentLedgersReportClean() {
	tx := &providertx.ProviderTransaction{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PROVIDER_TRANSACTION),
		TransactionID: "MM-REC-5",
		Telephone:     s.testData.sub.Telephone,
		Amount:        decimal.NewFromInt(650),
		PaymentType:   types.PaymentTypeContribution,
		PaidAt:        s.GetNow(),
		SubscriberID:  s.testData.sub.ID,
		BaseModel:     types.GetDefaultBaseModel(s.GetContext()),
	}
	_, err := s.ledgerSvc.Record(s.GetContext(), &RecordInput{
		Tx:         tx,
		Subscriber: s.testData.sub,
		ParcelID:   "parcel_rec_1",
		AmountDue:  tx.Amount,
	})
	s.NoError(err)

	summary, err := s.service.Run(s.GetContext())
	s.NoError(err)
	s.Equal(1, summary.TotalVerifies)
	s.Equal(0, summary.Corriges)
	s.Empty(summary.Incoherences)
}

func (s *ReconciliationServiceSuite) TestRepairPricesAtOriginalPaymentDate() {
	paidAt := s.GetNow().Add(-48 * time.Hour)
	window := promotionWindowAround(s.GetContext(), paidAt)
	s.NoError(s.GetStores().PromotionRepo.Create(s.GetContext(), window))

	tx := &providertx.ProviderTransaction{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PROVIDER_TRANSACTION),
		TransactionID: "MM-REC-6",
		Telephone:     s.testData.sub.Telephone,
		Amount:        decimal.NewFromInt(50000),
		PaymentType:   types.PaymentTypeAccessFee,
		PaidAt:        paidAt,
		SubscriberID:  s.testData.sub.ID,
		BaseModel:     types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().ProviderTxRepo.Create(s.GetContext(), tx))

	summary, err := s.service.Run(s.GetContext())
	s.NoError(err)
	s.Equal(1, summary.Corriges)

	pay, err := s.GetStores().PaymentRepo.GetByProviderTxID(s.GetContext(), "MM-REC-6")
	s.NoError(err)
	// 2.0 ha at the 25000/ha rate in force when the payment happened
	s.True(pay.AmountDue.Equal(decimal.NewFromInt(50000)), "got %s", pay.AmountDue)
}
