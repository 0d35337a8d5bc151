package service

import (
	"context"

	"github.com/agripay/agripay/internal/domain/payment"
	"github.com/agripay/agripay/internal/domain/providertx"
	"github.com/agripay/agripay/internal/domain/subscriber"
	ierr "github.com/agripay/agripay/internal/errors"
	"github.com/agripay/agripay/internal/idempotency"
	"github.com/agripay/agripay/internal/types"
	"github.com/shopspring/decimal"
)

// LedgerWriterService writes both ledgers and the subscriber aggregates.
//
// The three steps run as independent statements, not one transaction. The
// provider insert is the idempotency gate: once it lands the money is never
// lost, and a crash before the remaining steps leaves a gap the
// reconciliation sweep closes later. Wrapping all three in a transaction
// would also tie the high-volume webhook path to row locks on the
// subscriber aggregates.
type LedgerWriterService interface {
	// Record appends to the provider ledger, then the normalized ledger,
	// then bumps the subscriber aggregates. ErrAlreadyExists from the first
	// step means a duplicate delivery and nothing else runs.
	Record(ctx context.Context, in *RecordInput) (*payment.Payment, error)

	// RepairNormalized re-derives and inserts the missing normalized entry
	// for a provider transaction. It never touches the subscriber
	// aggregates; the sweep only restores ledger correlation and leaves
	// aggregate drift visible. The unique provider tx correlation makes
	// the insert safe to race with a concurrent ingestion of the same
	// transaction.
	RepairNormalized(ctx context.Context, tx *providertx.ProviderTransaction, sub *subscriber.Subscriber, parcelID string, amountDue decimal.Decimal) (*payment.Payment, error)
}

// RecordInput carries everything a full ledger write needs
type RecordInput struct {
	Tx         *providertx.ProviderTransaction
	Subscriber *subscriber.Subscriber
	ParcelID   string
	AmountDue  decimal.Decimal
}

type ledgerWriterService struct {
	ServiceParams
}

// NewLedgerWriterService creates a new ledger writer service
func NewLedgerWriterService(params ServiceParams) LedgerWriterService {
	return &ledgerWriterService{
		ServiceParams: params,
	}
}

func (s *ledgerWriterService) Record(ctx context.Context, in *RecordInput) (*payment.Payment, error) {
	if in == nil || in.Tx == nil || in.Subscriber == nil {
		return nil, ierr.NewError("incomplete record input").
			WithHint("Transaction and subscriber are required").
			Mark(ierr.ErrInvalidOperation)
	}

	// Step 1: provider ledger. The unique transaction id is the sole
	// duplicate guard for the whole pipeline.
	if err := s.ProviderTxRepo.Create(ctx, in.Tx); err != nil {
		return nil, err
	}

	pay, err := s.buildNormalized(ctx, in.Tx, in.Subscriber, in.ParcelID, in.AmountDue)
	if err != nil {
		return nil, err
	}

	// Step 2: normalized ledger
	if err := s.PaymentRepo.Create(ctx, pay); err != nil {
		s.Logger.Errorw("provider entry recorded but normalized write failed, sweep will repair",
			"transaction_id", in.Tx.TransactionID,
			"error", err)
		return nil, err
	}

	// Step 3: subscriber aggregates. Additive, so concurrent distinct
	// transactions for the same subscriber cannot lose updates.
	if err := s.SubscriberRepo.IncrementTotals(ctx, in.Subscriber.ID, in.Tx.PaymentType, in.Tx.Amount); err != nil {
		s.Logger.Errorw("normalized entry recorded but aggregate update failed",
			"transaction_id", in.Tx.TransactionID,
			"subscriber_id", in.Subscriber.ID,
			"error", err)
		return nil, err
	}

	return pay, nil
}

func (s *ledgerWriterService) RepairNormalized(ctx context.Context, tx *providertx.ProviderTransaction, sub *subscriber.Subscriber, parcelID string, amountDue decimal.Decimal) (*payment.Payment, error) {
	pay, err := s.buildNormalized(ctx, tx, sub, parcelID, amountDue)
	if err != nil {
		return nil, err
	}
	if err := s.PaymentRepo.Create(ctx, pay); err != nil {
		return nil, err
	}
	return pay, nil
}

// buildNormalized derives the normalized entry from the provider
// transaction. Ingestion and repair share this so a repaired entry is
// indistinguishable from one written on the happy path.
func (s *ledgerWriterService) buildNormalized(ctx context.Context, tx *providertx.ProviderTransaction, sub *subscriber.Subscriber, parcelID string, amountDue decimal.Decimal) (*payment.Payment, error) {
	pay := &payment.Payment{
		ID: types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT),
		IdempotencyKey: s.IdempGen.GenerateKey(idempotency.ScopePayment, map[string]interface{}{
			"transaction_id": tx.TransactionID,
		}),
		SubscriberID: sub.ID,
		ParcelID:     parcelID,
		PaymentType:  tx.PaymentType,
		AmountDue:    amountDue,
		AmountPaid:   tx.Amount,
		PaidAt:       tx.PaidAt.UTC(),
		PaymentMode:  types.PaymentModeMobileMoney,
		ProviderTxID: tx.TransactionID,
		FiscalYear:   types.FiscalYear(tx.PaidAt, s.Config.Billing.PivotMonth()),
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}

	if tx.PaymentType == types.PaymentTypeContribution {
		dailyRate := s.Config.Billing.ContributionDailyRate()
		if dailyRate.IsPositive() {
			pay.InstallmentCount = int(tx.Amount.Div(dailyRate).IntPart())
		}
	}

	if err := pay.Validate(); err != nil {
		return nil, err
	}
	return pay, nil
}
