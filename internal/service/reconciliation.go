package service

import (
	"context"
	"time"

	"github.com/agripay/agripay/internal/api/dto"
	"github.com/agripay/agripay/internal/domain/providertx"
	"github.com/agripay/agripay/internal/domain/subscriber"
	ierr "github.com/agripay/agripay/internal/errors"
	"github.com/agripay/agripay/internal/types"
	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"
)

const (
	// recordTimeout bounds how long a single record's checks and repair may
	// take so one stuck row cannot stall the whole sweep
	recordTimeout = 10 * time.Second

	repairMaxElapsed  = 15 * time.Second
	repairMaxInterval = 2 * time.Second
)

// ReconciliationService walks the full provider ledger and restores the
// invariant that every provider entry has a normalized counterpart. It is
// additive only: repairs insert, never update or delete, and aggregate
// drift is reported, not fixed. A second run with no intervening ingestion
// repairs nothing.
type ReconciliationService interface {
	Run(ctx context.Context) (*dto.ReconciliationSummary, error)
}

type reconciliationService struct {
	ServiceParams
	promotionSvc PromotionService
	ledgerSvc    LedgerWriterService
}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService(params ServiceParams, promotionSvc PromotionService, ledgerSvc LedgerWriterService) ReconciliationService {
	return &reconciliationService{
		ServiceParams: params,
		promotionSvc:  promotionSvc,
		ledgerSvc:     ledgerSvc,
	}
}

func (s *reconciliationService) Run(ctx context.Context) (*dto.ReconciliationSummary, error) {
	started := time.Now()

	txs, err := s.ProviderTxRepo.List(ctx, types.NewNoLimitQueryFilter())
	if err != nil {
		return nil, err
	}

	summary := &dto.ReconciliationSummary{
		Incoherences: []dto.Incoherence{},
	}

	for _, tx := range txs {
		if err := ctx.Err(); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Reconciliation sweep was cancelled").
				Mark(ierr.ErrSystem)
		}

		summary.TotalVerifies++
		s.checkRecord(ctx, tx, summary)
	}

	s.Logger.Infow("reconciliation sweep finished",
		"total_verified", summary.TotalVerifies,
		"incoherences", len(summary.Incoherences),
		"repaired", summary.Corriges,
		"duration", time.Since(started))

	return summary, nil
}

// checkRecord verifies one provider entry. Failures become incoherences on
// the summary; nothing a single record does can abort the sweep.
func (s *reconciliationService) checkRecord(ctx context.Context, tx *providertx.ProviderTransaction, summary *dto.ReconciliationSummary) {
	recordCtx, cancel := context.WithTimeout(ctx, recordTimeout)
	defer cancel()

	sub, err := s.resolveSubscriber(recordCtx, tx)
	if err != nil {
		if ierr.IsNotFound(err) {
			// Orphan entries never self-heal; they surface on every run
			// until an operator re-enrolls or writes off the money.
			summary.Incoherences = append(summary.Incoherences, dto.Incoherence{
				TransactionID: tx.TransactionID,
				Type:          types.IncoherenceOrphanTransaction,
				Telephone:     tx.Telephone,
				Montant:       tx.Amount,
			})
			return
		}
		s.addRepairFailure(summary, tx, err)
		return
	}

	exists, err := s.PaymentRepo.ExistsByProviderTxID(recordCtx, tx.TransactionID)
	if err != nil {
		s.addRepairFailure(summary, tx, err)
		return
	}
	if exists {
		return
	}

	summary.Incoherences = append(summary.Incoherences, dto.Incoherence{
		TransactionID: tx.TransactionID,
		Type:          types.IncoherenceMissingEntry,
		Telephone:     tx.Telephone,
		Montant:       tx.Amount,
	})

	if err := s.repair(recordCtx, tx, sub); err != nil {
		s.addRepairFailure(summary, tx, err)
		return
	}
	summary.Corriges++
}

// repair re-derives the normalized entry and inserts it, retrying transient
// failures. Losing the insert race to a concurrent ingestion counts as
// repaired.
func (s *reconciliationService) repair(ctx context.Context, tx *providertx.ProviderTransaction, sub *subscriber.Subscriber) error {
	parcels, err := s.SubscriberRepo.ListParcels(ctx, sub.ID)
	if err != nil {
		return err
	}
	parcelID := ""
	if len(parcels) > 0 {
		parcelID = parcels[0].ID
	}

	amountDue, err := s.rederiveAmountDue(ctx, tx, parcels)
	if err != nil {
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxInterval = repairMaxInterval
	policy.MaxElapsedTime = repairMaxElapsed

	operation := func() error {
		_, repairErr := s.ledgerSvc.RepairNormalized(ctx, tx, sub, parcelID, amountDue)
		if repairErr != nil {
			if ierr.IsAlreadyExists(repairErr) || ierr.IsValidation(repairErr) {
				return backoff.Permanent(repairErr)
			}
			return repairErr
		}
		return nil
	}

	err = backoff.Retry(operation, backoff.WithContext(policy, ctx))
	if err != nil && ierr.IsAlreadyExists(err) {
		// Another writer closed the gap first
		return nil
	}
	if err != nil {
		return err
	}

	s.Logger.Infow("repaired missing normalized entry",
		"transaction_id", tx.TransactionID,
		"subscriber_id", sub.ID,
		"amount", tx.Amount)
	return nil
}

// rederiveAmountDue recomputes what was owed using the rate in force at
// the original payment date, so a repaired entry prices like the original
// would have.
func (s *reconciliationService) rederiveAmountDue(ctx context.Context, tx *providertx.ProviderTransaction, parcels []*subscriber.Parcel) (decimal.Decimal, error) {
	if tx.PaymentType == types.PaymentTypeAccessFee {
		rate, err := s.promotionSvc.ResolveRate(ctx, tx.PaidAt)
		if err != nil {
			return decimal.Zero, err
		}
		return subscriber.TotalArea(parcels).Mul(rate.RatePerHectare), nil
	}
	return tx.Amount, nil
}

func (s *reconciliationService) resolveSubscriber(ctx context.Context, tx *providertx.ProviderTransaction) (*subscriber.Subscriber, error) {
	if tx.SubscriberID != "" {
		return s.SubscriberRepo.Get(ctx, tx.SubscriberID)
	}
	return s.SubscriberRepo.GetByTelephone(ctx, tx.Telephone)
}

func (s *reconciliationService) addRepairFailure(summary *dto.ReconciliationSummary, tx *providertx.ProviderTransaction, err error) {
	s.Logger.Errorw("reconciliation repair failed",
		"transaction_id", tx.TransactionID,
		"error", err)
	summary.Incoherences = append(summary.Incoherences, dto.Incoherence{
		TransactionID: tx.TransactionID,
		Type:          types.IncoherenceRepairFailed,
		Telephone:     tx.Telephone,
		Montant:       tx.Amount,
		Detail:        err.Error(),
	})
}
