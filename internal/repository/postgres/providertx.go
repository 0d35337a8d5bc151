package postgres

import (
	"context"
	"database/sql"

	"github.com/agripay/agripay/internal/domain/providertx"
	ierr "github.com/agripay/agripay/internal/errors"
	"github.com/agripay/agripay/internal/logger"
	"github.com/agripay/agripay/internal/postgres"
	"github.com/agripay/agripay/internal/types"
)

type providerTxRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewProviderTxRepository(db *postgres.DB, logger *logger.Logger) providertx.Repository {
	return &providerTxRepository{db: db, logger: logger}
}

const providerTxColumns = `
	id, transaction_id, telephone, amount, payment_type, paid_at,
	subscriber_id, raw_payload,
	status, created_at, updated_at, created_by, updated_by
`

func (r *providerTxRepository) Create(ctx context.Context, tx *providertx.ProviderTransaction) error {
	query := `
	INSERT INTO provider_transactions (` + providerTxColumns + `) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
	)
	`

	_, err := r.db.ExecContext(ctx, query,
		tx.ID,
		tx.TransactionID,
		tx.Telephone,
		tx.Amount,
		tx.PaymentType,
		tx.PaidAt,
		tx.SubscriberID,
		tx.RawPayload,
		tx.Status,
		tx.CreatedAt,
		tx.UpdatedAt,
		tx.CreatedBy,
		tx.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHintf("Transaction %s has already been recorded", tx.TransactionID).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to record provider transaction").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *providerTxRepository) Get(ctx context.Context, id string) (*providertx.ProviderTransaction, error) {
	query := `SELECT ` + providerTxColumns + ` FROM provider_transactions WHERE id = $1`

	var tx providertx.ProviderTransaction
	if err := r.db.GetContext(ctx, &tx, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("provider transaction not found").
				WithHintf("Provider transaction %s not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get provider transaction").
			Mark(ierr.ErrDatabase)
	}

	return &tx, nil
}

func (r *providerTxRepository) GetByTransactionID(ctx context.Context, transactionID string) (*providertx.ProviderTransaction, error) {
	query := `SELECT ` + providerTxColumns + ` FROM provider_transactions WHERE transaction_id = $1`

	var tx providertx.ProviderTransaction
	if err := r.db.GetContext(ctx, &tx, query, transactionID); err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("provider transaction not found").
				WithHintf("Transaction %s not found", transactionID).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get provider transaction").
			Mark(ierr.ErrDatabase)
	}

	return &tx, nil
}

func (r *providerTxRepository) List(ctx context.Context, filter *types.QueryFilter) ([]*providertx.ProviderTransaction, error) {
	txs := make([]*providertx.ProviderTransaction, 0)

	if filter.IsUnlimited() {
		query := `SELECT ` + providerTxColumns + ` FROM provider_transactions ORDER BY paid_at DESC, id DESC`
		if err := r.db.SelectContext(ctx, &txs, query); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to list provider transactions").
				Mark(ierr.ErrDatabase)
		}
		return txs, nil
	}

	query := `SELECT ` + providerTxColumns + ` FROM provider_transactions ORDER BY paid_at DESC, id DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &txs, query, filter.GetLimit(), filter.GetOffset()); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list provider transactions").
			Mark(ierr.ErrDatabase)
	}

	return txs, nil
}

func (r *providerTxRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM provider_transactions`); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count provider transactions").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}
