package postgres

import (
	"context"
	"database/sql"

	"github.com/agripay/agripay/internal/domain/payment"
	ierr "github.com/agripay/agripay/internal/errors"
	"github.com/agripay/agripay/internal/logger"
	"github.com/agripay/agripay/internal/postgres"
	"github.com/agripay/agripay/internal/types"
)

type paymentRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPaymentRepository(db *postgres.DB, logger *logger.Logger) payment.Repository {
	return &paymentRepository{db: db, logger: logger}
}

const paymentColumns = `
	id, idempotency_key, subscriber_id, parcel_id, payment_type,
	amount_due, amount_paid, installment_count, paid_at, payment_mode,
	provider_tx_id, fiscal_year,
	status, created_at, updated_at, created_by, updated_by
`

func (r *paymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	query := `
	INSERT INTO payments (` + paymentColumns + `) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
	)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.IdempotencyKey,
		p.SubscriberID,
		p.ParcelID,
		p.PaymentType,
		p.AmountDue,
		p.AmountPaid,
		p.InstallmentCount,
		p.PaidAt,
		p.PaymentMode,
		p.ProviderTxID,
		p.FiscalYear,
		p.Status,
		p.CreatedAt,
		p.UpdatedAt,
		p.CreatedBy,
		p.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHintf("Payment for transaction %s already exists", p.ProviderTxID).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create payment").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *paymentRepository) Get(ctx context.Context, id string) (*payment.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	var p payment.Payment
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("payment not found").
				WithHintf("Payment %s not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get payment").
			Mark(ierr.ErrDatabase)
	}

	return &p, nil
}

func (r *paymentRepository) GetByProviderTxID(ctx context.Context, providerTxID string) (*payment.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE provider_tx_id = $1`

	var p payment.Payment
	if err := r.db.GetContext(ctx, &p, query, providerTxID); err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("payment not found").
				WithHintf("No payment correlated to transaction %s", providerTxID).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get payment by provider tx id").
			Mark(ierr.ErrDatabase)
	}

	return &p, nil
}

func (r *paymentRepository) ExistsByProviderTxID(ctx context.Context, providerTxID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM payments WHERE provider_tx_id = $1)`

	if err := r.db.GetContext(ctx, &exists, query, providerTxID); err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to check payment existence").
			Mark(ierr.ErrDatabase)
	}

	return exists, nil
}

func (r *paymentRepository) List(ctx context.Context, filter *types.QueryFilter) ([]*payment.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY paid_at DESC, id DESC LIMIT $1 OFFSET $2`

	payments := make([]*payment.Payment, 0)
	if err := r.db.SelectContext(ctx, &payments, query, filter.GetLimit(), filter.GetOffset()); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list payments").
			Mark(ierr.ErrDatabase)
	}

	return payments, nil
}

func (r *paymentRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM payments`); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count payments").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}
