package postgres

import (
	"context"
	"database/sql"

	"github.com/agripay/agripay/internal/domain/subscriber"
	ierr "github.com/agripay/agripay/internal/errors"
	"github.com/agripay/agripay/internal/logger"
	"github.com/agripay/agripay/internal/postgres"
	"github.com/agripay/agripay/internal/types"
	"github.com/shopspring/decimal"
)

type subscriberRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewSubscriberRepository(db *postgres.DB, logger *logger.Logger) subscriber.Repository {
	return &subscriberRepository{db: db, logger: logger}
}

const subscriberColumns = `
	id, telephone, full_name, total_access_fee_paid, total_contributions_paid,
	status, created_at, updated_at, created_by, updated_by
`

func (r *subscriberRepository) Create(ctx context.Context, sub *subscriber.Subscriber) error {
	query := `
	INSERT INTO subscribers (` + subscriberColumns + `) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
	)
	`

	_, err := r.db.ExecContext(ctx, query,
		sub.ID,
		sub.Telephone,
		sub.FullName,
		sub.TotalAccessFeePaid,
		sub.TotalContributionsPaid,
		sub.Status,
		sub.CreatedAt,
		sub.UpdatedAt,
		sub.CreatedBy,
		sub.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHintf("Subscriber with telephone %s already exists", sub.Telephone).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create subscriber").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *subscriberRepository) Get(ctx context.Context, id string) (*subscriber.Subscriber, error) {
	query := `SELECT ` + subscriberColumns + ` FROM subscribers WHERE id = $1`

	var sub subscriber.Subscriber
	if err := r.db.GetContext(ctx, &sub, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("subscriber not found").
				WithHintf("Subscriber %s not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get subscriber").
			Mark(ierr.ErrDatabase)
	}

	return &sub, nil
}

func (r *subscriberRepository) GetByTelephone(ctx context.Context, telephone string) (*subscriber.Subscriber, error) {
	query := `SELECT ` + subscriberColumns + ` FROM subscribers WHERE telephone = $1`

	var sub subscriber.Subscriber
	if err := r.db.GetContext(ctx, &sub, query, telephone); err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("subscriber not found").
				WithHintf("No subscriber enrolled with telephone %s", telephone).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get subscriber by telephone").
			Mark(ierr.ErrDatabase)
	}

	return &sub, nil
}

func (r *subscriberRepository) List(ctx context.Context, filter *types.QueryFilter) ([]*subscriber.Subscriber, error) {
	query := `SELECT ` + subscriberColumns + ` FROM subscribers ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	subs := make([]*subscriber.Subscriber, 0)
	if err := r.db.SelectContext(ctx, &subs, query, filter.GetLimit(), filter.GetOffset()); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list subscribers").
			Mark(ierr.ErrDatabase)
	}

	return subs, nil
}

func (r *subscriberRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM subscribers`); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count subscribers").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *subscriberRepository) IncrementTotals(ctx context.Context, id string, paymentType types.PaymentType, amount decimal.Decimal) error {
	column := "total_contributions_paid"
	if paymentType == types.PaymentTypeAccessFee {
		column = "total_access_fee_paid"
	}

	// column name comes from the switch above, never from input
	query := `
	UPDATE subscribers
	SET ` + column + ` = ` + column + ` + $1, updated_at = NOW(), updated_by = $2
	WHERE id = $3
	`

	res, err := r.db.ExecContext(ctx, query, amount, types.GetActorID(ctx), id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update subscriber totals").
			Mark(ierr.ErrDatabase)
	}

	rows, err := res.RowsAffected()
	if err == nil && rows == 0 {
		return ierr.NewError("subscriber not found").
			WithHintf("Subscriber %s not found", id).
			Mark(ierr.ErrNotFound)
	}

	return nil
}

func (r *subscriberRepository) CreateParcel(ctx context.Context, parcel *subscriber.Parcel) error {
	query := `
	INSERT INTO parcels (
		id, subscriber_id, name, area_hectares,
		status, created_at, updated_at, created_by, updated_by
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9
	)
	`

	_, err := r.db.ExecContext(ctx, query,
		parcel.ID,
		parcel.SubscriberID,
		parcel.Name,
		parcel.AreaHectares,
		parcel.Status,
		parcel.CreatedAt,
		parcel.UpdatedAt,
		parcel.CreatedBy,
		parcel.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create parcel").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

// ListParcels returns parcels oldest first. "First parcel" semantics
// everywhere in the core mean the first row of this ordering.
func (r *subscriberRepository) ListParcels(ctx context.Context, subscriberID string) ([]*subscriber.Parcel, error) {
	query := `
	SELECT id, subscriber_id, name, area_hectares,
		status, created_at, updated_at, created_by, updated_by
	FROM parcels
	WHERE subscriber_id = $1
	ORDER BY created_at ASC, id ASC
	`

	parcels := make([]*subscriber.Parcel, 0)
	if err := r.db.SelectContext(ctx, &parcels, query, subscriberID); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list parcels").
			Mark(ierr.ErrDatabase)
	}

	return parcels, nil
}
