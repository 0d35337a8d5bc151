package service

import (
	"context"
	"time"

	"github.com/agripay/agripay/internal/domain/subscriber"
	"github.com/agripay/agripay/internal/types"
	"github.com/shopspring/decimal"
)

// ContributionStanding is the arrears assessment for one subscriber at a
// point in time.
type ContributionStanding struct {
	Status types.ArrearsStatus
	// InstallmentsPaid is how many daily installments the paid total covers
	InstallmentsPaid int64
	// InstallmentsExpected is how many whole days have elapsed since
	// enrollment
	InstallmentsExpected int64
	// RecommendedAmount is what the subscriber should pay next: the
	// shortfall when behind, one default period when current or without
	// history
	RecommendedAmount decimal.Decimal
}

// ContributionService assesses a subscriber's recurring contribution
// standing. Pure computation over subscriber state and billing constants;
// it never writes.
type ContributionService interface {
	AssessStanding(ctx context.Context, sub *subscriber.Subscriber, now time.Time) *ContributionStanding
}

type contributionService struct {
	ServiceParams
}

// NewContributionService creates a new contribution service
func NewContributionService(params ServiceParams) ContributionService {
	return &contributionService{
		ServiceParams: params,
	}
}

// AssessStanding compares installments covered by the paid total against
// installments expected from elapsed enrollment days. The assessment only
// moves toward en_retard as time passes without payment.
func (s *contributionService) AssessStanding(ctx context.Context, sub *subscriber.Subscriber, now time.Time) *ContributionStanding {
	dailyRate := s.Config.Billing.ContributionDailyRate()

	if sub == nil || !dailyRate.IsPositive() {
		return &ContributionStanding{
			Status:            types.ArrearsStatusUnknown,
			RecommendedAmount: s.Config.Billing.DefaultPeriodAmount(),
		}
	}

	// No contribution history: treat as behind and recommend one default
	// period so the first quote is actionable.
	if sub.TotalContributionsPaid.IsZero() {
		return &ContributionStanding{
			Status:            types.ArrearsStatusLate,
			RecommendedAmount: s.Config.Billing.DefaultPeriodAmount(),
		}
	}

	paid := sub.TotalContributionsPaid.Div(dailyRate).IntPart()

	elapsed := int64(now.UTC().Sub(sub.CreatedAt.UTC()).Hours() / 24)
	if elapsed < 0 {
		elapsed = 0
	}

	standing := &ContributionStanding{
		InstallmentsPaid:     paid,
		InstallmentsExpected: elapsed,
	}

	if paid >= elapsed {
		standing.Status = types.ArrearsStatusUpToDate
		standing.RecommendedAmount = s.Config.Billing.DefaultPeriodAmount()
		return standing
	}

	standing.Status = types.ArrearsStatusLate
	standing.RecommendedAmount = decimal.NewFromInt(elapsed - paid).Mul(dailyRate)
	return standing
}
