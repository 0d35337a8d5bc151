package service

import (
	"testing"
	"time"

	"github.com/agripay/agripay/internal/domain/subscriber"
	"github.com/agripay/agripay/internal/testutil"
	"github.com/agripay/agripay/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ContributionServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ContributionService
}

func TestContributionService(t *testing.T) {
	suite.Run(t, new(ContributionServiceSuite))
}

func (s *ContributionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewContributionService(ServiceParams{
		Logger: s.GetLogger(),
		Config: s.GetConfig(),
		Cache:  s.GetCache(),
	})
}

func (s *ContributionServiceSuite) subscriberEnrolledDaysAgo(days int, totalPaid int64) *subscriber.Subscriber {
	now := s.GetNow()
	return &subscriber.Subscriber{
		ID:                     "sub_standing",
		Telephone:              "0700000020",
		TotalContributionsPaid: decimal.NewFromInt(totalPaid),
		BaseModel: types.BaseModel{
			Status:    types.StatusActive,
			CreatedAt: now.Add(-time.Duration(days) * 24 * time.Hour),
			UpdatedAt: now,
			CreatedBy: types.DefaultActorID,
			UpdatedBy: types.DefaultActorID,
		},
	}
}

func (s *ContributionServiceSuite) TestNoHistoryDefaultsToOnePeriod() {
	standing := s.service.AssessStanding(s.GetContext(), s.subscriberEnrolledDaysAgo(45, 0), s.GetNow())
	s.Equal(types.ArrearsStatusLate, standing.Status)
	// 65 x 30
	s.True(standing.RecommendedAmount.Equal(decimal.NewFromInt(1950)), "got %s", standing.RecommendedAmount)
}

func (s *ContributionServiceSuite) TestUpToDate() {
	// 30 installments paid, 10 days elapsed
	standing := s.service.AssessStanding(s.GetContext(), s.subscriberEnrolledDaysAgo(10, 1950), s.GetNow())
	s.Equal(types.ArrearsStatusUpToDate, standing.Status)
	s.Equal(int64(30), standing.InstallmentsPaid)
	s.Equal(int64(10), standing.InstallmentsExpected)
	s.True(standing.RecommendedAmount.Equal(decimal.NewFromInt(1950)))
}

func (s *ContributionServiceSuite) TestLateShortfall() {
	// 30 installments paid, 60 days elapsed, 30 missing
	standing := s.service.AssessStanding(s.GetContext(), s.subscriberEnrolledDaysAgo(60, 1950), s.GetNow())
	s.Equal(types.ArrearsStatusLate, standing.Status)
	s.Equal(int64(30), standing.InstallmentsPaid)
	s.Equal(int64(60), standing.InstallmentsExpected)
	s.True(standing.RecommendedAmount.Equal(decimal.NewFromInt(1950)), "got %s", standing.RecommendedAmount)
}

func (s *ContributionServiceSuite) TestPartialInstallmentRoundsDown() {
	// 700 covers 10 full installments, the remainder buys nothing
	standing := s.service.AssessStanding(s.GetContext(), s.subscriberEnrolledDaysAgo(10, 700), s.GetNow())
	s.Equal(int64(10), standing.InstallmentsPaid)
	s.Equal(types.ArrearsStatusUpToDate, standing.Status)
}

func (s *ContributionServiceSuite) TestEnrollmentInFutureClampsToZero() {
	standing := s.service.AssessStanding(s.GetContext(), s.subscriberEnrolledDaysAgo(-3, 650), s.GetNow())
	s.Equal(int64(0), standing.InstallmentsExpected)
	s.Equal(types.ArrearsStatusUpToDate, standing.Status)
}

func (s *ContributionServiceSuite) TestNilSubscriberIsUnknown() {
	standing := s.service.AssessStanding(s.GetContext(), nil, s.GetNow())
	s.Equal(types.ArrearsStatusUnknown, standing.Status)
}

// The assessment only degrades as time passes without payment: a
// subscriber current today can be late tomorrow, never the reverse.
func (s *ContributionServiceSuite) TestMonotoneInTime() {
	sub := s.subscriberEnrolledDaysAgo(20, 1950)

	prevLate := false
	for days := 0; days <= 40; days += 5 {
		at := s.GetNow().Add(time.Duration(days) * 24 * time.Hour)
		standing := s.service.AssessStanding(s.GetContext(), sub, at)
		late := standing.Status == types.ArrearsStatusLate
		if prevLate {
			s.True(late, "status regressed at +%d days", days)
		}
		prevLate = late
	}
}
