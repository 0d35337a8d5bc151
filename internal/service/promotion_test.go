package service

import (
	"testing"
	"time"

	"github.com/agripay/agripay/internal/api/dto"
	ierr "github.com/agripay/agripay/internal/errors"
	"github.com/agripay/agripay/internal/idempotency"
	"github.com/agripay/agripay/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PromotionServiceSuite struct {
	testutil.BaseServiceTestSuite
	service PromotionService
}

func TestPromotionService(t *testing.T) {
	suite.Run(t, new(PromotionServiceSuite))
}

func (s *PromotionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewPromotionService(ServiceParams{
		Logger:         s.GetLogger(),
		Config:         s.GetConfig(),
		Cache:          s.GetCache(),
		IdempGen:       idempotency.NewGenerator(),
		SubscriberRepo: s.GetStores().SubscriberRepo,
		ProviderTxRepo: s.GetStores().ProviderTxRepo,
		PaymentRepo:    s.GetStores().PaymentRepo,
		PromotionRepo:  s.GetStores().PromotionRepo,
	})
}

func (s *PromotionServiceSuite) TestCreatePromotion() {
	resp, err := s.service.CreatePromotion(s.GetContext(), &dto.CreatePromotionRequest{
		Nom:            "Campagne Octobre",
		TauxParHectare: decimal.NewFromInt(25000),
		DateDebut:      time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		DateFin:        time.Date(2025, 10, 31, 23, 59, 59, 0, time.UTC),
	})
	s.NoError(err)
	s.NotEmpty(resp.ID)
	s.True(resp.TauxParHectare.Equal(decimal.NewFromInt(25000)))
	s.True(resp.TauxNormal.Equal(decimal.NewFromInt(30000)))
	// (30000 - 25000) / 30000
	s.True(resp.TauxRemise.Equal(decimal.NewFromFloat(16.67)), "got %s", resp.TauxRemise)
}

func (s *PromotionServiceSuite) TestCreatePromotionValidation() {
	testCases := []struct {
		name string
		req  *dto.CreatePromotionRequest
	}{
		{
			name: "missing name",
			req: &dto.CreatePromotionRequest{
				TauxParHectare: decimal.NewFromInt(25000),
				DateDebut:      time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
				DateFin:        time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "zero rate",
			req: &dto.CreatePromotionRequest{
				Nom:       "Promo",
				DateDebut: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
				DateFin:   time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "window ends before it starts",
			req: &dto.CreatePromotionRequest{
				Nom:            "Promo",
				TauxParHectare: decimal.NewFromInt(25000),
				DateDebut:      time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC),
				DateFin:        time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "rate above normal",
			req: &dto.CreatePromotionRequest{
				Nom:            "Promo",
				TauxParHectare: decimal.NewFromInt(35000),
				DateDebut:      time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
				DateFin:        time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.CreatePromotion(s.GetContext(), tc.req)
			s.Error(err)
			s.True(ierr.IsValidation(err))
		})
	}
}

func (s *PromotionServiceSuite) TestResolveRateBoundaries() {
	start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)

	_, err := s.service.CreatePromotion(s.GetContext(), &dto.CreatePromotionRequest{
		Nom:            "Campagne Octobre",
		TauxParHectare: decimal.NewFromInt(25000),
		DateDebut:      start,
		DateFin:        end,
	})
	s.NoError(err)

	testCases := []struct {
		name     string
		at       time.Time
		promoted bool
		rate     int64
	}{
		{"before window", start.Add(-time.Second), false, 30000},
		{"first instant", start, true, 25000},
		{"inside window", start.AddDate(0, 0, 15), true, 25000},
		{"last instant", end, true, 25000},
		{"after window", end.Add(time.Second), false, 30000},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			res, err := s.service.ResolveRate(s.GetContext(), tc.at)
			s.NoError(err)
			s.Equal(tc.promoted, res.Promoted)
			s.True(res.RatePerHectare.Equal(decimal.NewFromInt(tc.rate)), "got %s", res.RatePerHectare)
			s.True(res.NormalRatePerHectare.Equal(decimal.NewFromInt(30000)))
		})
	}
}

func (s *PromotionServiceSuite) TestResolveRateNoWindow() {
	res, err := s.service.ResolveRate(s.GetContext(), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	s.NoError(err)
	s.False(res.Promoted)
	s.True(res.RatePerHectare.Equal(decimal.NewFromInt(30000)))
	s.Empty(res.PromotionName)
}

func (s *PromotionServiceSuite) TestResolveRateOverlapEarliestStartWins() {
	for _, req := range []*dto.CreatePromotionRequest{
		{
			Nom:            "Premiere",
			TauxParHectare: decimal.NewFromInt(25000),
			DateDebut:      time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
			DateFin:        time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			Nom:            "Seconde",
			TauxParHectare: decimal.NewFromInt(20000),
			DateDebut:      time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC),
			DateFin:        time.Date(2025, 10, 30, 0, 0, 0, 0, time.UTC),
		},
	} {
		_, err := s.service.CreatePromotion(s.GetContext(), req)
		s.NoError(err)
	}

	res, err := s.service.ResolveRate(s.GetContext(), time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC))
	s.NoError(err)
	s.Equal("Premiere", res.PromotionName)
	s.True(res.RatePerHectare.Equal(decimal.NewFromInt(25000)))
}

func (s *PromotionServiceSuite) TestListPromotions() {
	for i, nom := range []string{"Une", "Deux"} {
		_, err := s.service.CreatePromotion(s.GetContext(), &dto.CreatePromotionRequest{
			Nom:            nom,
			TauxParHectare: decimal.NewFromInt(25000),
			DateDebut:      time.Date(2025, time.Month(10+i), 1, 0, 0, 0, 0, time.UTC),
			DateFin:        time.Date(2025, time.Month(10+i), 28, 0, 0, 0, 0, time.UTC),
		})
		s.NoError(err)
	}

	resp, err := s.service.ListPromotions(s.GetContext(), nil)
	s.NoError(err)
	s.Len(resp.Items, 2)
	s.Equal(2, resp.Pagination.Total)
}
