package testutil

import (
	"context"
	"time"

	"github.com/agripay/agripay/internal/cache"
	"github.com/agripay/agripay/internal/config"
	"github.com/agripay/agripay/internal/domain/payment"
	"github.com/agripay/agripay/internal/domain/promotion"
	"github.com/agripay/agripay/internal/domain/providertx"
	"github.com/agripay/agripay/internal/domain/subscriber"
	"github.com/agripay/agripay/internal/logger"
	"github.com/agripay/agripay/internal/types"
	"github.com/agripay/agripay/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	SubscriberRepo subscriber.Repository
	ProviderTxRepo providertx.Repository
	PaymentRepo    payment.Repository
	PromotionRepo  promotion.Repository
}

// BaseServiceTestSuite provides common functionality for all service test
// suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	cache  cache.Cache
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	s.config = config.GetDefaultConfig()
	validator.NewValidator()

	var err error
	s.logger, err = logger.NewLogger(s.config)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.ClearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = context.Background()
	s.ctx = context.WithValue(s.ctx, types.CtxActorID, types.DefaultActorID)
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		SubscriberRepo: NewInMemorySubscriberStore(),
		ProviderTxRepo: NewInMemoryProviderTxStore(),
		PaymentRepo:    NewInMemoryPaymentStore(),
		PromotionRepo:  NewInMemoryPromotionStore(),
	}
	s.cache = cache.NewInMemoryCache(true)
}

// ClearStores clears all the stores
func (s *BaseServiceTestSuite) ClearStores() {
	s.stores.SubscriberRepo.(*InMemorySubscriberStore).Clear()
	s.stores.ProviderTxRepo.(*InMemoryProviderTxStore).Clear()
	s.stores.PaymentRepo.(*InMemoryPaymentStore).Clear()
	s.stores.PromotionRepo.(*InMemoryPromotionStore).Clear()
	s.cache.Flush(s.ctx)
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetStores returns the test stores
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetCache returns the test cache
func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetConfig returns the test config
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetNow returns the current time, fixed at test setup
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
