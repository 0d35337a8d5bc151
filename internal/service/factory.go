package service

import (
	"github.com/agripay/agripay/internal/cache"
	"github.com/agripay/agripay/internal/config"
	"github.com/agripay/agripay/internal/domain/payment"
	"github.com/agripay/agripay/internal/domain/promotion"
	"github.com/agripay/agripay/internal/domain/providertx"
	"github.com/agripay/agripay/internal/domain/subscriber"
	"github.com/agripay/agripay/internal/idempotency"
	"github.com/agripay/agripay/internal/logger"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Cache  cache.Cache

	IdempGen *idempotency.Generator

	// Repositories
	SubscriberRepo subscriber.Repository
	ProviderTxRepo providertx.Repository
	PaymentRepo    payment.Repository
	PromotionRepo  promotion.Repository
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	cache cache.Cache,
	idempGen *idempotency.Generator,
	subscriberRepo subscriber.Repository,
	providerTxRepo providertx.Repository,
	paymentRepo payment.Repository,
	promotionRepo promotion.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:         logger,
		Config:         config,
		Cache:          cache,
		IdempGen:       idempGen,
		SubscriberRepo: subscriberRepo,
		ProviderTxRepo: providerTxRepo,
		PaymentRepo:    paymentRepo,
		PromotionRepo:  promotionRepo,
	}
}
