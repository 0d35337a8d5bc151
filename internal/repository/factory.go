package repository

import (
	"github.com/agripay/agripay/internal/domain/payment"
	"github.com/agripay/agripay/internal/domain/promotion"
	"github.com/agripay/agripay/internal/domain/providertx"
	"github.com/agripay/agripay/internal/domain/subscriber"
	"github.com/agripay/agripay/internal/logger"
	"github.com/agripay/agripay/internal/postgres"
	postgresRepo "github.com/agripay/agripay/internal/repository/postgres"
)

func NewSubscriberRepository(db *postgres.DB, logger *logger.Logger) subscriber.Repository {
	return postgresRepo.NewSubscriberRepository(db, logger)
}

func NewProviderTxRepository(db *postgres.DB, logger *logger.Logger) providertx.Repository {
	return postgresRepo.NewProviderTxRepository(db, logger)
}

func NewPaymentRepository(db *postgres.DB, logger *logger.Logger) payment.Repository {
	return postgresRepo.NewPaymentRepository(db, logger)
}

func NewPromotionRepository(db *postgres.DB, logger *logger.Logger) promotion.Repository {
	return postgresRepo.NewPromotionRepository(db, logger)
}
