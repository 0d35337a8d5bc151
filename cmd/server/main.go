package main

import (
	"context"
	"time"

	"github.com/agripay/agripay/internal/api"
	"github.com/agripay/agripay/internal/api/cron"
	v1 "github.com/agripay/agripay/internal/api/v1"
	"github.com/agripay/agripay/internal/cache"
	"github.com/agripay/agripay/internal/config"
	"github.com/agripay/agripay/internal/idempotency"
	"github.com/agripay/agripay/internal/logger"
	"github.com/agripay/agripay/internal/postgres"
	"github.com/agripay/agripay/internal/repository"
	"github.com/agripay/agripay/internal/service"
	"github.com/agripay/agripay/internal/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// @title AgriPay API
// @version 1.0
// @description Mobile-money payment core for the agricultural subscription program
// @BasePath /v1
// @schemes http https

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.Initialize,

			// Idempotency
			idempotency.NewGenerator,

			// Postgres
			postgres.NewDB,

			// Repositories
			repository.NewSubscriberRepository,
			repository.NewProviderTxRepository,
			repository.NewPaymentRepository,
			repository.NewPromotionRepository,

			// Services
			service.NewServiceParams,
			service.NewPromotionService,
			service.NewContributionService,
			service.NewLedgerWriterService,
			service.NewIngestionService,
			service.NewQuoteService,
			service.NewPaymentService,
			service.NewReconciliationService,

			// API
			provideHandlers,
			provideRouter,
		),
		// The validator backs every DTO Validate call, so it is
		// initialized eagerly rather than on first use.
		fx.Invoke(
			validator.NewValidator,
			startServer,
		),
	)

	app.Run()
}

func provideHandlers(
	cfg *config.Configuration,
	logger *logger.Logger,
	ingestionService service.IngestionService,
	quoteService service.QuoteService,
	paymentService service.PaymentService,
	promotionService service.PromotionService,
	reconciliationService service.ReconciliationService,
) api.Handlers {
	return api.Handlers{
		Health:             v1.NewHealthHandler(logger),
		Notification:       v1.NewNotificationHandler(ingestionService, logger),
		Quote:              v1.NewQuoteHandler(quoteService, cfg, logger),
		Payment:            v1.NewPaymentHandler(paymentService, logger),
		Promotion:          v1.NewPromotionHandler(promotionService, logger),
		ReconciliationCron: cron.NewReconciliationHandler(reconciliationService, logger),
	}
}

func provideRouter(handlers api.Handlers) *gin.Engine {
	return api.NewRouter(handlers)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	db *postgres.DB,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			db.Close()
			return nil
		},
	})
}
