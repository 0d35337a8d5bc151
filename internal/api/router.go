package api

import (
	"github.com/agripay/agripay/internal/api/cron"
	v1 "github.com/agripay/agripay/internal/api/v1"
	"github.com/agripay/agripay/internal/rest/middleware"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health       *v1.HealthHandler
	Notification *v1.NotificationHandler
	Quote        *v1.QuoteHandler
	Payment      *v1.PaymentHandler
	Promotion    *v1.PromotionHandler

	ReconciliationCron *cron.ReconciliationHandler
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.New()

	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	cronGroup := router.Group("/cron")
	registerCronRoutes(cronGroup, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	paiements := router.Group("/paiements")
	{
		paiements.POST("/notification", handlers.Notification.NotifyPayment)
		paiements.GET("/quote", handlers.Quote.GetQuote)
		paiements.GET("", handlers.Payment.ListPayments)
		paiements.GET("/:id", handlers.Payment.GetPayment)
	}

	router.GET("/transactions", handlers.Payment.ListProviderTransactions)

	promotions := router.Group("/promotions")
	{
		promotions.POST("", handlers.Promotion.CreatePromotion)
		promotions.GET("", handlers.Promotion.ListPromotions)
		promotions.GET("/:id", handlers.Promotion.GetPromotion)
	}
}

func registerCronRoutes(router *gin.RouterGroup, handlers Handlers) {
	router.POST("/reconciliation", handlers.ReconciliationCron.Reconcile)
}
