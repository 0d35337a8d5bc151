package v1

import (
	"net/http"

	ierr "github.com/agripay/agripay/internal/errors"
	"github.com/agripay/agripay/internal/logger"
	"github.com/agripay/agripay/internal/service"
	"github.com/agripay/agripay/internal/types"
	"github.com/gin-gonic/gin"
)

// PaymentHandler exposes read access to the ledgers
type PaymentHandler struct {
	service service.PaymentService
	log     *logger.Logger
}

func NewPaymentHandler(service service.PaymentService, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{service: service, log: log}
}

// @Summary Get a payment by ID
// @Tags Paiements
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /v1/paiements/{id} [get]
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Payment ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetPayment(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List normalized payments
// @Tags Paiements
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ListPaymentsResponse
// @Router /v1/paiements [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	filter, err := bindQueryFilter(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.ListPayments(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List provider transactions
// @Tags Transactions
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ListProviderTransactionsResponse
// @Router /v1/transactions [get]
func (h *PaymentHandler) ListProviderTransactions(c *gin.Context) {
	filter, err := bindQueryFilter(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.ListProviderTransactions(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func bindQueryFilter(c *gin.Context) (*types.QueryFilter, error) {
	filter := types.NewDefaultQueryFilter()
	if err := c.ShouldBindQuery(filter); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid pagination parameters").
			Mark(ierr.ErrValidation)
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return filter, nil
}
