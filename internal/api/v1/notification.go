package v1

import (
	"net/http"

	"github.com/agripay/agripay/internal/api/dto"
	ierr "github.com/agripay/agripay/internal/errors"
	"github.com/agripay/agripay/internal/logger"
	"github.com/agripay/agripay/internal/service"
	"github.com/gin-gonic/gin"
)

// NotificationHandler receives mobile-money payment notifications
type NotificationHandler struct {
	service service.IngestionService
	log     *logger.Logger
}

func NewNotificationHandler(service service.IngestionService, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{service: service, log: log}
}

// @Summary Receive a payment notification
// @Description Records a mobile-money payment delivered by the provider webhook
// @Tags Paiements
// @Accept json
// @Produce json
// @Param notification body dto.NotifyPaymentRequest true "Provider notification"
// @Success 200 {object} dto.NotifyPaymentResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /v1/paiements/notification [post]
func (h *NotificationHandler) NotifyPayment(c *gin.Context) {
	var req dto.NotifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorw("failed to bind notification", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ProcessNotification(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
