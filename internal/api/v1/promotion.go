package v1

import (
	"net/http"

	"github.com/agripay/agripay/internal/api/dto"
	ierr "github.com/agripay/agripay/internal/errors"
	"github.com/agripay/agripay/internal/logger"
	"github.com/agripay/agripay/internal/service"
	"github.com/gin-gonic/gin"
)

// PromotionHandler manages promotion windows
type PromotionHandler struct {
	service service.PromotionService
	log     *logger.Logger
}

func NewPromotionHandler(service service.PromotionService, log *logger.Logger) *PromotionHandler {
	return &PromotionHandler{service: service, log: log}
}

// @Summary Create a promotion window
// @Tags Promotions
// @Accept json
// @Produce json
// @Param promotion body dto.CreatePromotionRequest true "Promotion window"
// @Success 201 {object} dto.PromotionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /v1/promotions [post]
func (h *PromotionHandler) CreatePromotion(c *gin.Context) {
	var req dto.CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorw("failed to bind promotion request", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreatePromotion(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a promotion window by ID
// @Tags Promotions
// @Produce json
// @Param id path string true "Promotion ID"
// @Success 200 {object} dto.PromotionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /v1/promotions/{id} [get]
func (h *PromotionHandler) GetPromotion(c *gin.Context) {
	resp, err := h.service.GetPromotion(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List promotion windows
// @Tags Promotions
// @Produce json
// @Success 200 {object} dto.ListPromotionsResponse
// @Router /v1/promotions [get]
func (h *PromotionHandler) ListPromotions(c *gin.Context) {
	filter, err := bindQueryFilter(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.ListPromotions(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
