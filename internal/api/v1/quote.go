package v1

import (
	"crypto/subtle"
	"net/http"
	"regexp"

	"github.com/agripay/agripay/internal/config"
	ierr "github.com/agripay/agripay/internal/errors"
	"github.com/agripay/agripay/internal/logger"
	"github.com/agripay/agripay/internal/service"
	"github.com/gin-gonic/gin"
)

// HeaderQuoteSecret carries the shared secret protecting the quote
// endpoint when one is configured
const HeaderQuoteSecret = "X-Quote-Secret"

var telephonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// QuoteHandler answers pre-payment amount lookups
type QuoteHandler struct {
	service service.QuoteService
	config  *config.Configuration
	log     *logger.Logger
}

func NewQuoteHandler(service service.QuoteService, config *config.Configuration, log *logger.Logger) *QuoteHandler {
	return &QuoteHandler{service: service, config: config, log: log}
}

// @Summary Get a payment quote
// @Description Returns the amount the subscriber should pay next
// @Tags Paiements
// @Produce json
// @Param telephone query string true "Subscriber telephone, 10 digits"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /v1/paiements/quote [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	if secret := h.config.Quote.Secret; secret != "" {
		provided := c.GetHeader(HeaderQuoteSecret)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			c.Error(ierr.NewError("quote secret mismatch").
				WithHint("Invalid or missing quote secret").
				Mark(ierr.ErrPermissionDenied))
			return
		}
	}

	telephone := c.Query("telephone")
	if !telephonePattern.MatchString(telephone) {
		c.Error(ierr.NewError("invalid telephone").
			WithHint("telephone must be exactly 10 digits").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetQuote(c.Request.Context(), telephone)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
