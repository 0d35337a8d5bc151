package cron

import (
	"net/http"

	"github.com/agripay/agripay/internal/logger"
	"github.com/agripay/agripay/internal/service"
	"github.com/gin-gonic/gin"
)

// ReconciliationHandler triggers the cross-ledger sweep. Exposed as an
// HTTP cron target so the scheduler stays outside the service.
type ReconciliationHandler struct {
	reconciliationService service.ReconciliationService
	log                   *logger.Logger
}

func NewReconciliationHandler(reconciliationService service.ReconciliationService, log *logger.Logger) *ReconciliationHandler {
	return &ReconciliationHandler{
		reconciliationService: reconciliationService,
		log:                   log,
	}
}

// @Summary Run a reconciliation sweep
// @Description Scans the provider ledger and repairs missing normalized entries
// @Tags Cron
// @Produce json
// @Success 200 {object} dto.ReconciliationSummary
// @Router /cron/reconciliation [post]
func (h *ReconciliationHandler) Reconcile(c *gin.Context) {
	h.log.Infow("starting reconciliation sweep")

	summary, err := h.reconciliationService.Run(c.Request.Context())
	if err != nil {
		h.log.Errorw("reconciliation sweep failed", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
