// internal/greenaudit/handler.go
package greenaudit

import (
	"context"
	"net/http"
	"time"

	stderrors "github.com/Nishal72/InnoMinds-Code4Good/internal/common/errors"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/logger"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/metrics"

	"github.com/gin-gonic/gin"
)

// Handler exposes the sustainability audit advisor over HTTP.
type Handler struct {
	config  *Config
	advisor *Advisor
	store   *Store
	logger  logger.Logger
}

func NewHandler(config *Config, advisor *Advisor, store *Store, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		advisor: advisor,
		store:   store,
		logger:  log.WithFields(map[string]interface{}{"feature": "greenaudit"}),
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/green_audit/api")
	api.POST("/analyze", h.AnalyzeAudit)
	api.GET("/audits", h.ListAudits)
}

type analyzeRequest struct {
	AuditText string `json:"audit_text" binding:"required"`
}

func (h *Handler) AnalyzeAudit(c *gin.Context) {
	start := time.Now()

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, stderrors.ToResponse(stderrors.NewValidationFailedError(err.Error())))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.Timeout)
	defer cancel()

	audit, err := h.advisor.Analyze(ctx, req.AuditText)
	if err != nil {
		h.respondError(c, "analyze", err)
		return
	}

	h.observe("analyze", start)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"result":   audit.AnalysisResult,
		"audit_id": audit.ID,
	})
}

// ListAudits returns the recent audit history with consumption totals
// and per-audit derived figures.
func (h *Handler) ListAudits(c *gin.Context) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.Timeout)
	defer cancel()

	audits, err := h.store.ListRecent(ctx, h.config.HistoryLimit)
	if err != nil {
		h.respondError(c, "list", err)
		return
	}

	views := make([]AuditView, 0, len(audits))
	for _, a := range audits {
		views = append(views, AuditView{
			Audit:        a,
			AverageDaily: a.AverageDailyKWh(h.config.BillingPeriodDays),
			CostPerUnit:  a.CostPerKWh(),
		})
	}

	h.observe("list", start)
	c.JSON(http.StatusOK, gin.H{
		"audits":  views,
		"summary": Summarize(audits),
	})
}

func (h *Handler) respondError(c *gin.Context, operation string, err error) {
	h.logger.Error("request failed", map[string]interface{}{
		"operation": operation,
		"error":     err.Error(),
	})
	metrics.RequestsTotal.WithLabelValues("greenaudit", operation, "error").Inc()
	c.JSON(stderrors.StatusOf(err), stderrors.ToResponse(err))
}

func (h *Handler) observe(operation string, start time.Time) {
	metrics.RequestsTotal.WithLabelValues("greenaudit", operation, "success").Inc()
	metrics.RequestDuration.WithLabelValues("greenaudit", operation).Observe(time.Since(start).Seconds())
}
