// internal/vatreturn/handler.go
package vatreturn

import (
	"context"
	"net/http"
	"time"

	stderrors "github.com/Nishal72/InnoMinds-Code4Good/internal/common/errors"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/logger"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/metrics"

	"github.com/gin-gonic/gin"
)

const defaultHistoryLimit = 20

// Handler exposes the offline VAT return tool over HTTP: filing,
// ciphertext decryption and the filing history.
type Handler struct {
	config  *Config
	service *Service
	store   *Store
	logger  logger.Logger
}

func NewHandler(config *Config, service *Service, store *Store, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		service: service,
		store:   store,
		logger:  log.WithFields(map[string]interface{}{"feature": "vatreturn"}),
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/offline_vat_return/api")
	api.POST("/submit", h.SubmitFiling)
	api.POST("/decrypt", h.DecryptMessage)
	api.GET("/returns", h.ListReturns)
}

func (h *Handler) SubmitFiling(c *gin.Context) {
	start := time.Now()

	var input FilingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, stderrors.ToResponse(stderrors.NewValidationFailedError(err.Error())))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.Timeout)
	defer cancel()

	receipt, err := h.service.SubmitFiling(ctx, &input)
	if err != nil {
		h.respondError(c, "submit", err)
		return
	}

	h.observe("submit", start)
	c.JSON(http.StatusCreated, receipt)
}

type decryptRequest struct {
	Ciphertext string `json:"ciphertext" binding:"required"`
}

func (h *Handler) DecryptMessage(c *gin.Context) {
	start := time.Now()

	var req decryptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, stderrors.ToResponse(stderrors.NewValidationFailedError(err.Error())))
		return
	}

	plaintext, err := h.service.Decrypt(req.Ciphertext)
	if err != nil {
		h.respondError(c, "decrypt", err)
		return
	}

	h.observe("decrypt", start)
	c.JSON(http.StatusOK, gin.H{"plaintext": plaintext})
}

func (h *Handler) ListReturns(c *gin.Context) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.Timeout)
	defer cancel()

	returns, err := h.store.ListRecent(ctx, defaultHistoryLimit)
	if err != nil {
		h.respondError(c, "list", err)
		return
	}

	h.observe("list", start)
	c.JSON(http.StatusOK, gin.H{"returns": returns})
}

func (h *Handler) respondError(c *gin.Context, operation string, err error) {
	h.logger.Error("request failed", map[string]interface{}{
		"operation": operation,
		"error":     err.Error(),
	})
	metrics.RequestsTotal.WithLabelValues("vatreturn", operation, "error").Inc()
	c.JSON(stderrors.StatusOf(err), stderrors.ToResponse(err))
}

func (h *Handler) observe(operation string, start time.Time) {
	metrics.RequestsTotal.WithLabelValues("vatreturn", operation, "success").Inc()
	metrics.RequestDuration.WithLabelValues("vatreturn", operation).Observe(time.Since(start).Seconds())
}
