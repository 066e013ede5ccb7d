// internal/greenloan/handler.go
package greenloan

import (
	"context"
	"errors"
	"io"
	"net/http"

	stderrors "github.com/Nishal72/InnoMinds-Code4Good/internal/common/errors"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/logger"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/metrics"

	"github.com/gin-gonic/gin"
)

const defaultHistoryLimit = 20

// Handler exposes the payslip pipeline over HTTP.
type Handler struct {
	config   *Config
	pipeline *Pipeline
	sessions *SessionManager
	store    *Store
	logger   logger.Logger
}

func NewHandler(config *Config, pipeline *Pipeline, sessions *SessionManager, store *Store, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		pipeline: pipeline,
		sessions: sessions,
		store:    store,
		logger:   log.WithFields(map[string]interface{}{"feature": "green-loan"}),
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/green_loan/api")
	api.POST("/upload", h.Upload)
	api.POST("/analyze", h.Analyze)
	api.GET("/session/:token", h.GetSession)
	api.GET("/result/:token", h.GetResult)
	api.GET("/history", h.GetHistory)
	api.GET("/stats", h.GetStats)
}

// Upload accepts the payslip image and starts the pipeline.
func (h *Handler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, stderrors.ToResponse(stderrors.NewValidationFailedError("multipart field 'image' is required")))
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, stderrors.ToResponse(stderrors.NewValidationFailedError("unreadable upload")))
		return
	}

	session, err := h.pipeline.Upload(c.Request.Context(), header.Filename, image)
	if err != nil {
		h.respondError(c, "upload", err)
		return
	}

	metrics.RequestsTotal.WithLabelValues("green-loan", "upload", "success").Inc()
	c.JSON(http.StatusAccepted, gin.H{
		"token": session.Token,
		"state": session.State,
	})
}

type analyzeRequest struct {
	Token string `json:"token" binding:"required"`
}

// Analyze triggers the analysis step for a session. When extraction is
// still running after the bounded poll, the reply is a transient
// notice rather than an error page.
func (h *Handler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, stderrors.ToResponse(stderrors.NewValidationFailedError(err.Error())))
		return
	}

	outcome, err := h.pipeline.Analyze(c.Request.Context(), req.Token)
	if err != nil {
		var stdErr *stderrors.StandardError
		if errors.As(err, &stdErr) && stdErr.Code == stderrors.ErrCodeExtractionPending {
			metrics.RequestsTotal.WithLabelValues("green-loan", "analyze", "pending").Inc()
			c.JSON(http.StatusAccepted, gin.H{
				"success": false,
				"code":    stdErr.Code,
				"notice":  h.pipeline.StillExtractingNotice(),
			})
			return
		}
		h.respondError(c, "analyze", err)
		return
	}

	metrics.RequestsTotal.WithLabelValues("green-loan", "analyze", "success").Inc()
	c.JSON(http.StatusOK, gin.H{"success": true, "result": outcome})
}

// GetSession reports the pipeline state for a token, which the gated
// variant's page polls while extraction runs.
func (h *Handler) GetSession(c *gin.Context) {
	session, err := h.sessions.Get(c.Param("token"))
	if err != nil {
		h.respondError(c, "session", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":             session.Token,
		"state":             session.State,
		"extraction_done":   session.ExtractionDone,
		"extraction_failed": session.ExtractionFailed,
	})
}

func (h *Handler) GetResult(c *gin.Context) {
	token := c.Param("token")
	outcome, ok := h.pipeline.Outcome(token)
	if !ok {
		h.respondError(c, "result", stderrors.NewSessionNotFoundError(token))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": outcome})
}

func (h *Handler) GetHistory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.Timeout)
	defer cancel()

	records, err := h.store.ListRecent(ctx, defaultHistoryLimit)
	if err != nil {
		h.respondError(c, "history", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": records})
}

func (h *Handler) GetStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.Timeout)
	defer cancel()

	stats, err := h.store.GetStats(ctx)
	if err != nil {
		h.respondError(c, "stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) respondError(c *gin.Context, operation string, err error) {
	h.logger.Error("request failed", map[string]interface{}{
		"operation": operation,
		"error":     err.Error(),
	})
	metrics.RequestsTotal.WithLabelValues("green-loan", operation, "error").Inc()
	c.JSON(stderrors.StatusOf(err), stderrors.ToResponse(err))
}
