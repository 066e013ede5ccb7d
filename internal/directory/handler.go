// internal/directory/handler.go
package directory

import (
	"context"
	"net/http"
	"strconv"
	"time"

	stderrors "github.com/Nishal72/InnoMinds-Code4Good/internal/common/errors"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/logger"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/metrics"

	"github.com/gin-gonic/gin"
)

// Handler exposes the waste-exchange directory over HTTP: the map
// surface, listings, keyword search and quotation requests.
type Handler struct {
	config *Config
	view   *View
	store  *Store
	search *Search
	quotes *QuoteService
	logger logger.Logger
}

func NewHandler(config *Config, view *View, store *Store, search *Search, quotes *QuoteService, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		view:   view,
		store:  store,
		search: search,
		quotes: quotes,
		logger: log.WithFields(map[string]interface{}{"feature": "directory"}),
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/waste_exchange/api")
	api.GET("/map", h.GetMap)
	api.GET("/businesses", h.ListBusinesses)
	api.GET("/businesses/:id", h.GetBusiness)
	api.GET("/search", h.SearchBusinesses)
	api.POST("/quote", h.RequestQuote)
}

// GetMap returns the directory map surface. An optional category query
// parameter pre-applies the filter; "all" and absence are equivalent.
func (h *Handler) GetMap(c *gin.Context) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.Timeout)
	defer cancel()

	surface, err := h.view.Initialize(ctx)
	if err != nil {
		h.respondError(c, "map", err)
		return
	}

	if category := c.Query("category"); category != "" {
		h.view.Filter(surface, category)
	}

	h.observe("map", start)
	c.JSON(http.StatusOK, surface)
}

func (h *Handler) ListBusinesses(c *gin.Context) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.Timeout)
	defer cancel()

	businesses, err := h.store.ListBusinesses(ctx)
	if err != nil {
		h.respondError(c, "list", err)
		return
	}

	h.observe("list", start)
	c.JSON(http.StatusOK, gin.H{"businesses": businesses})
}

func (h *Handler) GetBusiness(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, stderrors.ToResponse(stderrors.NewValidationFailedError("id must be an integer")))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.Timeout)
	defer cancel()

	business, err := h.store.GetBusiness(ctx, id)
	if err != nil {
		h.respondError(c, "detail", err)
		return
	}
	c.JSON(http.StatusOK, business)
}

// SearchBusinesses runs a keyword query against the search index.
func (h *Handler) SearchBusinesses(c *gin.Context) {
	start := time.Now()
	if h.search == nil {
		c.JSON(http.StatusServiceUnavailable, stderrors.ToResponse(stderrors.NewSearchFailedError(nil)))
		return
	}

	keywords := c.Query("q")
	category := c.Query("category")
	if keywords == "" && category == "" {
		c.JSON(http.StatusBadRequest, stderrors.ToResponse(stderrors.NewValidationFailedError("q or category query param required")))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.Timeout)
	defer cancel()

	results, err := h.search.Query(ctx, keywords, category)
	if err != nil {
		h.respondError(c, "search", err)
		return
	}

	h.observe("search", start)
	c.JSON(http.StatusOK, gin.H{"businesses": results})
}

func (h *Handler) RequestQuote(c *gin.Context) {
	var input QuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, stderrors.ToResponse(stderrors.NewValidationFailedError(err.Error())))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.Timeout)
	defer cancel()

	messageID, err := h.quotes.RequestQuote(ctx, &input)
	if err != nil {
		h.respondError(c, "quote", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message_id": messageID})
}

func (h *Handler) respondError(c *gin.Context, operation string, err error) {
	h.logger.Error("request failed", map[string]interface{}{
		"operation": operation,
		"error":     err.Error(),
	})
	metrics.RequestsTotal.WithLabelValues("directory", operation, "error").Inc()
	c.JSON(stderrors.StatusOf(err), stderrors.ToResponse(err))
}

func (h *Handler) observe(operation string, start time.Time) {
	metrics.RequestsTotal.WithLabelValues("directory", operation, "success").Inc()
	metrics.RequestDuration.WithLabelValues("directory", operation).Observe(time.Since(start).Seconds())
}
