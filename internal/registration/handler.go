// internal/registration/handler.go
package registration

import (
	"context"
	"net/http"
	"time"

	stderrors "github.com/Nishal72/InnoMinds-Code4Good/internal/common/errors"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/logger"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/metrics"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/validation"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/directory"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/mapkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the business-registration flow: the picker map and
// the form submission. New listings land in the directory store and
// are mirrored into the search index best-effort.
type Handler struct {
	config *Config
	picker *Picker
	store  *directory.Store
	search *directory.Search
	logger logger.Logger
}

func NewHandler(config *Config, picker *Picker, store *directory.Store, search *directory.Search, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		picker: picker,
		store:  store,
		search: search,
		logger: log.WithFields(map[string]interface{}{"feature": "registration"}),
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/waste_exchange/api")
	api.GET("/register/map", h.GetPickerMap)
	api.POST("/register/place", h.PlacePin)
	api.POST("/register", h.Submit)
}

// GetPickerMap returns the registration map in its initial state.
func (h *Handler) GetPickerMap(c *gin.Context) {
	c.JSON(http.StatusOK, h.picker.NewSurface())
}

// required would reject 0, which is a valid coordinate component;
// ranges are checked explicitly instead.
type placeRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PlacePin simulates a click on the picker map and returns the updated
// surface together with the synchronized form field values.
func (h *Handler) PlacePin(c *gin.Context) {
	var req placeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, stderrors.ToResponse(stderrors.NewValidationFailedError(err.Error())))
		return
	}
	if !validation.ValidateCoordinate(req.Latitude, req.Longitude) {
		c.JSON(http.StatusBadRequest, stderrors.ToResponse(stderrors.NewValidationFailedError("coordinates are out of range")))
		return
	}

	surface := h.picker.NewSurface()
	fields := h.picker.Place(surface, mapkit.Coordinate{Lat: req.Latitude, Lng: req.Longitude})
	c.JSON(http.StatusOK, gin.H{"surface": surface, "fields": fields})
}

// Submit stores a new business listing.
func (h *Handler) Submit(c *gin.Context) {
	start := time.Now()

	var input directory.RegistrationInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, stderrors.ToResponse(stderrors.NewValidationFailedError(err.Error())))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.Timeout)
	defer cancel()

	business, err := h.store.InsertBusiness(ctx, &input)
	if err != nil {
		h.logger.Error("registration failed", map[string]interface{}{
			"error": err.Error(),
		})
		metrics.RequestsTotal.WithLabelValues("registration", "submit", "error").Inc()
		c.JSON(stderrors.StatusOf(err), stderrors.ToResponse(err))
		return
	}

	if h.search != nil {
		if err := h.search.IndexBusiness(ctx, business); err != nil {
			h.logger.Warn("search index update failed", map[string]interface{}{
				"businessId": business.ID,
				"error":      err.Error(),
			})
		}
	}

	metrics.RequestsTotal.WithLabelValues("registration", "submit", "success").Inc()
	metrics.RequestDuration.WithLabelValues("registration", "submit").Observe(time.Since(start).Seconds())

	h.logger.Info("business registered", map[string]interface{}{
		"businessId": business.ID,
		"name":       business.Name,
	})
	c.JSON(http.StatusCreated, business)
}
