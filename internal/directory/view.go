// internal/directory/view.go
package directory

import (
	"context"
	"strconv"

	stderrors "github.com/Nishal72/InnoMinds-Code4Good/internal/common/errors"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/logger"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/mapkit"
)

// FilterAll shows every marker regardless of category.
const FilterAll = "all"

// View assembles the directory map: one marker per listing, each
// carrying a generated name badge icon and a detail link.
type View struct {
	config *Config
	store  *Store
	logger logger.Logger
}

func NewView(config *Config, store *Store, log logger.Logger) *View {
	return &View{
		config: config,
		store:  store,
		logger: log.WithFields(map[string]interface{}{"component": "directory-view"}),
	}
}

// Initialize loads every listing and places it on a fresh surface
// centered on the island-wide default view.
func (v *View) Initialize(ctx context.Context) (*mapkit.Surface, error) {
	businesses, err := v.store.ListBusinesses(ctx)
	if err != nil {
		return nil, err
	}

	surface := mapkit.NewSurface(
		mapkit.Coordinate{Lat: v.config.DefaultCenterLat, Lng: v.config.DefaultCenterLng},
		v.config.DefaultZoom,
	)

	for _, b := range businesses {
		icon := mapkit.Icon(b.Name)
		surface.Add(&mapkit.Marker{
			ID:        strconv.FormatInt(b.ID, 10),
			Title:     b.Name,
			Position:  mapkit.Coordinate{Lat: b.Latitude, Lng: b.Longitude},
			Icon:      &icon,
			Category:  b.Category,
			DetailURL: b.DetailURL,
		})
	}

	v.logger.Info("directory map initialized", map[string]interface{}{
		"markers": len(surface.Markers),
	})

	return surface, nil
}

// Filter toggles marker visibility in place. "all" restores every
// marker; any other value shows exact category matches only. Markers
// are never removed, so switching filters is lossless.
func (v *View) Filter(surface *mapkit.Surface, category string) {
	for _, m := range surface.Markers {
		if category == FilterAll {
			m.Visible = true
		} else {
			m.Visible = m.Category == category
		}
	}
}

// Select resolves a marker click to its detail page location.
func (v *View) Select(surface *mapkit.Surface, markerID string) (string, error) {
	for _, m := range surface.Markers {
		if m.ID == markerID {
			return m.Click(), nil
		}
	}
	return "", stderrors.NewBusinessNotFoundError(markerID)
}
