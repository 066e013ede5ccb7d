// internal/registration/picker.go
package registration

import (
	stderrors "github.com/Nishal72/InnoMinds-Code4Good/internal/common/errors"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/logger"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/mapkit"
)

const pickerMarkerID = "registration-location"

// FormFields carries the coordinate text-input values kept in lockstep
// with the picker marker. Both are fixed to 6 decimal places.
type FormFields struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// Picker manages the single draggable marker on the registration map.
// Placing a location reuses the marker instead of stacking new ones,
// so repeated clicks always leave exactly one pin.
type Picker struct {
	config *Config
	logger logger.Logger
}

func NewPicker(config *Config, log logger.Logger) *Picker {
	return &Picker{
		config: config,
		logger: log.WithFields(map[string]interface{}{"component": "registration-picker"}),
	}
}

// NewSurface creates the registration map in its initial island-wide
// state with no pin placed yet.
func (p *Picker) NewSurface() *mapkit.Surface {
	return mapkit.NewSurface(
		mapkit.Coordinate{Lat: p.config.CenterLat, Lng: p.config.CenterLng},
		p.config.InitialZoom,
	)
}

// Place drops or moves the pin to the clicked position, zooms the view
// onto it and returns the synchronized form field values.
func (p *Picker) Place(surface *mapkit.Surface, position mapkit.Coordinate) FormFields {
	marker := p.find(surface)
	if marker == nil {
		marker = surface.Add(&mapkit.Marker{
			ID:        pickerMarkerID,
			Title:     "Business location",
			Position:  position,
			Draggable: true,
		})
	} else {
		marker.Position = position
	}

	surface.Recenter(position, p.config.PlacementZoom)
	return fieldsFor(position)
}

// DragEnd resynchronizes the form fields after the user drags the pin.
// Without a placed pin there is nothing to sync.
func (p *Picker) DragEnd(surface *mapkit.Surface) (FormFields, error) {
	marker := p.find(surface)
	if marker == nil {
		return FormFields{}, stderrors.NewValidationFailedError("no location has been placed yet")
	}
	return fieldsFor(marker.Position), nil
}

func (p *Picker) find(surface *mapkit.Surface) *mapkit.Marker {
	for _, m := range surface.Markers {
		if m.ID == pickerMarkerID {
			return m
		}
	}
	return nil
}

func fieldsFor(position mapkit.Coordinate) FormFields {
	return FormFields{
		Latitude:  mapkit.Format(position.Lat),
		Longitude: mapkit.Format(position.Lng),
	}
}
