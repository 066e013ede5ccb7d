// internal/registration/geolocate.go
package registration

import (
	"context"

	stderrors "github.com/Nishal72/InnoMinds-Code4Good/internal/common/errors"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/mapkit"
)

// Geolocator resolves the device's current position. A nil Geolocator
// models an environment without positioning support.
type Geolocator interface {
	Current(ctx context.Context) (mapkit.Coordinate, error)
}

// UseMyLocation places the pin at the device's current position. Both
// failure paths surface as alert-worthy errors so the form can tell
// the user instead of silently leaving the pin where it was.
func (p *Picker) UseMyLocation(ctx context.Context, surface *mapkit.Surface, locator Geolocator) (FormFields, error) {
	if locator == nil {
		return FormFields{}, stderrors.NewGeolocationUnsupportedError()
	}

	position, err := locator.Current(ctx)
	if err != nil {
		p.logger.Warn("geolocation lookup failed", map[string]interface{}{
			"error": err.Error(),
		})
		return FormFields{}, stderrors.NewGeolocationUnavailableError(err.Error())
	}

	return p.Place(surface, position), nil
}
