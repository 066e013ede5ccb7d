// internal/registration/config.go
package registration

import (
	"time"

	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/config"
)

type Config struct {
	CenterLat     float64
	CenterLng     float64
	InitialZoom   int
	PlacementZoom int
	Timeout       time.Duration
}

func LoadConfig() *Config {
	return &Config{
		CenterLat:     -20.348404,
		CenterLng:     57.552152,
		InitialZoom:   11,
		PlacementZoom: 15,
		Timeout:       10 * time.Second,
	}
}

// ConfigFromGlobal maps the application configuration onto the feature
// config, keeping defaults for anything unset. The picker shares the
// directory's map defaults.
func ConfigFromGlobal(global *config.Config) *Config {
	cfg := LoadConfig()
	d := global.Directory
	if d.DefaultLat != 0 {
		cfg.CenterLat = d.DefaultLat
	}
	if d.DefaultLng != 0 {
		cfg.CenterLng = d.DefaultLng
	}
	if d.DefaultZoom > 0 {
		cfg.InitialZoom = d.DefaultZoom
	}
	if d.PlacementZoom > 0 {
		cfg.PlacementZoom = d.PlacementZoom
	}
	return cfg
}
