// internal/directory/config.go
package directory

import (
	"time"

	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/config"
)

type Config struct {
	DefaultCenterLat float64
	DefaultCenterLng float64
	DefaultZoom      int
	PlacementZoom    int
	CacheTTL         time.Duration
	IndexName        string
	Timeout          time.Duration
}

func LoadConfig() *Config {
	return &Config{
		DefaultCenterLat: -20.348404,
		DefaultCenterLng: 57.552152,
		DefaultZoom:      11,
		PlacementZoom:    15,
		CacheTTL:         5 * time.Minute,
		IndexName:        "businesses",
		Timeout:          10 * time.Second,
	}
}

// ConfigFromGlobal maps the application configuration onto the feature
// config, keeping defaults for anything unset.
func ConfigFromGlobal(global *config.Config) *Config {
	cfg := LoadConfig()
	d := global.Directory
	if d.DefaultLat != 0 {
		cfg.DefaultCenterLat = d.DefaultLat
	}
	if d.DefaultLng != 0 {
		cfg.DefaultCenterLng = d.DefaultLng
	}
	if d.DefaultZoom > 0 {
		cfg.DefaultZoom = d.DefaultZoom
	}
	if d.PlacementZoom > 0 {
		cfg.PlacementZoom = d.PlacementZoom
	}
	if d.CacheTTL > 0 {
		cfg.CacheTTL = time.Duration(d.CacheTTL) * time.Millisecond
	}
	if d.IndexName != "" {
		cfg.IndexName = d.IndexName
	}
	return cfg
}
