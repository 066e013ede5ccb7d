// internal/greenaudit/config.go
package greenaudit

import (
	"time"

	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/config"
)

// Config holds the sustainability audit advisor settings.
type Config struct {
	MaxTextLength      int
	AdvisorMaxTokens   int
	AdvisorTemperature float64
	HistoryLimit       int
	BillingPeriodDays  float64
	Timeout            time.Duration
}

func LoadConfig() *Config {
	return &Config{
		MaxTextLength:      2000,
		AdvisorMaxTokens:   2000,
		AdvisorTemperature: 0.7,
		HistoryLimit:       10,
		BillingPeriodDays:  30,
		Timeout:            30 * time.Second,
	}
}

// ConfigFromGlobal maps the application configuration onto the feature
// config, keeping defaults for anything unset.
func ConfigFromGlobal(global *config.Config) *Config {
	cfg := LoadConfig()
	if global.GreenAudit.MaxTextLength > 0 {
		cfg.MaxTextLength = global.GreenAudit.MaxTextLength
	}
	return cfg
}
