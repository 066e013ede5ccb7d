// internal/greenloan/config.go
package greenloan

import (
	"time"

	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/config"
)

// TriggerMode selects how analysis is started after an upload.
type TriggerMode string

const (
	// TriggerAuto runs analysis unconditionally a fixed delay after
	// extraction finishes.
	TriggerAuto TriggerMode = "auto"
	// TriggerGated waits for an explicit analyze call and polls for
	// extraction completion before running analysis.
	TriggerGated TriggerMode = "gated"
)

type Config struct {
	BaseURL string
	Timeout time.Duration

	Trigger          TriggerMode
	AutoAnalyzeDelay time.Duration
	PollInterval     time.Duration
	PollMaxAttempts  int
	NoticeRevert     time.Duration
	ChartDelay       time.Duration

	SessionTTL    time.Duration
	CurrencyLabel string

	Charts ChartsConfig
}

// ChartsConfig carries the conversion constants behind the derived
// charts. They are illustrative market placeholders kept configurable.
type ChartsConfig struct {
	CostPerKW        float64
	MaxCapacityKW    float64
	CO2TonsPerKWYear float64
	TreesPerTonCO2   float64
	BottlesPerTonCO2 float64
	DefaultRate      float64
	DefaultTermYears float64
	ProjectNames     []string
	ProjectCosts     []float64
}

func LoadConfig() *Config {
	return &Config{
		BaseURL:          "http://localhost:8000",
		Timeout:          30 * time.Second,
		Trigger:          TriggerAuto,
		AutoAnalyzeDelay: 1 * time.Second,
		PollInterval:     500 * time.Millisecond,
		PollMaxAttempts:  10,
		NoticeRevert:     2 * time.Second,
		ChartDelay:       500 * time.Millisecond,
		SessionTTL:       30 * time.Minute,
		CurrencyLabel:    "MUR",
		Charts: ChartsConfig{
			CostPerKW:        80000,
			MaxCapacityKW:    5,
			CO2TonsPerKWYear: 0.7,
			TreesPerTonCO2:   16,
			BottlesPerTonCO2: 3000,
			DefaultRate:      5.5,
			DefaultTermYears: 10,
			ProjectNames:     []string{"Solar Panels (5kW)", "Energy Efficient AC", "Solar Water Heater", "LED Lighting", "Insulation"},
			ProjectCosts:     []float64{400000, 80000, 60000, 30000, 50000},
		},
	}
}

// ConfigFromGlobal maps the application-level section onto the feature
// config, keeping the defaults for anything left unset.
func ConfigFromGlobal(g *config.GreenLoanConfig) *Config {
	cfg := LoadConfig()
	if g == nil {
		return cfg
	}
	if g.BaseURL != "" {
		cfg.BaseURL = g.BaseURL
	}
	if g.Timeout > 0 {
		cfg.Timeout = time.Duration(g.Timeout) * time.Millisecond
	}
	if g.Trigger != "" {
		cfg.Trigger = TriggerMode(g.Trigger)
	}
	if g.AutoAnalyzeDelay > 0 {
		cfg.AutoAnalyzeDelay = time.Duration(g.AutoAnalyzeDelay) * time.Millisecond
	}
	if g.PollInterval > 0 {
		cfg.PollInterval = time.Duration(g.PollInterval) * time.Millisecond
	}
	if g.PollMaxAttempts > 0 {
		cfg.PollMaxAttempts = g.PollMaxAttempts
	}
	if g.NoticeRevert > 0 {
		cfg.NoticeRevert = time.Duration(g.NoticeRevert) * time.Millisecond
	}
	if g.ChartDelay > 0 {
		cfg.ChartDelay = time.Duration(g.ChartDelay) * time.Millisecond
	}
	if g.SessionTTL > 0 {
		cfg.SessionTTL = time.Duration(g.SessionTTL) * time.Millisecond
	}
	if g.CurrencyLabel != "" {
		cfg.CurrencyLabel = g.CurrencyLabel
	}
	if g.Charts.CostPerKW > 0 {
		cfg.Charts.CostPerKW = g.Charts.CostPerKW
	}
	if g.Charts.MaxCapacityKW > 0 {
		cfg.Charts.MaxCapacityKW = g.Charts.MaxCapacityKW
	}
	if g.Charts.CO2TonsPerKWYear > 0 {
		cfg.Charts.CO2TonsPerKWYear = g.Charts.CO2TonsPerKWYear
	}
	if g.Charts.TreesPerTonCO2 > 0 {
		cfg.Charts.TreesPerTonCO2 = g.Charts.TreesPerTonCO2
	}
	if g.Charts.BottlesPerTonCO2 > 0 {
		cfg.Charts.BottlesPerTonCO2 = g.Charts.BottlesPerTonCO2
	}
	if g.Charts.DefaultRate > 0 {
		cfg.Charts.DefaultRate = g.Charts.DefaultRate
	}
	if g.Charts.DefaultTermYears > 0 {
		cfg.Charts.DefaultTermYears = g.Charts.DefaultTermYears
	}
	if len(g.Charts.ProjectNames) > 0 {
		cfg.Charts.ProjectNames = g.Charts.ProjectNames
	}
	if len(g.Charts.ProjectCosts) > 0 {
		cfg.Charts.ProjectCosts = g.Charts.ProjectCosts
	}
	return cfg
}
