// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like GREEN_LOAN_BASE_URL
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig() // ignore error if not found

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// Direct override if config values are still empty after expansion
func overrideEmptyConfig(cfg *Config) {
	if cfg.Database.Postgres.User == "" {
		if val := os.Getenv("DB_USER"); val != "" {
			cfg.Database.Postgres.User = val
		}
	}
	if cfg.Database.Postgres.Password == "" {
		if val := os.Getenv("DB_PASSWORD"); val != "" {
			cfg.Database.Postgres.Password = val
		}
	}

	if cfg.APIs.GenAI.APIKey == "" {
		if val := os.Getenv("GENAI_API_KEY"); val != "" {
			cfg.APIs.GenAI.APIKey = val
		}
	}

	if cfg.VATReturn.AESKey == "" {
		if val := os.Getenv("VAT_AES_KEY"); val != "" {
			cfg.VATReturn.AESKey = val
		}
	}
	if cfg.VATReturn.AESIV == "" {
		if val := os.Getenv("VAT_AES_IV"); val != "" {
			cfg.VATReturn.AESIV = val
		}
	}
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}

	// Database defaults
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	// Pipeline defaults mirror the observed page behaviour: 1s settle
	// before auto-analysis, 500ms poll up to 10 attempts in the gated
	// variant, a 2s transient notice and a 500ms chart delay.
	if cfg.GreenLoan.Timeout == 0 {
		cfg.GreenLoan.Timeout = 30000
	}
	if cfg.GreenLoan.Trigger == "" {
		cfg.GreenLoan.Trigger = "auto"
	}
	if cfg.GreenLoan.AutoAnalyzeDelay == 0 {
		cfg.GreenLoan.AutoAnalyzeDelay = 1000
	}
	if cfg.GreenLoan.PollInterval == 0 {
		cfg.GreenLoan.PollInterval = 500
	}
	if cfg.GreenLoan.PollMaxAttempts == 0 {
		cfg.GreenLoan.PollMaxAttempts = 10
	}
	if cfg.GreenLoan.NoticeRevert == 0 {
		cfg.GreenLoan.NoticeRevert = 2000
	}
	if cfg.GreenLoan.ChartDelay == 0 {
		cfg.GreenLoan.ChartDelay = 500
	}
	if cfg.GreenLoan.SessionTTL == 0 {
		cfg.GreenLoan.SessionTTL = int((30 * time.Minute).Milliseconds())
	}
	if cfg.GreenLoan.CurrencyLabel == "" {
		cfg.GreenLoan.CurrencyLabel = "MUR"
	}

	charts := &cfg.GreenLoan.Charts
	if charts.CostPerKW == 0 {
		charts.CostPerKW = 80000
	}
	if charts.MaxCapacityKW == 0 {
		charts.MaxCapacityKW = 5
	}
	if charts.CO2TonsPerKWYear == 0 {
		charts.CO2TonsPerKWYear = 0.7
	}
	if charts.TreesPerTonCO2 == 0 {
		charts.TreesPerTonCO2 = 16
	}
	if charts.BottlesPerTonCO2 == 0 {
		charts.BottlesPerTonCO2 = 3000
	}
	if charts.DefaultRate == 0 {
		charts.DefaultRate = 5.5
	}
	if charts.DefaultTermYears == 0 {
		charts.DefaultTermYears = 10
	}
	if len(charts.ProjectNames) == 0 {
		charts.ProjectNames = []string{
			"Solar Panels (5kW)",
			"Energy Efficient AC",
			"Solar Water Heater",
			"LED Lighting",
			"Insulation",
		}
	}
	if len(charts.ProjectCosts) == 0 {
		charts.ProjectCosts = []float64{400000, 80000, 60000, 30000, 50000}
	}

	// The directory map centers on the island's default coordinate.
	if cfg.Directory.DefaultLat == 0 {
		cfg.Directory.DefaultLat = -20.348404
	}
	if cfg.Directory.DefaultLng == 0 {
		cfg.Directory.DefaultLng = 57.552152
	}
	if cfg.Directory.DefaultZoom == 0 {
		cfg.Directory.DefaultZoom = 11
	}
	if cfg.Directory.PlacementZoom == 0 {
		cfg.Directory.PlacementZoom = 15
	}
	if cfg.Directory.CacheTTL == 0 {
		cfg.Directory.CacheTTL = int((5 * time.Minute).Milliseconds())
	}
	if cfg.Directory.IndexName == "" {
		cfg.Directory.IndexName = "businesses"
	}

	if cfg.GreenAudit.MaxTextLength == 0 {
		cfg.GreenAudit.MaxTextLength = 2000
	}

	if cfg.APIs.GenAI.Timeout == 0 {
		cfg.APIs.GenAI.Timeout = 60000
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.Database.Postgres.Host == "" {
		return fmt.Errorf("database.postgres.host is required")
	}
	if cfg.Database.Postgres.Database == "" {
		return fmt.Errorf("database.postgres.database is required")
	}
	if cfg.Database.Postgres.User == "" {
		return fmt.Errorf("database.postgres.user is required")
	}

	if cfg.Database.Redis.Address == "" {
		return fmt.Errorf("database.redis.address is required")
	}

	if cfg.GreenLoan.BaseURL == "" {
		return fmt.Errorf("green_loan.base_url is required")
	}
	if cfg.GreenLoan.Trigger != "auto" && cfg.GreenLoan.Trigger != "gated" {
		return fmt.Errorf("green_loan.trigger must be \"auto\" or \"gated\"")
	}

	if cfg.VATReturn.AESKey != "" && len(cfg.VATReturn.AESKey) != 16 {
		return fmt.Errorf("vat_return.aes_key must be 16 bytes")
	}
	if cfg.VATReturn.AESIV != "" && len(cfg.VATReturn.AESIV) != 16 {
		return fmt.Errorf("vat_return.aes_iv must be 16 bytes")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
