// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App          AppConfig          `mapstructure:"app"`
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	GreenLoan    GreenLoanConfig    `mapstructure:"green_loan"`
	Directory    DirectoryConfig    `mapstructure:"directory"`
	VATReturn    VATReturnConfig    `mapstructure:"vat_return"`
	GreenAudit   GreenAuditConfig   `mapstructure:"green_audit"`
	APIs         APIsConfig         `mapstructure:"apis"`
	Integrations IntegrationConfig  `mapstructure:"integrations"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type ElasticsearchConfig struct {
	Enabled    bool     `mapstructure:"enabled"`
	Addresses  []string `mapstructure:"addresses"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	SSLEnabled bool     `mapstructure:"ssl_enabled"`
	URL        string   `mapstructure:"url"`
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

// --- Feature Configuration Sections ---

// GreenLoanConfig holds settings for the payslip analysis pipeline.
type GreenLoanConfig struct {
	// BaseURL of the service exposing the payslip extraction and
	// analysis endpoints. The endpoint paths themselves are fixed.
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds

	// Trigger selects how analysis is started once extraction has been
	// requested: "auto" runs analysis after a fixed delay, "gated"
	// waits for an explicit analyze call and polls for completion.
	Trigger string `mapstructure:"trigger"`

	AutoAnalyzeDelay int `mapstructure:"auto_analyze_delay"` // milliseconds
	PollInterval     int `mapstructure:"poll_interval"`      // milliseconds
	PollMaxAttempts  int `mapstructure:"poll_max_attempts"`
	NoticeRevert     int `mapstructure:"notice_revert"` // milliseconds
	ChartDelay       int `mapstructure:"chart_delay"`   // milliseconds

	SessionTTL int `mapstructure:"session_ttl"` // milliseconds

	CurrencyLabel string       `mapstructure:"currency_label"`
	Charts        ChartsConfig `mapstructure:"charts"`
}

// ChartsConfig holds the illustrative conversion constants behind the
// derived charts. They are market placeholders, not domain truths.
type ChartsConfig struct {
	CostPerKW        float64   `mapstructure:"cost_per_kw"`
	MaxCapacityKW    float64   `mapstructure:"max_capacity_kw"`
	CO2TonsPerKWYear float64   `mapstructure:"co2_tons_per_kw_year"`
	TreesPerTonCO2   float64   `mapstructure:"trees_per_ton_co2"`
	BottlesPerTonCO2 float64   `mapstructure:"bottles_per_ton_co2"`
	DefaultRate      float64   `mapstructure:"default_rate"`
	DefaultTermYears float64   `mapstructure:"default_term_years"`
	ProjectNames     []string  `mapstructure:"project_names"`
	ProjectCosts     []float64 `mapstructure:"project_costs"`
}

// DirectoryConfig holds settings for the waste-exchange directory and
// the registration map picker.
type DirectoryConfig struct {
	DefaultLat    float64 `mapstructure:"default_lat"`
	DefaultLng    float64 `mapstructure:"default_lng"`
	DefaultZoom   int     `mapstructure:"default_zoom"`
	PlacementZoom int     `mapstructure:"placement_zoom"`
	CacheTTL      int     `mapstructure:"cache_ttl"` // milliseconds
	IndexName     string  `mapstructure:"index_name"`
}

// VATReturnConfig holds settings for the offline VAT return feature.
type VATReturnConfig struct {
	AESKey     string `mapstructure:"aes_key"`
	AESIV      string `mapstructure:"aes_iv"`
	SMSEnabled bool   `mapstructure:"sms_enabled"`
}

// GreenAuditConfig holds settings for the sustainability audit advisor.
type GreenAuditConfig struct {
	MaxTextLength int `mapstructure:"max_text_length"`
}

// APIsConfig holds settings for external API integrations.
type APIsConfig struct {
	GenAI struct {
		BaseURL string `mapstructure:"base_url"`
		APIKey  string `mapstructure:"api_key"`
		Timeout int    `mapstructure:"timeout"` // milliseconds
	} `mapstructure:"genai"`
}

// IntegrationConfig holds settings for e-mail and SMS delivery.
type IntegrationConfig struct {
	AWS struct {
		Region string `mapstructure:"region"`
		SES    struct {
			Enabled   bool   `mapstructure:"enabled"`
			FromEmail string `mapstructure:"from_email"`
		} `mapstructure:"ses"`
		SNS struct {
			Enabled            bool   `mapstructure:"enabled"`
			DefaultSMSSenderID string `mapstructure:"default_sms_sender_id"`
		} `mapstructure:"sns"`
	} `mapstructure:"aws"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
