// internal/vatreturn/config.go
package vatreturn

import (
	"time"

	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/config"
)

// Config holds the offline VAT return settings. The cipher material
// defaults match the historical filing tool so previously issued
// ciphertexts stay decryptable.
type Config struct {
	AESKey     string
	AESIV      string
	SMSEnabled bool
	Timeout    time.Duration
}

func LoadConfig() *Config {
	return &Config{
		AESKey:     "1234567812345678",
		AESIV:      "1234567812345678",
		SMSEnabled: true,
		Timeout:    10 * time.Second,
	}
}

// ConfigFromGlobal maps the application configuration onto the feature
// config, keeping defaults for anything unset.
func ConfigFromGlobal(global *config.Config) *Config {
	cfg := LoadConfig()
	if global.VATReturn.AESKey != "" {
		cfg.AESKey = global.VATReturn.AESKey
	}
	if global.VATReturn.AESIV != "" {
		cfg.AESIV = global.VATReturn.AESIV
	}
	cfg.SMSEnabled = global.VATReturn.SMSEnabled
	return cfg
}
