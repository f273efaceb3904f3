package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Profile holds the collaborator configuration for one run: where to verify
// EINs and which model narrates reports. Empty values disable the
// corresponding collaborator.
type Profile struct {
	EINRegistryURL        string `mapstructure:"ein_registry_url"`
	GeminiAPIKey          string `mapstructure:"gemini_api_key"`
	GeminiModel           string `mapstructure:"gemini_model"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds"`
}

func (p *Profile) RequestTimeout() time.Duration {
	if p.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(p.RequestTimeoutSeconds) * time.Second
}

// LoadProfile reads a single-profile configuration file (any format viper
// understands: yaml, json, toml).
func LoadProfile(path string) (*Profile, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var profile Profile
	if err := v.Unmarshal(&profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile config: %w", err)
	}
	return &profile, nil
}
