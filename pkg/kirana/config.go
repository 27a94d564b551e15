package kirana

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Vendors       VendorsConfig       `mapstructure:"vendors"`
	Tools         ToolsConfig         `mapstructure:"tools"`
	Context       ContextConfig       `mapstructure:"context"`
	Gateway       GatewayConfig       `mapstructure:"gateway"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	Privacy       PrivacyConfig       `mapstructure:"privacy"`
	Environment   string              `mapstructure:"environment"`
	LogLevel      string              `mapstructure:"log_level"`
	LogFormat     string              `mapstructure:"log_format"`
	Persona       string              `mapstructure:"persona"`
}

type VendorConfig struct {
	Provider string         `mapstructure:"provider"`
	Settings map[string]any `mapstructure:"settings"`
}

type VendorsConfig struct {
	Model  VendorConfig `mapstructure:"model"`
	Search VendorConfig `mapstructure:"search"`
}

type ToolsConfig struct {
	TurnTimeoutMS    int `mapstructure:"turn_timeout_ms"`
	SearchMaxResults int `mapstructure:"search_max_results"`
}

type ContextConfig struct {
	MaxHistory int `mapstructure:"max_history"`
}

type GatewayConfig struct {
	Addr           string `mapstructure:"addr"`
	Path           string `mapstructure:"path"`
	AllowAnyOrigin bool   `mapstructure:"allow_any_origin"`
}

type ObservabilityConfig struct {
	MetricsPath string `mapstructure:"metrics_path"`
}

type PrivacyConfig struct {
	RedactPII bool `mapstructure:"redact_pii"`
}

func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("vendors.model.provider", "ollama")
	v.SetDefault("vendors.search.provider", "arxiv")
	v.SetDefault("tools.turn_timeout_ms", 120000)
	v.SetDefault("tools.search_max_results", 3)
	v.SetDefault("context.max_history", 10)
	v.SetDefault("gateway.addr", ":8089")
	v.SetDefault("gateway.path", "/ws")
	v.SetDefault("gateway.allow_any_origin", false)
	v.SetDefault("observability.metrics_path", "")
	v.SetDefault("privacy.redact_pii", true)
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
