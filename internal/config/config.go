// Package config assembles the service configuration from defaults, an
// optional YAML file, and environment variable overrides, then validates
// the result before anything else starts.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/tickerlens/tickerlens/internal/market"
	"github.com/tickerlens/tickerlens/pkg/errors"
)

// Placeholder values shipped in example env files. A key holding one of
// these is treated as absent.
const (
	itickTokenPlaceholder  = "YOUR_ACTUAL_ITICK_API_KEY_GOES_HERE"
	deepSeekKeyPlaceholder = "your_deepseek_api_key_here"
)

// Duration wraps time.Duration so YAML files can write values like "30s"
// or "2m" instead of raw nanosecond counts.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler. Integer scalars are raw
// nanosecond counts; everything else must parse with time.ParseDuration.
// A string target decodes any scalar, so the integer attempt runs first.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var ns int64
	if err := value.Decode(&ns); err == nil {
		*d = Duration(ns)

		return nil
	}

	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return err
	}

	*d = Duration(parsed)

	return nil
}

// Std returns the wrapped standard library duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string   `yaml:"host"`
	Port            int      `yaml:"port" validate:"required,min=1,max=65535"`
	ReadTimeout     Duration `yaml:"read_timeout" validate:"required"`
	WriteTimeout    Duration `yaml:"write_timeout" validate:"required"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout" validate:"required"`
}

// MarketConfig selects and configures the market data vendor.
type MarketConfig struct {
	Provider      market.ProviderType `yaml:"provider" validate:"required,oneof=itick polygon"`
	ITickToken    string              `yaml:"itick_token" validate:"required_if=Provider itick"`
	ITickBaseURL  string              `yaml:"itick_base_url" validate:"omitempty,url"`
	PolygonAPIKey string              `yaml:"polygon_api_key" validate:"required_if=Provider polygon"`
}

// ProviderConfig translates the file and env level settings into the
// provider construction config.
func (c MarketConfig) ProviderConfig() market.Config {
	return market.Config{
		ProviderType:  c.Provider,
		ITickToken:    c.ITickToken,
		ITickBaseURL:  c.ITickBaseURL,
		PolygonAPIKey: c.PolygonAPIKey,
	}
}

// SearchConfig configures instrument search. The endpoint degrades to an
// unavailable response when no key is set, so the key is not required here.
type SearchConfig struct {
	TwelveDataAPIKey string `yaml:"twelvedata_api_key"`
	BaseURL          string `yaml:"base_url" validate:"omitempty,url"`
}

// Enabled reports whether a usable search key is configured.
func (c SearchConfig) Enabled() bool {
	return c.TwelveDataAPIKey != ""
}

// AIConfig configures the analysis model. Like search, a missing key
// disables the endpoint instead of failing startup.
type AIConfig struct {
	DeepSeekAPIKey string   `yaml:"deepseek_api_key"`
	BaseURL        string   `yaml:"base_url" validate:"omitempty,url"`
	RequestTimeout Duration `yaml:"request_timeout" validate:"required"`
}

// Enabled reports whether a usable analysis key is configured.
func (c AIConfig) Enabled() bool {
	return c.DeepSeekAPIKey != "" && c.DeepSeekAPIKey != deepSeekKeyPlaceholder
}

// Config is the root service configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Market MarketConfig `yaml:"market"`
	Search SearchConfig `yaml:"search"`
	AI     AIConfig     `yaml:"ai"`
}

// Default returns the baseline configuration every load starts from.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			ReadTimeout:     Duration(15 * time.Second),
			WriteTimeout:    Duration(60 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Market: MarketConfig{
			Provider: market.ProviderITick,
		},
		Search: SearchConfig{},
		AI: AIConfig{
			RequestTimeout: Duration(30 * time.Second),
		},
	}
}

// Load builds the configuration in three layers: defaults, the YAML file
// at path when non-empty, and finally environment overrides. The merged
// result is validated before being returned.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
		}

		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config file %s", path)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// applyEnv lets the environment override file and default values. The
// variable names match what the deployment env files already export.
func (c *Config) applyEnv() {
	c.Server.Host = getEnv("HOST", c.Server.Host)
	c.Server.Port = getEnvAsInt("PORT", c.Server.Port)

	if v := os.Getenv("MARKET_PROVIDER"); v != "" {
		c.Market.Provider = market.ProviderType(v)
	}

	c.Market.ITickToken = getEnv("ITICK_API_TOKEN", c.Market.ITickToken)
	c.Market.ITickBaseURL = getEnv("ITICK_BASE_URL", c.Market.ITickBaseURL)
	c.Market.PolygonAPIKey = getEnv("POLYGON_API_KEY", c.Market.PolygonAPIKey)

	c.Search.TwelveDataAPIKey = getEnv("TWELVEDATA_API_KEY", c.Search.TwelveDataAPIKey)
	c.Search.BaseURL = getEnv("TWELVEDATA_BASE_URL", c.Search.BaseURL)

	c.AI.DeepSeekAPIKey = getEnv("DEEPSEEK_API_KEY", c.AI.DeepSeekAPIKey)
	c.AI.BaseURL = getEnv("DEEPSEEK_BASE_URL", c.AI.BaseURL)

	if c.Market.ITickToken == itickTokenPlaceholder {
		c.Market.ITickToken = ""
	}
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}

	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}
