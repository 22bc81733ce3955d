// Package config loads the settings used by the example programs: where the
// records endpoint lives and how to log.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/softdev1029/records-fetch/pkg/logging"
	"github.com/softdev1029/records-fetch/pkg/records"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "RECORDS_"

// Config is the full configuration of an example program.
type Config struct {
	Records RecordsConfig  `yaml:"records"`
	Logging logging.Config `yaml:"logging"`
}

// RecordsConfig describes how to reach the records endpoint.
type RecordsConfig struct {
	BaseURL   string `yaml:"base_url" validate:"required,url"`
	UserAgent string `yaml:"user_agent"`

	// HTTPTimeout bounds the whole request. Zero leaves it unbounded.
	HTTPTimeout time.Duration `yaml:"http_timeout" validate:"gte=0"`

	SingleColorPadding bool `yaml:"single_color_padding"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Records: RecordsConfig{
			BaseURL:            "http://localhost:3000",
			UserAgent:          "records-fetch/0.1.0",
			SingleColorPadding: true,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is not empty), the given dotenv files (missing files are skipped)
// and finally RECORDS_* environment variables.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", f, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v, ok := lookup("BASE_URL"); ok {
		cfg.Records.BaseURL = v
	}
	if v, ok := lookup("USER_AGENT"); ok {
		cfg.Records.UserAgent = v
	}
	if v, ok := lookup("HTTP_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sHTTP_TIMEOUT: %w", EnvPrefix, err)
		}
		cfg.Records.HTTPTimeout = d
	}
	if v, ok := lookup("SINGLE_COLOR_PADDING"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sSINGLE_COLOR_PADDING: %w", EnvPrefix, err)
		}
		cfg.Records.SingleColorPadding = b
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		cfg.Logging.Level = logging.LogLevel(v)
	}
	if v, ok := lookup("LOG_PRETTY"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sLOG_PRETTY: %w", EnvPrefix, err)
		}
		cfg.Logging.Pretty = b
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// ClientConfig converts the records section into a records.Config. The
// recorder and tracer provider are left for the caller to set.
func (c *Config) ClientConfig() records.Config {
	cfg := records.DefaultConfig(c.Records.BaseURL)
	cfg.UserAgent = c.Records.UserAgent
	cfg.HTTPClient = &http.Client{Timeout: c.Records.HTTPTimeout}
	cfg.SingleColorPadding = c.Records.SingleColorPadding
	return cfg
}
