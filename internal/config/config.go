package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port              int    `envconfig:"PORT" default:"8080"`
	DatabaseURL       string `envconfig:"DATABASE_URL"`
	JWTSecret         string `envconfig:"JWT_SECRET" default:"dev-secret-change-in-production"`
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH"`
	OutputDir         string `envconfig:"OUTPUT_DIR" default:"./data"`
	ModelDir          string `envconfig:"MODEL_DIR" default:"./models/tracks"`
	AssetBase         string `envconfig:"ASSET_BASE" default:"models/tracks"`
	CoordPrecision    int    `envconfig:"COORD_PRECISION" default:"-1"`
	DegeneratePolicy  string `envconfig:"DEGENERATE_POLICY" default:"skip"`
	AllowedOrigins    string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	LogLevel          string `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration Load produces from an empty environment.
func Default() *Config {
	return &Config{
		Port:             8080,
		JWTSecret:        "dev-secret-change-in-production",
		OutputDir:        "./data",
		ModelDir:         "./models/tracks",
		AssetBase:        "models/tracks",
		CoordPrecision:   -1,
		DegeneratePolicy: "skip",
		AllowedOrigins:   "http://localhost:5173,http://localhost:3000",
		LogLevel:         "info",
	}
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	if c.CoordPrecision < -1 {
		return fmt.Errorf("COORD_PRECISION must be -1 or more, got %d", c.CoordPrecision)
	}
	switch c.DegeneratePolicy {
	case "skip", "abort":
	default:
		return fmt.Errorf("DEGENERATE_POLICY must be skip or abort, got %q", c.DegeneratePolicy)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Origins splits AllowedOrigins.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// ParseLevel maps LOG_LEVEL to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return l, nil
}
