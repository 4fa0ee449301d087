package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "./data", cfg.OutputDir)
	assert.Equal(t, "models/tracks", cfg.AssetBase)
	assert.Equal(t, -1, cfg.CoordPrecision)
	assert.Equal(t, "skip", cfg.DegeneratePolicy)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.Origins())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("COORD_PRECISION", "4")
	t.Setenv("DEGENERATE_POLICY", "abort")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 4, cfg.CoordPrecision)
	assert.Equal(t, "abort", cfg.DegeneratePolicy)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins())

	level, err := ParseLevel(cfg.LogLevel)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"COORD_PRECISION":   "-2",
		"DEGENERATE_POLICY": "explode",
		"LOG_LEVEL":         "chatty",
		"PORT":              "eighty",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDefault_MatchesEmptyEnvironment(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, Default().Validate())
}
