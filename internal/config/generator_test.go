package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultGeneratorConfigValid(t *testing.T) {
	require.NoError(t, DefaultGeneratorConfig().Validate())
}

func TestGeneratorConfigWindow(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	start, end, err := cfg.Window()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestGeneratorConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GeneratorConfig)
	}{
		{"zero accounts", func(c *GeneratorConfig) { c.Accounts = 0 }},
		{"negative accounts", func(c *GeneratorConfig) { c.Accounts = -5 }},
		{"bad start month", func(c *GeneratorConfig) { c.StartMonth = "January 2021" }},
		{"inverted window", func(c *GeneratorConfig) { c.StartMonth = "2026-01" }},
		{"churn rate 1", func(c *GeneratorConfig) { c.AnnualChurnRate = 1 }},
		{"empty brands", func(c *GeneratorConfig) { c.Brands = nil }},
		{"empty opcos", func(c *GeneratorConfig) { c.Opcos = nil }},
		{"broken signal params", func(c *GeneratorConfig) { c.Signal.TrendTrough = 0.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGeneratorConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
