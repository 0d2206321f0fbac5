package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "teleforge", cfg.AppName)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, 10, cfg.DBMaxOpenConns)
	assert.Equal(t, 5, cfg.DBMaxIdleConns)
}

func TestLoadPoolSizesFromEnv(t *testing.T) {
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "25")
	t.Setenv("DATABASE_MAX_IDLE_CONNS", "8")

	cfg := Load()
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.Equal(t, 8, cfg.DBMaxIdleConns)
}

func TestLoadPoolSizeFallsBackOnGarbage(t *testing.T) {
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "plenty")

	cfg := Load()
	assert.Equal(t, 10, cfg.DBMaxOpenConns)
}
