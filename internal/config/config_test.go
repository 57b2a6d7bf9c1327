package config_test

import (
	"os"
	"testing"

	"github.com/fireminder/fireminder/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := config.Config{
		Addr:     ":8080",
		DBPath:   "test.db",
		LogLevel: "INFO",
	}

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := config.Config{
		Addr:     "",
		DBPath:   "test.db",
		LogLevel: "INFO",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := config.Config{
		Addr:     ":8080",
		DBPath:   "",
		LogLevel: "INFO",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("ADDR")
	os.Unsetenv("DB_PATH")
	os.Unsetenv("LOG_LEVEL")

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:fireminder.db", cfg.DBPath)
	assert.Equal(t, "INFO", cfg.LogLevel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg := config.Load()

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}
