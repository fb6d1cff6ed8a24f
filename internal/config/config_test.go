package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, Finalize(cfg))

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "data/books.json", cfg.Storage.BooksPath)
	assert.Equal(t, "data/messages.json", cfg.Storage.MessagesPath)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
}

func TestFinalize(t *testing.T) {
	t.Run("injects observability defaults", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Observability = nil
		cfg.Primary.Env = "production"

		require.NoError(t, Finalize(cfg))
		require.NotNil(t, cfg.Observability)
		assert.Equal(t, "production", cfg.Observability.Environment)
		assert.True(t, cfg.Observability.IsProduction())
	})

	t.Run("rejects missing storage path", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Storage.BooksPath = ""
		assert.Error(t, Finalize(cfg))
	})

	t.Run("rejects unknown log level", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Observability.Logging.Level = "verbose"
		assert.ErrorContains(t, Finalize(cfg), "invalid logging level")
	})
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("BOOKBOARD_PRIMARY__ENV", "staging")
	t.Setenv("BOOKBOARD_SERVER__PORT", "8080")
	t.Setenv("BOOKBOARD_SERVER__READ_TIMEOUT", "10")
	t.Setenv("BOOKBOARD_STORAGE__BOOKS_PATH", "/tmp/books.json")
	t.Setenv("BOOKBOARD_OBSERVABILITY__LOGGING__LEVEL", "debug")
	t.Setenv("BOOKBOARD_OBSERVABILITY__HEALTH_CHECKS__TIMEOUT", "2s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, 30, cfg.Server.WriteTimeout)
	assert.Equal(t, "/tmp/books.json", cfg.Storage.BooksPath)
	assert.Equal(t, "data/messages.json", cfg.Storage.MessagesPath)
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
	assert.Equal(t, 2*time.Second, cfg.Observability.HealthChecks.Timeout)
	assert.Equal(t, "staging", cfg.Observability.Environment)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	t.Setenv("BOOKBOARD_OBSERVABILITY__LOGGING__FORMAT", "xml")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "invalid logging format")
}

func TestGetLogLevel(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = ""

	cfg.Environment = "production"
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg.Environment = "development"
	assert.Equal(t, "debug", cfg.GetLogLevel())
}
