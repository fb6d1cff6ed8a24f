package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/deppfellow/bookboard/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerJSON(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Environment = "test"
	cfg.Logging.Level = "warn"

	var buf bytes.Buffer
	log := newLogger(&buf, cfg, NewLoggerService(cfg))

	log.Info().Msg("dropped")
	log.Warn().Str("book_id", "1").Msg("kept")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, config.ServiceName, entry["service"])
	assert.Equal(t, "test", entry["environment"])
	assert.Equal(t, "1", entry["book_id"])
}

func TestLoggerServiceWithoutLicenseKey(t *testing.T) {
	service := NewLoggerService(config.DefaultObservabilityConfig())
	assert.Nil(t, service.GetApplication())

	var nilService *LoggerService
	assert.Nil(t, nilService.GetApplication())
	assert.NotPanics(t, func() { nilService.Shutdown(0) })
}
