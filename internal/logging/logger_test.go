package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/finadvisor/finadvisor/internal/calculation"
	"github.com/finadvisor/finadvisor/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ calculation.Logger = CalculationLogger{}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.LoggingConfig{Level: "info", Format: "json"}, &buf)

	log.Debug().Msg("hidden")
	log.Info().Str("route", "/healthz").Msg("served")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "served", entry["message"])
	assert.Equal(t, "/healthz", entry["route"])
	assert.Contains(t, entry, "time")
}

func TestNewConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.LoggingConfig{Level: "debug"}, &buf)
	log.Debug().Msg("plain text")

	assert.Contains(t, buf.String(), "plain text")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestCalculationLogger(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter(config.LoggingConfig{Level: "debug", Format: "json"}, &buf)

	engine := calculation.NewEngine()
	engine.SetLogger(NewCalculationLogger(base))
	engine.Logger.Warnf("cache get failed: %v", "timeout")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "calculation", entry["component"])
	assert.Equal(t, "cache get failed: timeout", entry["message"])
}
