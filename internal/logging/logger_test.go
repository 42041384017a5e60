package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriterRenamesError(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, slog.LevelInfo, Text)
	log.Warn("walk stopped", "error", errors.New("step limit"))
	assert.Contains(t, buf.String(), `err="step limit"`)
	assert.NotContains(t, buf.String(), "error=")
}

func TestNewWithWriterRoundsDurations(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, slog.LevelInfo, Text)
	log.Info("walk finished", "time", 1500*time.Millisecond+1234*time.Nanosecond)
	assert.Contains(t, buf.String(), "time=1.500001s")
}

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, slog.LevelInfo, JSON)
	log.Info("photon escaped", "steps", 57, "error", errors.New("none"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "photon escaped", line["msg"])
	assert.Equal(t, 57.0, line["steps"])
	assert.Equal(t, "none", line["err"])
}

func TestNewWithWriterLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, Level(false), Text)
	log.Debug("step", "n", 1)
	assert.Empty(t, buf.String())

	log = NewWithWriter(&buf, Level(true), Text)
	log.Debug("step", "n", 1)
	assert.Contains(t, buf.String(), "n=1")
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, JSON, ParseFormat("json"))
	assert.Equal(t, JSON, ParseFormat(" JSON "))
	assert.Equal(t, Text, ParseFormat(""))
	assert.Equal(t, Text, ParseFormat("logfmt"))
}

func TestLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, Level(true))
	assert.Equal(t, slog.LevelInfo, Level(false))
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
	assert.NotPanics(t, func() { log.Error("ignored", "error", errors.New("x")) })
}
