package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}

	for value, level := range tests {
		assert.Equal(t, level, ParseLevel(value), value)
	}
}

func TestSetup(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	Setup("warn")

	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelWarn))
	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelInfo))
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer

	New(&buf, "info", FormatJSON).Info("Workflow executed", "workflow_id", "wf-1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Workflow executed", entry["msg"])
	assert.Equal(t, "wf-1", entry["workflow_id"])
}

func TestNew_TextByDefault(t *testing.T) {
	var buf bytes.Buffer

	New(&buf, "debug").Debug("Node completed", "node_id", "2")

	assert.Contains(t, buf.String(), "msg=\"Node completed\"")
	assert.Contains(t, buf.String(), "node_id=2")
}
