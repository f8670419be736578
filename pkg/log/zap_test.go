package log

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	build(zapcore.AddSync(buf))
	t.Cleanup(func() {
		level.SetLevel(zap.InfoLevel)
		build(os.Stdout)
	})
	return buf
}

func TestInfoWritesJSONWithTimestampKey(t *testing.T) {
	buf := captureOutput(t)

	Info("board created", zap.String("board_id", "b-1"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "board created", entry["msg"])
	assert.Equal(t, "b-1", entry["board_id"])
	assert.Equal(t, "info", entry["level"])
	assert.Contains(t, entry, "@timestamp")
}

func TestSetLevelFiltersDebug(t *testing.T) {
	buf := captureOutput(t)

	Debug("hidden")
	assert.Zero(t, buf.Len())

	SetLevel("debug")
	Debugf("visible %d", 1)
	assert.Contains(t, buf.String(), "visible 1")
}

func TestSetLevelIgnoresUnknownName(t *testing.T) {
	buf := captureOutput(t)

	SetLevel("loud")

	assert.Equal(t, zap.InfoLevel, level.Level())
	assert.Contains(t, buf.String(), "unknown log level")
}
