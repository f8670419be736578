package msg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMessages = `
board:
  created: Board created successfully
  error:
    delete: "Failed to delete board {0}: {1}"
reconcile:
  done: "Swept {0}"
`

func loadSample(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "messages.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleMessages), 0o600))
	require.NoError(t, Load(path))
}

func TestGetMessageNestedKeys(t *testing.T) {
	loadSample(t)

	assert.Equal(t, "Board created successfully", GetMessage("board.created"))
	assert.Equal(t, "Failed to delete board b-1: boom", GetMessage("board.error.delete", "b-1", errors.New("boom")))
}

func TestGetMessageRendersStructsAsJSON(t *testing.T) {
	loadSample(t)

	got := GetMessage("reconcile.done", struct {
		Tasks int `json:"tasks"`
	}{Tasks: 2})

	assert.Equal(t, `Swept {"tasks":2}`, got)
}

func TestGetMessageHandlesNilAndStringers(t *testing.T) {
	loadSample(t)

	assert.Equal(t, "Swept ", GetMessage("reconcile.done", nil))
	assert.Equal(t, "Swept 1.5s", GetMessage("reconcile.done", 1500*time.Millisecond))
}

func TestGetMessageUnknownKey(t *testing.T) {
	loadSample(t)

	assert.Equal(t, "Message not found: board.missing", GetMessage("board.missing"))
}
