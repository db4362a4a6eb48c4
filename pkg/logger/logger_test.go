package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{Level: WarnLevel, Output: &buf})

	log.Info("hidden")
	log.Warn("shown", "doctor_id", 7)
	log.Error(errors.New("boom"), "failed", "op", "delete")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "doctor_id=7")
	assert.Contains(t, out, "boom")
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{Level: InfoLevel, Output: &buf}).WithFields(map[string]interface{}{"component": "ops"})

	log.Info("started")
	assert.Contains(t, buf.String(), "component=ops")
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "hms.log")

	log, closer, err := NewFileLogger(path, "not-a-level", false)
	require.NoError(t, err)
	log.Info("patient added", "patient_id", 1)
	log.Debug("below default level")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "patient added")
	assert.NotContains(t, string(data), "below default level")
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Info("nothing") })
}
