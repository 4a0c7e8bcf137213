package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf)

	l.Info("loaded %d rows", 3)
	l.Warn("careful")
	l.Error("failed: %v", "disk")
	l.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "loaded 3 rows")
	assert.Contains(t, out, "careful")
	assert.Contains(t, out, "failed: disk")
	assert.NotContains(t, out, "hidden")

	l.SetDebug(true)
	l.Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}
