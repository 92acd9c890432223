package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func reset() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer reset()

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	Debug("hidden %s", "message")
	assert.Empty(t, buf.String(), "debug output without verbose mode")

	SetVerbose(true)
	Debug("shown %s", "message")
	assert.Equal(t, "[DEBUG] shown message\n", buf.String())
}

func TestWarn_AlwaysShown(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Warn("skipped %d files", 3)
	assert.Equal(t, "[WARN] skipped 3 files\n", buf.String())
}
