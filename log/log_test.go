package log

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
}

func TestLoggerSuppressesBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelWarn)

	logger.Debugf("hidden %d", 1)
	logger.Infof("also hidden")
	logger.Warnf("visible warning")
	logger.Errorf("visible error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible warning")
	assert.Contains(t, out, "visible error")
}

func TestLoggerFormatsMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelDebug)

	logger.Infof("count=%d", 3)

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "count=3")
}

func TestWithScopesPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelDebug).With("validator").With("frame")

	logger.Infof("hello")

	out := buf.String()
	assert.True(t, strings.Contains(out, "[validator.frame]"))
}

func TestDefaultWritesToStderr(t *testing.T) {
	logger := Default()
	assert.NotNil(t, logger)
	assert.Equal(t, os.Stderr, logger.out)
}
