package log4g

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternLayoutBasic(t *testing.T) {
	layout := NewPatternLayout("%p - %m%n")
	layout.ActivateOptions()

	event := newLoggingEvent("app.module", LevelInfo, "", "hello", CallerInfo{})
	out := string(layout.Format(event))

	assert.Equal(t, "INFO - hello\n", out)
}

func TestPatternLayoutLoggerComponents(t *testing.T) {
	layout := NewPatternLayout("%c{2}")
	layout.ActivateOptions()

	event := newLoggingEvent("com.example.app.module", LevelInfo, "", "hello", CallerInfo{})
	out := string(layout.Format(event))

	assert.Equal(t, "app.module", out)
}

func TestPatternLayoutWidthAndJustification(t *testing.T) {
	layout := NewPatternLayout("%-6p|")
	layout.ActivateOptions()

	event := newLoggingEvent("app", LevelWarn, "", "m", CallerInfo{})
	out := string(layout.Format(event))

	assert.Equal(t, "WARN  |", out)
}

func TestTextLayoutContainsLevelAndMessage(t *testing.T) {
	layout := NewTextLayout()
	layout.ActivateOptions()

	event := newLoggingEvent("root", LevelDebug, "", "hello", CallerInfo{})
	out := string(layout.Format(event))

	require.True(t, strings.Contains(out, "hello"))
	require.True(t, strings.Contains(out, "DEBUG"))
}

func TestJSONLayoutContainsLevelAndMessage(t *testing.T) {
	layout := NewJSONLayout()
	layout.ActivateOptions()

	event := newLoggingEvent("root", LevelError, "boom", "incident", CallerInfo{})
	out := string(layout.Format(event))

	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"message":"incident"`)
}
