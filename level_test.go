package log4g

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelRoundTrip(t *testing.T) {
	for _, lvl := range []*Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal} {
		assert.Same(t, lvl, ParseLevel(lvl.String(), nil))
		assert.Same(t, lvl, LevelFromRank(lvl.Rank(), nil))
	}
}

func TestLevelParseCaseInsensitive(t *testing.T) {
	assert.Same(t, LevelWarn, ParseLevel("warn", nil))
	assert.Same(t, LevelWarn, ParseLevel("WARN", nil))
	assert.Same(t, LevelWarn, ParseLevel("  Warn  ", nil))
}

func TestLevelParseFallback(t *testing.T) {
	assert.Same(t, LevelInfo, ParseLevel("nonsense", LevelInfo))
}

func TestLevelMonotoneEnablement(t *testing.T) {
	assert.True(t, LevelInfo.IsGreaterOrEqual(LevelInfo))
	assert.True(t, LevelWarn.IsGreaterOrEqual(LevelInfo))
	assert.False(t, LevelDebug.IsGreaterOrEqual(LevelInfo))
}
