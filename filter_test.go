package log4g

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func eventAt(level *Level) *LoggingEvent {
	return newLoggingEvent("test", level, "", "msg", CallerInfo{})
}

func TestFilterChainLeftmostNonNeutral(t *testing.T) {
	rangeFilter := NewLevelRangeFilter(LevelInfo, LevelWarn)
	denyAll := &DenyAllFilter{}
	rangeFilter.setNext(denyAll)

	assert.Equal(t, Accept, evaluateChain(rangeFilter, eventAt(LevelWarn)))
	assert.Equal(t, Deny, evaluateChain(rangeFilter, eventAt(LevelError)))
	assert.Equal(t, Deny, evaluateChain(rangeFilter, eventAt(LevelDebug)))
}

func TestEmptyChainDefaultsAccept(t *testing.T) {
	assert.Equal(t, Accept, evaluateChain(nil, eventAt(LevelInfo)))
}

func TestThresholdFilter(t *testing.T) {
	f := NewThresholdFilter(LevelWarn)
	assert.Equal(t, Deny, f.Decide(eventAt(LevelInfo)))
	assert.Equal(t, Neutral, f.Decide(eventAt(LevelWarn)))
	assert.Equal(t, Neutral, f.Decide(eventAt(LevelError)))
}

func TestMarkerFilter(t *testing.T) {
	f := NewMarkerFilter("SQL")
	matching := newLoggingEvent("test", LevelDebug, "sql", "msg", CallerInfo{})
	other := newLoggingEvent("test", LevelDebug, "api", "msg", CallerInfo{})

	assert.Equal(t, Accept, f.Decide(matching))
	assert.Equal(t, Neutral, f.Decide(other))
}

func TestBurstFilterThrottles(t *testing.T) {
	f := NewBurstFilter(LevelWarn, 0, 2)
	event := eventAt(LevelWarn)

	assert.Equal(t, Accept, f.Decide(event))
	assert.Equal(t, Accept, f.Decide(event))
	assert.Equal(t, Deny, f.Decide(event))
}

func TestBurstFilterIgnoresBelowLevel(t *testing.T) {
	f := NewBurstFilter(LevelWarn, 0, 0)
	assert.Equal(t, Neutral, f.Decide(eventAt(LevelInfo)))
}
