package log4g

import (
	"strings"
	"sync"
	"time"
)

// FilterDecision is the outcome of one filter's evaluation of an event.
type FilterDecision int

const (
	// Accept terminates the chain and causes the event to be appended.
	Accept FilterDecision = iota
	// Deny terminates the chain and causes the event to be dropped.
	Deny
	// Neutral defers to the next filter in the chain; if it is the last
	// link, the chain as a whole accepts.
	Neutral
)

// Filter is one node in an appender's singly-linked filter chain. A
// filter owns its successor (set via setNext); clearing the chain head
// releases the whole chain. ActivateOptions finalizes any configuration
// after every property has been set, mirroring the Appender/Layout
// contract.
type Filter interface {
	Decide(event *LoggingEvent) FilterDecision
	ActivateOptions()
	next() Filter
	setNext(f Filter)
}

// filterLink is embedded by concrete filters to provide chain linkage
// without requiring every filter author to reimplement it.
type filterLink struct {
	succ Filter
}

func (f *filterLink) next() Filter     { return f.succ }
func (f *filterLink) setNext(n Filter) { f.succ = n }

// evaluateChain walks the chain starting at head and returns the
// leftmost non-neutral decision, or Accept if the chain is empty or
// every filter returns Neutral.
func evaluateChain(head Filter, event *LoggingEvent) FilterDecision {
	for f := head; f != nil; f = f.next() {
		switch f.Decide(event) {
		case Accept:
			return Accept
		case Deny:
			return Deny
		}
	}
	return Accept
}

// LevelRangeFilter accepts (or denies, if AcceptOnMatch is false) events
// whose level falls within [Min, Max] inclusive; events outside the range
// pass through neutrally so later filters (or the chain default) decide.
// Max == nil means no upper bound.
type LevelRangeFilter struct {
	filterLink
	Min           *Level
	Max           *Level
	AcceptOnMatch bool
}

// NewLevelRangeFilter creates a range filter accepting [min, max].
func NewLevelRangeFilter(min, max *Level) *LevelRangeFilter {
	return &LevelRangeFilter{Min: min, Max: max, AcceptOnMatch: true}
}

// WithAcceptOnMatch sets whether a match yields Accept (true) or Deny.
func (f *LevelRangeFilter) WithAcceptOnMatch(accept bool) *LevelRangeFilter {
	f.AcceptOnMatch = accept
	return f
}

// Decide implements Filter.
func (f *LevelRangeFilter) Decide(event *LoggingEvent) FilterDecision {
	if f.Min != nil && event.Level.Rank() < f.Min.Rank() {
		return Neutral
	}
	if f.Max != nil && event.Level.Rank() > f.Max.Rank() {
		return Neutral
	}
	if f.AcceptOnMatch {
		return Accept
	}
	return Deny
}

// ActivateOptions implements Filter.
func (f *LevelRangeFilter) ActivateOptions() {}

// ThresholdFilter denies events below Min and is neutral otherwise. It is
// the filter an appender's own Threshold property is equivalent to, but
// exposed separately so it can be composed explicitly in a chain.
type ThresholdFilter struct {
	filterLink
	Min *Level
}

// NewThresholdFilter creates a filter that denies events below min.
func NewThresholdFilter(min *Level) *ThresholdFilter {
	return &ThresholdFilter{Min: min}
}

// Decide implements Filter.
func (f *ThresholdFilter) Decide(event *LoggingEvent) FilterDecision {
	if event.Level.Rank() < f.Min.Rank() {
		return Deny
	}
	return Neutral
}

// ActivateOptions implements Filter.
func (f *ThresholdFilter) ActivateOptions() {}

// DenyAllFilter unconditionally denies; conventionally placed last in a
// chain to close off anything not explicitly accepted upstream.
type DenyAllFilter struct{ filterLink }

// Decide implements Filter.
func (f *DenyAllFilter) Decide(*LoggingEvent) FilterDecision { return Deny }

// ActivateOptions implements Filter.
func (f *DenyAllFilter) ActivateOptions() {}

// MarkerFilter matches an event's Marker field, case-insensitively.
type MarkerFilter struct {
	filterLink
	Marker        string
	AcceptOnMatch bool
}

// NewMarkerFilter creates a filter matching on marker name.
func NewMarkerFilter(marker string) *MarkerFilter {
	return &MarkerFilter{Marker: marker, AcceptOnMatch: true}
}

// Decide implements Filter.
func (f *MarkerFilter) Decide(event *LoggingEvent) FilterDecision {
	matches := strings.EqualFold(event.Marker, f.Marker)
	switch {
	case matches && f.AcceptOnMatch:
		return Accept
	case matches && !f.AcceptOnMatch:
		return Deny
	default:
		return Neutral
	}
}

// ActivateOptions implements Filter.
func (f *MarkerFilter) ActivateOptions() {}

// BurstFilter throttles events at or above Level to at most Rate per
// second with a burst allowance of MaxBurst, using a token bucket.
// Events below Level pass through neutrally.
type BurstFilter struct {
	filterLink
	Level    *Level
	Rate     float64
	MaxBurst int

	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
}

// NewBurstFilter creates a rate-limiting filter for events at or above
// level.
func NewBurstFilter(level *Level, rate float64, maxBurst int) *BurstFilter {
	return &BurstFilter{
		Level:      level,
		Rate:       rate,
		MaxBurst:   maxBurst,
		tokens:     float64(maxBurst),
		lastRefill: time.Now(),
	}
}

// Decide implements Filter.
func (f *BurstFilter) Decide(event *LoggingEvent) FilterDecision {
	if event.Level.Rank() < f.Level.Rank() {
		return Neutral
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(f.lastRefill).Seconds()
	f.tokens += elapsed * f.Rate
	if f.tokens > float64(f.MaxBurst) {
		f.tokens = float64(f.MaxBurst)
	}
	f.lastRefill = now

	if f.tokens >= 1 {
		f.tokens--
		return Accept
	}
	return Deny
}

// ActivateOptions implements Filter.
func (f *BurstFilter) ActivateOptions() {}
