package log4g

import "sync"

// Appender is the output sink contract. Concrete
// appenders (console, file, rolling file, syslog, async) implement this
// directly; appenderBase supplies the lock-and-filter-chain-and-closed-
// flag scaffolding they all share by composition (no base class, no
// vtable slot).
type Appender interface {
	Name() string
	SetName(name string)
	Layout() Layout
	SetLayout(l Layout)
	Threshold() *Level
	SetThreshold(l *Level)
	ErrorHandler() ErrorHandler
	SetErrorHandler(h ErrorHandler)
	AddFilter(f Filter)
	GetFilter() Filter
	ClearFilters()
	RequiresLayout() bool
	ActivateOptions()
	// DoAppend is the synchronized entry point every logger walk calls:
	// lock, closed check, threshold check, filter chain, then Append.
	DoAppend(event *LoggingEvent)
	Close()
}

// AppenderAttachable is implemented by appenders that forward to one or
// more nested appenders (e.g. AsyncAppender) instead of writing directly
// to a sink.
type AppenderAttachable interface {
	AddAppender(a Appender)
	RemoveAppender(a Appender)
	RemoveAppenderByName(name string)
	RemoveAllAppenders()
	GetAppender(name string) Appender
	GetAllAppenders() []Appender
	IsAttached(a Appender) bool
}

// appendFunc is the concrete write strategy a sink-backed appender
// supplies to appenderBase.doAppend after the lock, closed check,
// threshold check and filter chain have all passed.
type appendFunc func(event *LoggingEvent)

// appenderBase is the shared scaffold embedded by every sink-backed
// appender. It is not itself an Appender — concrete types embed it and
// provide their own Append/Close, calling into doAppend/markClosed.
type appenderBase struct {
	mu           sync.Mutex
	name         string
	layout       Layout
	filterHead   Filter
	filterTail   Filter
	threshold    *Level
	errorHandler ErrorHandler
	closed       bool
	requireLay   bool
}

func newAppenderBase(name string, requiresLayout bool) appenderBase {
	return appenderBase{
		name:         name,
		errorHandler: NewOnlyOnceErrorHandler(),
		requireLay:   requiresLayout,
	}
}

func (b *appenderBase) Name() string                   { return b.name }
func (b *appenderBase) SetName(name string)            { b.name = name }
func (b *appenderBase) Layout() Layout                 { return b.layout }
func (b *appenderBase) SetLayout(l Layout)             { b.layout = l }
func (b *appenderBase) Threshold() *Level              { return b.threshold }
func (b *appenderBase) SetThreshold(l *Level)          { b.threshold = l }
func (b *appenderBase) ErrorHandler() ErrorHandler     { return b.errorHandler }
func (b *appenderBase) SetErrorHandler(h ErrorHandler) { b.errorHandler = h }
func (b *appenderBase) RequiresLayout() bool           { return b.requireLay }

// AddFilter appends f to the end of the chain.
func (b *appenderBase) AddFilter(f Filter) {
	if b.filterHead == nil {
		b.filterHead = f
		b.filterTail = f
		return
	}
	b.filterTail.setNext(f)
	b.filterTail = f
}

// GetFilter returns the head of the chain.
func (b *appenderBase) GetFilter() Filter { return b.filterHead }

// ClearFilters releases the whole chain.
func (b *appenderBase) ClearFilters() {
	b.filterHead = nil
	b.filterTail = nil
}

// checkThresholdAndFilters evaluates, in order, the appender's own
// threshold and then its filter chain. Called with the lock held.
func (b *appenderBase) checkThresholdAndFilters(event *LoggingEvent) FilterDecision {
	if b.threshold != nil && event.Level.Rank() < b.threshold.Rank() {
		return Deny
	}
	return evaluateChain(b.filterHead, event)
}

// doAppend implements the synchronized §4.3 protocol: lock, closed
// check, threshold+filter evaluation, then the concrete write function.
// Errors inside write are the write function's own responsibility to
// route to the error handler — doAppend never lets them reach the
// caller of Logger.log.
func (b *appenderBase) doAppend(event *LoggingEvent, write appendFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		b.errorHandler.Error(event, "attempted to append to a closed appender")
		return
	}
	if b.checkThresholdAndFilters(event) == Deny {
		return
	}
	if b.requireLay && b.layout == nil {
		b.errorHandler.Error(event, "appender requires a layout but none is set")
		return
	}
	write(event)
}

// markClosed sets the closed flag under the lock, idempotently, and
// reports whether this call is the one that transitioned it.
func (b *appenderBase) markClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return false
	}
	b.closed = true
	return true
}
