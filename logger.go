package log4g

import (
	"runtime"
	"sync"
)

// appenderAttachment implements AppenderAttachable by holding an ordered
// list of appenders, de-duplicated by identity (adding the same appender
// twice is a no-op). Both Logger and AsyncAppender's
// delegate slot could use this, but only Logger does today; kept as its
// own type rather than inlined into Logger so the attach/detach logic has
// one tested home.
type appenderAttachment struct {
	mu        sync.RWMutex
	appenders []Appender
}

func (a *appenderAttachment) AddAppender(appender Appender) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, existing := range a.appenders {
		if existing == appender {
			return
		}
	}
	a.appenders = append(a.appenders, appender)
}

func (a *appenderAttachment) RemoveAppender(appender Appender) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, existing := range a.appenders {
		if existing == appender {
			a.appenders = append(a.appenders[:i], a.appenders[i+1:]...)
			return
		}
	}
}

func (a *appenderAttachment) RemoveAppenderByName(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, existing := range a.appenders {
		if existing.Name() == name {
			a.appenders = append(a.appenders[:i], a.appenders[i+1:]...)
			return
		}
	}
}

func (a *appenderAttachment) RemoveAllAppenders() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, existing := range a.appenders {
		existing.Close()
	}
	a.appenders = nil
}

func (a *appenderAttachment) GetAppender(name string) Appender {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, existing := range a.appenders {
		if existing.Name() == name {
			return existing
		}
	}
	return nil
}

func (a *appenderAttachment) GetAllAppenders() []Appender {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]Appender, len(a.appenders))
	copy(out, a.appenders)
	return out
}

func (a *appenderAttachment) IsAttached(appender Appender) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, existing := range a.appenders {
		if existing == appender {
			return true
		}
	}
	return false
}

// Logger is one node in a dotted-name hierarchy. A Logger's effective
// level is its own level if set, else the nearest set ancestor level,
// walking up to the root. Log calls that pass the effective-level check
// are handed to callAppenders, which walks the additive chain from this
// logger up to the root (or until a non-additive logger is hit) invoking
// every appender attached along the way.
type Logger struct {
	appenderAttachment
	mu              sync.RWMutex
	name            string
	level           *Level
	parent          *Logger
	additive        bool
	includeLocation bool
	repository      *Hierarchy
	isRoot          bool
}

func newLogger(name string, repo *Hierarchy) *Logger {
	return &Logger{name: name, additive: true, repository: repo}
}

// Name returns the logger's dotted name.
func (l *Logger) Name() string { return l.name }

// Level returns the level explicitly set on this logger, or nil if it
// inherits from its parent.
func (l *Logger) Level() *Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// SetLevel sets this logger's own level. Passing nil makes it inherit
// from its parent again — except on the root, which has no parent to
// inherit from; a nil level there is rejected and the prior level kept.
func (l *Logger) SetLevel(level *Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level == nil && l.isRoot {
		internalWarn("rejected SetLevel(nil) on the root logger; root must always have a level")
		return
	}
	l.level = level
}

// Parent returns this logger's parent in the hierarchy, or nil for root.
func (l *Logger) Parent() *Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.parent
}

func (l *Logger) setParent(p *Logger) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.parent = p
}

// Additivity reports whether this logger's events also propagate to its
// ancestors' appenders.
func (l *Logger) Additivity() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.additive
}

// SetAdditivity controls whether this logger's events propagate to
// ancestor appenders.
func (l *Logger) SetAdditivity(additive bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.additive = additive
}

// SetIncludeLocation controls whether log calls pay the cost of caller
// location capture for this logger.
func (l *Logger) SetIncludeLocation(include bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.includeLocation = include
}

// EffectiveLevel walks this logger's parent chain, returning the nearest
// explicitly set level. The root logger always has one set, so this
// never returns nil for a logger attached to a Hierarchy.
func (l *Logger) EffectiveLevel() *Level {
	for node := l; node != nil; node = node.Parent() {
		if lv := node.Level(); lv != nil {
			return lv
		}
	}
	return LevelInfo
}

// IsEnabledFor reports whether level passes the repository threshold
// and this logger's effective level.
func (l *Logger) IsEnabledFor(level *Level) bool {
	if l.repository != nil && l.repository.IsDisabled(level) {
		return false
	}
	return level.IsGreaterOrEqual(l.EffectiveLevel())
}

func (l *Logger) includesLocation() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.includeLocation
}

// callAppenders walks from this logger up through its ancestors, in
// order, invoking every attached appender's DoAppend, stopping as soon
// as a non-additive logger has had its appenders invoked.
func (l *Logger) callAppenders(event *LoggingEvent) {
	calls := 0
	for node := l; node != nil; node = node.Parent() {
		for _, appender := range node.GetAllAppenders() {
			appender.DoAppend(event)
			calls++
		}
		if !node.Additivity() {
			break
		}
	}
	if calls == 0 && l.repository != nil {
		l.repository.emitNoAppenderWarning(l)
	}
}

func (l *Logger) log(level *Level, marker, format string, args ...interface{}) {
	if !l.IsEnabledFor(level) {
		return
	}
	var caller CallerInfo
	if l.includesLocation() {
		caller = getCaller(4)
	}
	event := newLoggingEvent(l.name, level, marker, formatMessage(format, args...), caller)
	l.callAppenders(event)
}

func (l *Logger) Trace(format string, args ...interface{}) { l.log(LevelTrace, "", format, args...) }
func (l *Logger) Debug(format string, args ...interface{}) { l.log(LevelDebug, "", format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.log(LevelInfo, "", format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.log(LevelWarn, "", format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.log(LevelError, "", format, args...) }
func (l *Logger) Fatal(format string, args ...interface{}) { l.log(LevelFatal, "", format, args...) }

// IsTraceEnabled and friends let callers skip expensive argument
// construction when a level won't be emitted.
func (l *Logger) IsTraceEnabled() bool { return l.IsEnabledFor(LevelTrace) }
func (l *Logger) IsDebugEnabled() bool { return l.IsEnabledFor(LevelDebug) }
func (l *Logger) IsInfoEnabled() bool  { return l.IsEnabledFor(LevelInfo) }
func (l *Logger) IsWarnEnabled() bool  { return l.IsEnabledFor(LevelWarn) }

// WithMarker returns a view of this logger that tags every event with
// marker.
func (l *Logger) WithMarker(marker string) *MarkerLogger {
	return &MarkerLogger{logger: l, marker: marker}
}

// MarkerLogger wraps a Logger, stamping every call with a fixed marker.
type MarkerLogger struct {
	logger *Logger
	marker string
}

func (m *MarkerLogger) Trace(format string, args ...interface{}) {
	m.logger.log(LevelTrace, m.marker, format, args...)
}
func (m *MarkerLogger) Debug(format string, args ...interface{}) {
	m.logger.log(LevelDebug, m.marker, format, args...)
}
func (m *MarkerLogger) Info(format string, args ...interface{}) {
	m.logger.log(LevelInfo, m.marker, format, args...)
}
func (m *MarkerLogger) Warn(format string, args ...interface{}) {
	m.logger.log(LevelWarn, m.marker, format, args...)
}
func (m *MarkerLogger) Error(format string, args ...interface{}) {
	m.logger.log(LevelError, m.marker, format, args...)
}
func (m *MarkerLogger) Fatal(format string, args ...interface{}) {
	m.logger.log(LevelFatal, m.marker, format, args...)
}

// WithFields returns a view of this logger that attaches fields to
// every event it emits.
func (l *Logger) WithFields(fields map[string]interface{}) *FieldLogger {
	return &FieldLogger{logger: l, fields: fields}
}

// FieldLogger wraps a Logger, attaching a fixed set of structured
// fields to every event.
type FieldLogger struct {
	logger *Logger
	fields map[string]interface{}
}

func (f *FieldLogger) log(level *Level, format string, args ...interface{}) {
	if !f.logger.IsEnabledFor(level) {
		return
	}
	var caller CallerInfo
	if f.logger.includesLocation() {
		caller = getCaller(5)
	}
	event := newLoggingEvent(f.logger.name, level, "", formatMessage(format, args...), caller)
	event.Fields = f.fields
	f.logger.callAppenders(event)
}

func (f *FieldLogger) Trace(format string, args ...interface{}) { f.log(LevelTrace, format, args...) }
func (f *FieldLogger) Debug(format string, args ...interface{}) { f.log(LevelDebug, format, args...) }
func (f *FieldLogger) Info(format string, args ...interface{})  { f.log(LevelInfo, format, args...) }
func (f *FieldLogger) Warn(format string, args ...interface{})  { f.log(LevelWarn, format, args...) }
func (f *FieldLogger) Error(format string, args ...interface{}) { f.log(LevelError, format, args...) }
func (f *FieldLogger) Fatal(format string, args ...interface{}) { f.log(LevelFatal, format, args...) }

// getCaller retrieves source location for the log call skip frames up
// the stack from itself.
func getCaller(skip int) CallerInfo {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return CallerInfo{}
	}
	fn := runtime.FuncForPC(pc)
	funcName := ""
	if fn != nil {
		funcName = fn.Name()
	}
	for i := len(file) - 1; i >= 0; i-- {
		if file[i] == '/' || file[i] == '\\' {
			file = file[i+1:]
			break
		}
	}
	return CallerInfo{File: file, Line: line, Function: funcName}
}
