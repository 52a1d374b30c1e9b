package log4g

import (
	"fmt"
	"os"
	"sync"
)

// ErrorHandler receives appender-internal failures so they never
// propagate to the caller of Logger.log.
type ErrorHandler interface {
	Error(event *LoggingEvent, format string, args ...interface{})
	SetLogger(l *Logger)
	SetAppender(a Appender)
	SetBackupAppender(a Appender)
}

// OnlyOnceErrorHandler is the default policy: the first call emits to
// stderr and sets a seen flag; every later call is silently suppressed,
// preventing a failing appender from flooding the process.
type OnlyOnceErrorHandler struct {
	mu   sync.Mutex
	seen bool
	out  *os.File
}

// NewOnlyOnceErrorHandler creates the default error handler, writing to
// process stderr.
func NewOnlyOnceErrorHandler() *OnlyOnceErrorHandler {
	return &OnlyOnceErrorHandler{out: os.Stderr}
}

// Error implements ErrorHandler.
func (h *OnlyOnceErrorHandler) Error(event *LoggingEvent, format string, args ...interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.seen {
		return
	}
	h.seen = true
	msg := fmt.Sprintf(format, args...)
	if event != nil {
		fmt.Fprintf(h.out, "log4g: %s (logger=%s)\n", msg, event.LoggerName)
	} else {
		fmt.Fprintf(h.out, "log4g: %s\n", msg)
	}
}

// SetLogger is a no-op for the default policy; richer handlers may use
// it to report the offending logger.
func (h *OnlyOnceErrorHandler) SetLogger(*Logger) {}

// SetAppender is a no-op for the default policy.
func (h *OnlyOnceErrorHandler) SetAppender(Appender) {}

// SetBackupAppender is a no-op for the default policy.
func (h *OnlyOnceErrorHandler) SetBackupAppender(Appender) {}
