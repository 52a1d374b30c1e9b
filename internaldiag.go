package log4g

import (
	"sync"

	"go.uber.org/zap"
)

// internal is the framework's own diagnostic channel — distinct from
// anything an application logs through a Logger. Problems in the
// logging system itself (a misconfigured appender, a module that
// failed to load) go here instead of recursing back through the
// hierarchy they're reporting on.
var (
	internalMu  sync.RWMutex
	internalLog *zap.SugaredLogger
)

func init() {
	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	internalLog = logger.Sugar()
}

// SetInternalLogger replaces the framework's own diagnostic logger,
// letting an embedding application route log4g's self-diagnostics
// through its own zap pipeline instead of the default production one.
func SetInternalLogger(logger *zap.Logger) {
	internalMu.Lock()
	defer internalMu.Unlock()
	internalLog = logger.Sugar()
}

func internalWarn(format string, args ...interface{}) {
	internalMu.RLock()
	defer internalMu.RUnlock()
	internalLog.Warnf(format, args...)
}

func internalError(format string, args ...interface{}) {
	internalMu.RLock()
	defer internalMu.RUnlock()
	internalLog.Errorf(format, args...)
}
