package log4g

import (
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// ManagedRollingAppender delegates file rotation to lumberjack instead of
// the hand-rolled shift algorithm in RollingFileAppender, trading the
// classic backup.N naming for lumberjack's timestamp-suffixed rotation
// and built-in compression/age pruning.
type ManagedRollingAppender struct {
	appenderBase
	writer *lumberjack.Logger
}

// NewManagedRollingAppender creates a lumberjack-backed rolling appender.
// maxSizeMB is the size at which a file is rotated, maxBackups is the
// number of old files to retain, maxAgeDays is the retention window, and
// compress gzips rotated files.
func NewManagedRollingAppender(filename string, maxSizeMB, maxBackups, maxAgeDays int, compress bool) *ManagedRollingAppender {
	return &ManagedRollingAppender{
		appenderBase: newAppenderBase("ManagedRollingFile", true),
		writer: &lumberjack.Logger{
			Filename:   filename,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   compress,
		},
	}
}

// ActivateOptions implements Appender.
func (m *ManagedRollingAppender) ActivateOptions() {
	if m.layout != nil {
		m.layout.ActivateOptions()
	}
}

// DoAppend implements Appender.
func (m *ManagedRollingAppender) DoAppend(event *LoggingEvent) {
	m.doAppend(event, func(event *LoggingEvent) {
		data := m.layout.Format(event)
		if _, err := m.writer.Write(data); err != nil {
			m.errorHandler.Error(event, "managed rolling write failed: %v", err)
		}
	})
}

// Rotate forces an immediate rollover, bypassing size-based triggering.
func (m *ManagedRollingAppender) Rotate() error {
	return m.writer.Rotate()
}

// Close implements Appender; idempotent.
func (m *ManagedRollingAppender) Close() {
	if !m.markClosed() {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writer.Close()
}
