package log4g

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// TriggeringPolicy decides when a RollingFileAppender should roll its
// current file over to a backup.
type TriggeringPolicy interface {
	ShouldTrigger(file *os.File) bool
}

// SizeTriggeringPolicy rolls once the active file reaches maxSize bytes.
type SizeTriggeringPolicy struct {
	maxSize int64
}

// NewSizeTriggeringPolicy creates a size-based triggering policy.
func NewSizeTriggeringPolicy(maxBytes int64) *SizeTriggeringPolicy {
	return &SizeTriggeringPolicy{maxSize: maxBytes}
}

// ShouldTrigger implements TriggeringPolicy.
func (p *SizeTriggeringPolicy) ShouldTrigger(file *os.File) bool {
	if file == nil || p.maxSize <= 0 {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Size() >= p.maxSize
}

// TimeTriggeringPolicy rolls once interval has elapsed since the last roll.
type TimeTriggeringPolicy struct {
	interval time.Duration
	lastRoll time.Time
}

// NewTimeTriggeringPolicy creates a time-based triggering policy.
func NewTimeTriggeringPolicy(interval time.Duration) *TimeTriggeringPolicy {
	return &TimeTriggeringPolicy{interval: interval, lastRoll: time.Now()}
}

// ShouldTrigger implements TriggeringPolicy.
func (p *TimeTriggeringPolicy) ShouldTrigger(file *os.File) bool {
	if time.Since(p.lastRoll) < p.interval {
		return false
	}
	p.lastRoll = time.Now()
	return true
}

// CompositeTriggeringPolicy rolls if any of its policies trigger.
type CompositeTriggeringPolicy struct {
	policies []TriggeringPolicy
}

// NewCompositeTriggeringPolicy combines triggering policies with OR semantics.
func NewCompositeTriggeringPolicy(policies ...TriggeringPolicy) *CompositeTriggeringPolicy {
	return &CompositeTriggeringPolicy{policies: policies}
}

// ShouldTrigger implements TriggeringPolicy.
func (p *CompositeTriggeringPolicy) ShouldTrigger(file *os.File) bool {
	for _, policy := range p.policies {
		if policy.ShouldTrigger(file) {
			return true
		}
	}
	return false
}

// RollingFileAppender writes to filename and, when a triggering policy
// fires, shifts backup.(n-1) to backup.n down to backup.1 before reopening
// filename fresh. Indexes never exceed MaxBackupIndex: the oldest backup
// is overwritten by the shift rather than accumulating forever.
type RollingFileAppender struct {
	appenderBase
	filename       string
	file           *os.File
	policy         TriggeringPolicy
	maxBackupIndex int
}

// NewRollingFileAppender creates a rolling file appender with a default
// 1-backup retention; call SetMaxBackupIndex and SetTriggeringPolicy (or
// one of the With* helpers) to configure rollover behavior.
func NewRollingFileAppender(filename string) *RollingFileAppender {
	return &RollingFileAppender{
		appenderBase:   newAppenderBase("RollingFile", true),
		filename:       filename,
		maxBackupIndex: 1,
	}
}

// SetMaxBackupIndex sets how many numbered backups are retained.
func (r *RollingFileAppender) SetMaxBackupIndex(n int) { r.maxBackupIndex = n }

// MaxBackupIndex returns the configured backup retention count.
func (r *RollingFileAppender) MaxBackupIndex() int { return r.maxBackupIndex }

// SetTriggeringPolicy sets the policy deciding when to roll over.
func (r *RollingFileAppender) SetTriggeringPolicy(p TriggeringPolicy) { r.policy = p }

// WithMaxSize is a fluent helper installing a SizeTriggeringPolicy.
func (r *RollingFileAppender) WithMaxSize(maxBytes int64) *RollingFileAppender {
	r.SetTriggeringPolicy(NewSizeTriggeringPolicy(maxBytes))
	return r
}

// WithMaxBackupIndex is a fluent helper setting the backup retention count.
func (r *RollingFileAppender) WithMaxBackupIndex(n int) *RollingFileAppender {
	r.SetMaxBackupIndex(n)
	return r
}

func (r *RollingFileAppender) open() error {
	if r.file != nil {
		return nil
	}
	if dir := filepath.Dir(r.filename); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	file, err := os.OpenFile(r.filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	r.file = file
	return nil
}

func (r *RollingFileAppender) backupName(index int) string {
	return fmt.Sprintf("%s.%d", r.filename, index)
}

// rollOver shifts backup.(maxBackupIndex-1) .. backup.1 up by one index,
// discarding whatever currently sits at backup.maxBackupIndex, then moves
// the active file to backup.1 and reopens filename.
func (r *RollingFileAppender) rollOver() error {
	if r.file != nil {
		r.file.Close()
		r.file = nil
	}

	if r.maxBackupIndex > 0 {
		oldest := r.backupName(r.maxBackupIndex)
		os.Remove(oldest)
		for i := r.maxBackupIndex - 1; i >= 1; i-- {
			from := r.backupName(i)
			to := r.backupName(i + 1)
			if _, err := os.Stat(from); err == nil {
				os.Rename(from, to)
			}
		}
		if _, err := os.Stat(r.filename); err == nil {
			if err := os.Rename(r.filename, r.backupName(1)); err != nil {
				return err
			}
		}
	}

	return r.open()
}

// ActivateOptions implements Appender.
func (r *RollingFileAppender) ActivateOptions() {
	if r.layout != nil {
		r.layout.ActivateOptions()
	}
	_ = r.open()
}

// DoAppend implements Appender.
func (r *RollingFileAppender) DoAppend(event *LoggingEvent) {
	r.doAppend(event, func(event *LoggingEvent) {
		if err := r.open(); err != nil {
			r.errorHandler.Error(event, "failed to open log file %s: %v", r.filename, err)
			return
		}
		if r.policy != nil && r.policy.ShouldTrigger(r.file) {
			if err := r.rollOver(); err != nil {
				r.errorHandler.Error(event, "rollover of %s failed: %v", r.filename, err)
				return
			}
		}
		data := r.layout.Format(event)
		if _, err := r.file.Write(data); err != nil {
			r.errorHandler.Error(event, "file write failed: %v", err)
		}
	})
}

// Close implements Appender; idempotent.
func (r *RollingFileAppender) Close() {
	if !r.markClosed() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file != nil {
		r.file.Close()
		r.file = nil
	}
}
