package log4g

import (
	"log/syslog"
)

// SyslogAppender forwards events to the local or remote syslog daemon,
// mapping each event's level to a syslog priority via Level.SyslogPriority().
type SyslogAppender struct {
	appenderBase
	writer *syslog.Writer
	tag    string
	net    string
	addr   string
}

// NewSyslogAppender dials a syslog daemon. network/addr follow
// net.Dial conventions ("", "" for the local syslog socket, or
// "udp"/"tcp" with a host:port for a remote collector).
func NewSyslogAppender(network, addr, tag string) (*SyslogAppender, error) {
	w, err := syslog.Dial(network, addr, syslog.LOG_INFO|syslog.LOG_USER, tag)
	if err != nil {
		return nil, err
	}
	return &SyslogAppender{
		appenderBase: newAppenderBase("Syslog", true),
		writer:       w,
		tag:          tag,
		net:          network,
		addr:         addr,
	}, nil
}

// ActivateOptions implements Appender.
func (s *SyslogAppender) ActivateOptions() {
	if s.layout != nil {
		s.layout.ActivateOptions()
	}
}

// DoAppend implements Appender.
func (s *SyslogAppender) DoAppend(event *LoggingEvent) {
	s.doAppend(event, func(event *LoggingEvent) {
		msg := string(s.layout.Format(event))
		if err := s.writeAtPriority(event.Level.SyslogPriority(), msg); err != nil {
			s.errorHandler.Error(event, "syslog write failed: %v", err)
		}
	})
}

func (s *SyslogAppender) writeAtPriority(p syslog.Priority, msg string) error {
	switch p {
	case syslog.LOG_DEBUG:
		return s.writer.Debug(msg)
	case syslog.LOG_INFO:
		return s.writer.Info(msg)
	case syslog.LOG_WARNING:
		return s.writer.Warning(msg)
	case syslog.LOG_ERR:
		return s.writer.Err(msg)
	case syslog.LOG_EMERG:
		return s.writer.Emerg(msg)
	default:
		return s.writer.Notice(msg)
	}
}

// Close implements Appender; idempotent.
func (s *SyslogAppender) Close() {
	if !s.markClosed() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writer.Close()
}
