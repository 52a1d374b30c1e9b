package log4g

// NullAppender discards every event after running it through the usual
// threshold/filter/layout checks, useful for benchmarking logger
// overhead in isolation from any sink I/O.
type NullAppender struct {
	appenderBase
}

// NewNullAppender creates a discard appender.
func NewNullAppender() *NullAppender {
	return &NullAppender{appenderBase: newAppenderBase("Null", false)}
}

// ActivateOptions implements Appender.
func (n *NullAppender) ActivateOptions() {}

// DoAppend implements Appender.
func (n *NullAppender) DoAppend(event *LoggingEvent) {
	n.doAppend(event, func(event *LoggingEvent) {
		if n.layout != nil {
			_ = n.layout.Format(event)
		}
	})
}

// Close implements Appender.
func (n *NullAppender) Close() { n.markClosed() }
