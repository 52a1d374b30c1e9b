package log4g

import (
	"io"
	"os"
)

// ConsoleAppender writes formatted events to stdout or stderr.
type ConsoleAppender struct {
	appenderBase
	writer io.Writer
	target string
}

// NewConsoleAppender creates a console appender writing to stdout. No
// layout is set; one must be supplied with SetLayout before events are
// written.
func NewConsoleAppender() *ConsoleAppender {
	return &ConsoleAppender{
		appenderBase: newAppenderBase("console", true),
		writer:       os.Stdout,
		target:       "stdout",
	}
}

// SetTarget switches the output stream ("stdout" or "stderr").
func (c *ConsoleAppender) SetTarget(target string) {
	c.target = target
	if target == "stderr" {
		c.writer = os.Stderr
	} else {
		c.writer = os.Stdout
	}
}

// Target returns the configured stream name.
func (c *ConsoleAppender) Target() string { return c.target }

// ActivateOptions implements Appender.
func (c *ConsoleAppender) ActivateOptions() {
	if c.layout != nil {
		c.layout.ActivateOptions()
	}
}

// DoAppend implements Appender.
func (c *ConsoleAppender) DoAppend(event *LoggingEvent) {
	c.doAppend(event, func(event *LoggingEvent) {
		data := c.layout.Format(event)
		if _, err := c.writer.Write(data); err != nil {
			c.errorHandler.Error(event, "console write failed: %v", err)
		}
	})
}

// Close implements Appender; console appenders hold no resources.
func (c *ConsoleAppender) Close() {
	c.markClosed()
}
