package log4g

import "os"

// FileAppender writes formatted events to a single file, opened lazily
// on first append and optionally truncated at open.
type FileAppender struct {
	appenderBase
	filename string
	file     *os.File
	append   bool
}

// NewFileAppender creates a file appender targeting filename, appending
// to any existing content.
func NewFileAppender(filename string) *FileAppender {
	return &FileAppender{
		appenderBase: newAppenderBase("file", true),
		filename:     filename,
		append:       true,
	}
}

// SetAppend controls whether an existing file is appended to (true) or
// truncated (false) on open.
func (f *FileAppender) SetAppend(append bool) { f.append = append }

func (f *FileAppender) open() error {
	if f.file != nil {
		return nil
	}
	flags := os.O_CREATE | os.O_WRONLY
	if f.append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	file, err := os.OpenFile(f.filename, flags, 0644)
	if err != nil {
		return err
	}
	f.file = file
	return nil
}

// ActivateOptions implements Appender.
func (f *FileAppender) ActivateOptions() {
	if f.layout != nil {
		f.layout.ActivateOptions()
	}
	_ = f.open()
}

// DoAppend implements Appender.
func (f *FileAppender) DoAppend(event *LoggingEvent) {
	f.doAppend(event, func(event *LoggingEvent) {
		if err := f.open(); err != nil {
			f.errorHandler.Error(event, "failed to open log file %s: %v", f.filename, err)
			return
		}
		data := f.layout.Format(event)
		if _, err := f.file.Write(data); err != nil {
			f.errorHandler.Error(event, "file write failed: %v", err)
		}
	})
}

// Close implements Appender; idempotent.
func (f *FileAppender) Close() {
	if !f.markClosed() {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.file != nil {
		f.file.Close()
		f.file = nil
	}
}
