package log4g

import (
	"sync"
)

// AsyncAppender buffers events on a channel and forwards them to a single
// delegate appender from a dedicated worker goroutine, decoupling the
// calling goroutine from the delegate's I/O latency. Blocking-send is
// deliberate: dropping log events silently is worse than backpressure.
//
// AsyncAppender implements AppenderAttachable, but unlike Logger's
// multi-appender attachment it holds exactly one nested delegate:
// AddAppender replaces whatever delegate is currently set, and the
// Remove* methods clear it back to nil.
type AsyncAppender struct {
	appenderBase
	delegateMu sync.RWMutex
	delegate   Appender
	events     chan *LoggingEvent
	wg         sync.WaitGroup
	closeWG    sync.Once
}

// NewAsyncAppender wraps delegate with an async buffer of bufferSize
// pending events.
func NewAsyncAppender(delegate Appender, bufferSize int) *AsyncAppender {
	if bufferSize <= 0 {
		bufferSize = 1024
	}
	a := &AsyncAppender{
		appenderBase: newAppenderBase("Async", false),
		delegate:     delegate,
		events:       make(chan *LoggingEvent, bufferSize),
	}
	a.wg.Add(1)
	go a.worker()
	return a
}

// ActivateOptions implements Appender.
func (a *AsyncAppender) ActivateOptions() {
	if d := a.getDelegate(); d != nil {
		d.ActivateOptions()
	}
}

// DoAppend implements Appender; the threshold and filter chain run
// synchronously in the caller so a denied event never reaches the
// channel, but the delegate's own append runs on the worker goroutine.
func (a *AsyncAppender) DoAppend(event *LoggingEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		a.errorHandler.Error(event, "attempted to append to closed async appender %s", a.name)
		return
	}
	if decision := a.checkThresholdAndFilters(event); decision == Deny {
		return
	}
	a.events <- event
}

func (a *AsyncAppender) worker() {
	defer a.wg.Done()
	for event := range a.events {
		if d := a.getDelegate(); d != nil {
			d.DoAppend(event)
		}
	}
}

func (a *AsyncAppender) getDelegate() Appender {
	a.delegateMu.RLock()
	defer a.delegateMu.RUnlock()
	return a.delegate
}

// AddAppender implements AppenderAttachable by installing appender as the
// nested delegate, replacing any delegate already set.
func (a *AsyncAppender) AddAppender(appender Appender) {
	a.delegateMu.Lock()
	defer a.delegateMu.Unlock()
	a.delegate = appender
}

// RemoveAppender implements AppenderAttachable, clearing the delegate if
// it is the one given.
func (a *AsyncAppender) RemoveAppender(appender Appender) {
	a.delegateMu.Lock()
	defer a.delegateMu.Unlock()
	if a.delegate == appender {
		a.delegate = nil
	}
}

// RemoveAppenderByName implements AppenderAttachable, clearing the
// delegate if its name matches.
func (a *AsyncAppender) RemoveAppenderByName(name string) {
	a.delegateMu.Lock()
	defer a.delegateMu.Unlock()
	if a.delegate != nil && a.delegate.Name() == name {
		a.delegate = nil
	}
}

// RemoveAllAppenders implements AppenderAttachable, closing and clearing
// the delegate.
func (a *AsyncAppender) RemoveAllAppenders() {
	a.delegateMu.Lock()
	defer a.delegateMu.Unlock()
	if a.delegate != nil {
		a.delegate.Close()
		a.delegate = nil
	}
}

// GetAppender implements AppenderAttachable, returning the delegate if its
// name matches, else nil.
func (a *AsyncAppender) GetAppender(name string) Appender {
	d := a.getDelegate()
	if d != nil && d.Name() == name {
		return d
	}
	return nil
}

// GetAllAppenders implements AppenderAttachable, returning a single-element
// slice holding the delegate, or an empty slice if none is set.
func (a *AsyncAppender) GetAllAppenders() []Appender {
	d := a.getDelegate()
	if d == nil {
		return nil
	}
	return []Appender{d}
}

// IsAttached implements AppenderAttachable, reporting whether appender is
// the current delegate.
func (a *AsyncAppender) IsAttached(appender Appender) bool {
	return a.getDelegate() == appender
}

// Close stops accepting new events, drains the channel, and closes the
// delegate. Idempotent.
func (a *AsyncAppender) Close() {
	if !a.markClosed() {
		return
	}
	a.closeWG.Do(func() {
		close(a.events)
		a.wg.Wait()
		if d := a.getDelegate(); d != nil {
			d.Close()
		}
	})
}
