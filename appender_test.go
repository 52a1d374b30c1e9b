package log4g

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDoubleCloseIsNoOp(t *testing.T) {
	a := NewConsoleAppender()
	a.Close()
	assert.NotPanics(t, func() { a.Close() })
}

func TestClosedAppenderRoutesToErrorHandler(t *testing.T) {
	a := NewConsoleAppender()
	a.SetLayout(NewTextLayout())
	a.Close()

	event := newLoggingEvent("root", LevelInfo, "", "msg", CallerInfo{})
	assert.NotPanics(t, func() { a.DoAppend(event) })
}

func TestDoubleAddAppenderLeavesListUnchanged(t *testing.T) {
	repo := NewHierarchy(LevelDebug)
	logger := repo.GetLogger("dup")
	appender := NewNullAppender()

	logger.AddAppender(appender)
	logger.AddAppender(appender)

	assert.Len(t, logger.GetAllAppenders(), 1)
}

func TestAppenderMissingRequiredLayoutRoutesToErrorHandler(t *testing.T) {
	a := NewConsoleAppender()
	event := newLoggingEvent("root", LevelInfo, "", "msg", CallerInfo{})
	assert.NotPanics(t, func() { a.DoAppend(event) })
}
