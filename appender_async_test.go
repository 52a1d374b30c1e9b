package log4g

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsyncAppenderForwardsAndClosesDelegate(t *testing.T) {
	delegate := newCountingAppender("delegate")
	async := NewAsyncAppender(delegate, 16)

	for i := 0; i < 5; i++ {
		async.DoAppend(newLoggingEvent("root", LevelInfo, "", "m", CallerInfo{}))
	}
	async.Close()

	assert.Equal(t, 5, delegate.count)
	require.True(t, delegate.closed)
}

func TestAsyncAppenderDropsAfterClose(t *testing.T) {
	delegate := newCountingAppender("delegate")
	async := NewAsyncAppender(delegate, 4)
	async.Close()

	async.DoAppend(newLoggingEvent("root", LevelInfo, "", "m", CallerInfo{}))
	time.Sleep(10 * time.Millisecond)

	assert.Equal(t, 0, delegate.count)
}
