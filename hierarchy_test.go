package log4g

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingAppender struct {
	appenderBase
	count int
}

func newCountingAppender(name string) *countingAppender {
	return &countingAppender{appenderBase: newAppenderBase(name, false)}
}

func (c *countingAppender) ActivateOptions() {}
func (c *countingAppender) DoAppend(event *LoggingEvent) {
	c.doAppend(event, func(*LoggingEvent) { c.count++ })
}
func (c *countingAppender) Close() { c.markClosed() }

func TestHierarchyPropagation(t *testing.T) {
	repo := NewHierarchy(LevelDebug)
	a := repo.GetLogger("a")
	ab := repo.GetLogger("a.b")
	repo.GetLogger("a.b.c")

	x1 := newCountingAppender("x1")
	x2 := newCountingAppender("x2")
	a.AddAppender(x1)
	ab.AddAppender(x2)

	abc := repo.GetLogger("a.b.c")
	abc.Info("hello")

	assert.Equal(t, 1, x1.count)
	assert.Equal(t, 1, x2.count)

	ab.SetAdditivity(false)
	abc.Info("hello again")

	assert.Equal(t, 1, x1.count, "x1 must not receive events once a.b is non-additive")
	assert.Equal(t, 2, x2.count)
}

func TestOutOfOrderLoggerCreation(t *testing.T) {
	repo := NewHierarchy(LevelDebug)

	abc := repo.GetLogger("a.b.c")
	require.Equal(t, repo.Root(), abc.Parent())

	repo.GetLogger("a")
	ab := repo.GetLogger("a.b")

	abc = repo.Exists("a.b.c")
	require.NotNil(t, abc)
	assert.Equal(t, ab, abc.Parent())
	assert.Equal(t, repo.Exists("a"), ab.Parent())
	assert.Equal(t, repo.Root(), repo.Exists("a").Parent())
}

func TestEffectiveLevelResolution(t *testing.T) {
	repo := NewHierarchy(LevelWarn)
	a := repo.GetLogger("a")
	ab := repo.GetLogger("a.b")

	assert.Equal(t, LevelWarn, ab.EffectiveLevel())

	a.SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, ab.EffectiveLevel())
	assert.True(t, ab.IsEnabledFor(LevelDebug))

	ab.SetLevel(LevelError)
	assert.Equal(t, LevelError, ab.EffectiveLevel())
	assert.False(t, ab.IsEnabledFor(LevelWarn))
}

func TestNoAppenderWarningFiresOnce(t *testing.T) {
	repo := NewHierarchy(LevelDebug)
	logger := repo.GetLogger("quiet")
	logger.Info("nobody is listening")
	logger.Info("still nobody")
	assert.True(t, repo.warnedNoApp)
}

func TestResetConfigurationClearsWarningLatch(t *testing.T) {
	repo := NewHierarchy(LevelDebug)
	logger := repo.GetLogger("quiet")
	logger.Info("first")
	assert.True(t, repo.warnedNoApp)

	repo.ResetConfiguration()
	assert.False(t, repo.warnedNoApp)
}
