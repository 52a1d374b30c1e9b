package log4g

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollingFileAppenderRotation(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "test.log")

	appender := NewRollingFileAppender(logFile)
	appender.SetLayout(NewTextLayout())
	appender.WithMaxSize(10).WithMaxBackupIndex(4)
	appender.ActivateOptions()
	defer appender.Close()

	for i := 0; i < 10; i++ {
		event := newLoggingEvent("root", LevelInfo, "", "xx", CallerInfo{})
		appender.DoAppend(event)
	}

	for _, suffix := range []string{"", ".1", ".2", ".3", ".4"} {
		_, err := os.Stat(logFile + suffix)
		require.NoError(t, err, "expected %s to exist", logFile+suffix)
	}

	_, err := os.Stat(logFile + ".5")
	assert.True(t, os.IsNotExist(err), "test.log.5 must not exist")
}
