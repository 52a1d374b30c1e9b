package log4g

import (
	"os"
	"testing"
)

func BenchmarkSyncLogger(b *testing.B) {
	file, err := os.CreateTemp("", "bench-sync-*.log")
	if err != nil {
		b.Fatal(err)
	}
	defer os.Remove(file.Name())

	appender := NewFileAppender(file.Name())
	appender.SetLayout(NewTextLayout())
	appender.ActivateOptions()

	repo := NewHierarchy(LevelInfo)
	logger := repo.GetLogger("SyncBench")
	logger.AddAppender(appender)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("this is a benchmark log message %d", i)
	}
}

func BenchmarkAsyncLogger(b *testing.B) {
	file, err := os.CreateTemp("", "bench-async-*.log")
	if err != nil {
		b.Fatal(err)
	}
	defer os.Remove(file.Name())

	fileAppender := NewFileAppender(file.Name())
	fileAppender.SetLayout(NewTextLayout())
	fileAppender.ActivateOptions()
	appender := NewAsyncAppender(fileAppender, 4096)
	defer appender.Close()

	repo := NewHierarchy(LevelInfo)
	logger := repo.GetLogger("AsyncBench")
	logger.AddAppender(appender)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("this is a benchmark log message %d", i)
	}
}

func BenchmarkDiscard(b *testing.B) {
	appender := NewNullAppender()
	repo := NewHierarchy(LevelInfo)
	logger := repo.GetLogger("DiscardBench")
	logger.AddAppender(appender)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("this is a benchmark log message %d", i)
	}
}
