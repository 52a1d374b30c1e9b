package log4g

import (
	"fmt"
	"strings"
	"time"
)

// Builder provides a fluent API for configuring one logger in the
// default repository, in place of hand-assembling appenders/filters
// one field at a time.
type Builder struct {
	name            string
	level           *Level
	additive        *bool
	includeLocation bool
	appenders       []Appender
}

// NewBuilder starts a builder targeting the named logger ("" or "root"
// for the root logger).
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// SetLevel sets the logger's own level.
func (b *Builder) SetLevel(level *Level) *Builder {
	b.level = level
	return b
}

// SetLevelString parses level and sets it, falling back to INFO for an
// unrecognized name.
func (b *Builder) SetLevelString(level string) *Builder {
	b.level = ParseLevel(level, LevelInfo)
	return b
}

// SetAdditivity controls whether this logger's events also propagate to
// ancestor appenders.
func (b *Builder) SetAdditivity(additive bool) *Builder {
	b.additive = &additive
	return b
}

// IncludeLocation controls whether log calls on this logger capture
// caller location.
func (b *Builder) IncludeLocation(include bool) *Builder {
	b.includeLocation = include
	return b
}

// AddAppender attaches a fully constructed appender.
func (b *Builder) AddAppender(appender Appender) *Builder {
	appender.ActivateOptions()
	b.appenders = append(b.appenders, appender)
	return b
}

// Console attaches a console appender, optionally customized.
func (b *Builder) Console(opts ...func(*ConsoleAppender)) *Builder {
	c := NewConsoleAppender()
	c.SetLayout(NewPatternLayout(DefaultPattern))
	for _, opt := range opts {
		opt(c)
	}
	return b.AddAppender(c)
}

// File attaches a file appender, optionally customized.
func (b *Builder) File(filename string, opts ...func(*FileAppender)) *Builder {
	f := NewFileAppender(filename)
	f.SetLayout(NewPatternLayout(DefaultPattern))
	for _, opt := range opts {
		opt(f)
	}
	return b.AddAppender(f)
}

// RollingFile attaches a rolling file appender, optionally customized.
func (b *Builder) RollingFile(filename string, opts ...func(*RollingFileAppender)) *Builder {
	r := NewRollingFileAppender(filename)
	r.SetLayout(NewPatternLayout(DefaultPattern))
	for _, opt := range opts {
		opt(r)
	}
	return b.AddAppender(r)
}

// Apply installs the builder's configuration onto the named logger in
// the current repository and returns it.
func (b *Builder) Apply() *Logger {
	logger := GetLogger(b.name)
	if b.level != nil {
		logger.SetLevel(b.level)
	}
	if b.additive != nil {
		logger.SetAdditivity(*b.additive)
	}
	logger.SetIncludeLocation(b.includeLocation)
	for _, appender := range b.appenders {
		logger.AddAppender(appender)
	}
	return logger
}

// Configuration is a flat, serialization-friendly description of a
// logger tree, meant to be decoded from YAML or JSON and applied with
// ApplyConfiguration.
type Configuration struct {
	Level           string           `yaml:"level" json:"level"`
	Format          string           `yaml:"format" json:"format"`
	Pattern         string           `yaml:"pattern" json:"pattern"`
	IncludeLocation bool             `yaml:"include_location" json:"include_location"`
	Appenders       []AppenderConfig `yaml:"appenders" json:"appenders"`
	Loggers         []LoggerConfig   `yaml:"loggers" json:"loggers"`
}

// LoggerConfig configures one non-root logger's level and additivity.
type LoggerConfig struct {
	Name       string `yaml:"name" json:"name"`
	Level      string `yaml:"level" json:"level"`
	Additivity *bool  `yaml:"additivity" json:"additivity"`
}

// AppenderConfig describes one appender to attach to the root logger.
type AppenderConfig struct {
	Name           string `yaml:"name" json:"name"`
	Type           string `yaml:"type" json:"type"` // console, file, rollingFile, managedRollingFile; any other value is skipped
	Level          string `yaml:"level" json:"level"`
	Pattern        string `yaml:"pattern" json:"pattern"`
	FileName       string `yaml:"file_name" json:"file_name"`
	MaxSizeBytes   int64  `yaml:"max_size_bytes" json:"max_size_bytes"`
	MaxBackupIndex int    `yaml:"max_backup_index" json:"max_backup_index"`
	MaxSizeMB      int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxAgeDays     int    `yaml:"max_age_days" json:"max_age_days"`
	Compress       bool   `yaml:"compress" json:"compress"`
	Async          bool   `yaml:"async" json:"async"`
}

func layoutFor(globalFormat, globalPattern, pattern string) Layout {
	switch {
	case pattern != "":
		return NewPatternLayout(pattern)
	case globalPattern != "":
		return NewPatternLayout(globalPattern)
	case strings.EqualFold(globalFormat, "json"):
		return NewJSONLayout()
	default:
		return NewTextLayout()
	}
}

// ApplyConfiguration sets the root's own level, builds and attaches
// every appender in cfg to the root logger (or one default console
// appender when cfg lists none), and then applies per-logger
// level/additivity overrides. Unlike BasicConfigurator (which
// always produces exactly one console appender), this is the
// programmatic path a loaded Configuration object takes after having
// been decoded from YAML/JSON by the caller.
func ApplyConfiguration(cfg Configuration) error {
	root := RootLogger()
	if cfg.Level != "" {
		root.SetLevel(ParseLevel(cfg.Level, LevelInfo))
	}
	root.SetIncludeLocation(cfg.IncludeLocation)

	if len(cfg.Appenders) == 0 {
		root.AddAppender(newDefaultConsoleAppender())
	}
	for _, appCfg := range cfg.Appenders {
		appender, err := buildAppender(appCfg, cfg.Format, cfg.Pattern)
		if err != nil {
			return newConfigError("<inline>", err)
		}
		if appender == nil {
			continue
		}
		root.AddAppender(appender)
	}

	for _, loggerCfg := range cfg.Loggers {
		logger := GetLogger(loggerCfg.Name)
		if loggerCfg.Level != "" {
			logger.SetLevel(ParseLevel(loggerCfg.Level, LevelInfo))
		}
		if loggerCfg.Additivity != nil {
			logger.SetAdditivity(*loggerCfg.Additivity)
		}
	}
	return nil
}

func buildAppender(appCfg AppenderConfig, globalFormat, globalPattern string) (Appender, error) {
	layout := layoutFor(globalFormat, globalPattern, appCfg.Pattern)
	var appender Appender

	switch strings.ToLower(appCfg.Type) {
	case "console":
		c := NewConsoleAppender()
		c.SetLayout(layout)
		appender = c
	case "file":
		filename := appCfg.FileName
		if filename == "" {
			filename = "app.log"
		}
		f := NewFileAppender(filename)
		f.SetLayout(layout)
		appender = f
	case "rollingfile":
		filename := appCfg.FileName
		if filename == "" {
			filename = "app.log"
		}
		r := NewRollingFileAppender(filename)
		r.SetLayout(layout)
		if appCfg.MaxSizeBytes > 0 {
			r.SetTriggeringPolicy(NewSizeTriggeringPolicy(appCfg.MaxSizeBytes))
		}
		if appCfg.MaxBackupIndex > 0 {
			r.SetMaxBackupIndex(appCfg.MaxBackupIndex)
		}
		appender = r
	case "managedrollingfile":
		filename := appCfg.FileName
		if filename == "" {
			filename = "app.log"
		}
		m := NewManagedRollingAppender(filename, appCfg.MaxSizeMB, appCfg.MaxBackupIndex, appCfg.MaxAgeDays, appCfg.Compress)
		m.SetLayout(layout)
		appender = m
	default:
		return nil, nil
	}

	if appCfg.Name != "" {
		appender.SetName(appCfg.Name)
	}
	if appCfg.Level != "" {
		appender.SetThreshold(ParseLevel(appCfg.Level, LevelAll))
	}
	appender.ActivateOptions()

	if appCfg.Async {
		return NewAsyncAppender(appender, 0), nil
	}
	return appender, nil
}

func newDefaultConsoleAppender() Appender {
	c := NewConsoleAppender()
	c.SetLayout(NewPatternLayout(DefaultPattern))
	c.ActivateOptions()
	return c
}

// parseSize parses a human size string like "20MB" into bytes.
func parseSize(s string) int64 {
	s = strings.ToUpper(strings.TrimSpace(s))
	var val int64
	switch {
	case strings.HasSuffix(s, "KB"):
		fmt.Sscanf(s, "%dKB", &val)
		return val * 1024
	case strings.HasSuffix(s, "MB"):
		fmt.Sscanf(s, "%dMB", &val)
		return val * 1024 * 1024
	case strings.HasSuffix(s, "GB"):
		fmt.Sscanf(s, "%dGB", &val)
		return val * 1024 * 1024 * 1024
	default:
		fmt.Sscanf(s, "%d", &val)
		return val
	}
}

// parseRetention parses a duration string like "7d" or "30d", falling
// back to time.ParseDuration for standard Go duration strings.
func parseRetention(s string) time.Duration {
	s = strings.ToUpper(strings.TrimSpace(s))
	if strings.HasSuffix(s, "D") {
		var days int
		fmt.Sscanf(strings.TrimSuffix(s, "D"), "%d", &days)
		return time.Duration(days) * 24 * time.Hour
	}
	d, _ := time.ParseDuration(s)
	return d
}

// Package-level convenience functions operate on the root logger of the
// current repository.

func Trace(format string, args ...interface{}) { RootLogger().Trace(format, args...) }
func Debug(format string, args ...interface{}) { RootLogger().Debug(format, args...) }
func Info(format string, args ...interface{})  { RootLogger().Info(format, args...) }
func Warn(format string, args ...interface{})  { RootLogger().Warn(format, args...) }
func Error(format string, args ...interface{}) { RootLogger().Error(format, args...) }
func Fatal(format string, args ...interface{}) { RootLogger().Fatal(format, args...) }

// WithMarker returns a marker view of the root logger.
func WithMarker(marker string) *MarkerLogger { return RootLogger().WithMarker(marker) }

// WithFields returns a fields view of the root logger.
func WithFields(fields map[string]interface{}) *FieldLogger { return RootLogger().WithFields(fields) }

// WithField is a single-entry convenience wrapper over WithFields.
func WithField(key string, value interface{}) *FieldLogger {
	return RootLogger().WithFields(map[string]interface{}{key: value})
}

// WithError attaches an error field to the root logger.
func WithError(err error) *FieldLogger {
	return RootLogger().WithFields(map[string]interface{}{"error": err})
}

// SQL logs a query at DEBUG under the "SQL" marker, in the shape a
// database/sql driver wrapper would call on every statement.
func SQL(sql string, duration time.Duration, rows int64) {
	RootLogger().WithMarker("SQL").Debug("[%dms] [rows:%d] %s", duration.Milliseconds(), rows, sql)
}

// API logs one handled HTTP request at INFO under the "API" marker.
func API(method, path, clientIP string, statusCode int, duration time.Duration) {
	RootLogger().WithMarker("API").Info("[%dms] [%d] %s %s %s", duration.Milliseconds(), statusCode, clientIP, method, path)
}
