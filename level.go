package log4g

import (
	"log/syslog"
	"strconv"
	"strings"
)

// Level is a totally ordered log severity, shared and compared by rank.
// Instances are immutable after construction; use the package-level
// Level* variables rather than constructing new ones, except when a
// plug-in module is deliberately extending the level set.
type Level struct {
	rank   int32
	name   string
	syslog syslog.Priority
}

// Rank returns the level's totally ordered integer rank.
func (l *Level) Rank() int32 { return l.rank }

// String returns the level's display name.
func (l *Level) String() string {
	if l == nil {
		return "UNKNOWN"
	}
	return l.name
}

// SyslogPriority returns the syslog(3)-equivalent priority for this level.
func (l *Level) SyslogPriority() syslog.Priority { return l.syslog }

// IsGreaterOrEqual reports whether l's rank is >= other's rank.
func (l *Level) IsGreaterOrEqual(other *Level) bool {
	return l.rank >= other.rank
}

const (
	rankAll   int32 = -1 << 31
	rankTrace int32 = 5000
	rankDebug int32 = 10000
	rankInfo  int32 = 20000
	rankWarn  int32 = 30000
	rankError int32 = 40000
	rankFatal int32 = 50000
	rankOff   int32 = 1<<31 - 1
)

// Predefined levels. ALL and OFF are sentinels never produced by ordinary
// logging calls but valid as thresholds.
var (
	LevelAll   = &Level{rank: rankAll, name: "ALL", syslog: syslog.LOG_DEBUG}
	LevelTrace = &Level{rank: rankTrace, name: "TRACE", syslog: syslog.LOG_DEBUG}
	LevelDebug = &Level{rank: rankDebug, name: "DEBUG", syslog: syslog.LOG_DEBUG}
	LevelInfo  = &Level{rank: rankInfo, name: "INFO", syslog: syslog.LOG_INFO}
	LevelWarn  = &Level{rank: rankWarn, name: "WARN", syslog: syslog.LOG_WARNING}
	LevelError = &Level{rank: rankError, name: "ERROR", syslog: syslog.LOG_ERR}
	LevelFatal = &Level{rank: rankFatal, name: "FATAL", syslog: syslog.LOG_EMERG}
	LevelOff   = &Level{rank: rankOff, name: "OFF", syslog: syslog.LOG_EMERG}
)

var levelsByName = map[string]*Level{
	"ALL":   LevelAll,
	"TRACE": LevelTrace,
	"DEBUG": LevelDebug,
	"INFO":  LevelInfo,
	"WARN":  LevelWarn,
	"ERROR": LevelError,
	"FATAL": LevelFatal,
	"OFF":   LevelOff,
}

var levelsByRank = map[int32]*Level{
	rankAll:   LevelAll,
	rankTrace: LevelTrace,
	rankDebug: LevelDebug,
	rankInfo:  LevelInfo,
	rankWarn:  LevelWarn,
	rankError: LevelError,
	rankFatal: LevelFatal,
	rankOff:   LevelOff,
}

// levelsByShortName maps the first letter of each level's name to that
// level, so a property value of "W" resolves the same as "WARN". There is
// no short-name table in the original this is ported from; a single
// leading letter is the natural minimal reading of "named enum ... by
// short name" and the eight predefined levels happen to have distinct
// first letters.
var levelsByShortName = func() map[string]*Level {
	m := make(map[string]*Level, len(levelsByName))
	for name, lvl := range levelsByName {
		m[name[:1]] = lvl
	}
	return m
}()

// ParseLevel converts a string property value to a Level: by full name
// ("WARN"), by single-letter short name ("W"), or by integer rank, all
// case-insensitive where applicable. If s matches none of these, def is
// returned.
func ParseLevel(s string, def *Level) *Level {
	s = strings.TrimSpace(s)
	if lvl, ok := levelsByName[strings.ToUpper(s)]; ok {
		return lvl
	}
	if lvl, ok := levelsByShortName[strings.ToUpper(s)]; ok {
		return lvl
	}
	if rank, err := strconv.ParseInt(s, 10, 32); err == nil {
		if lvl, ok := levelsByRank[int32(rank)]; ok {
			return lvl
		}
	}
	return def
}

// LevelFromRank returns the predefined level with the given rank, or def
// if rank does not match a predefined level.
func LevelFromRank(rank int32, def *Level) *Level {
	if lvl, ok := levelsByRank[rank]; ok {
		return lvl
	}
	return def
}
