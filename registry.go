package log4g

import (
	"sync"
	"time"

	"github.com/pkg/errors"
)

// AppenderFactory builds an Appender from a name and a flat string
// parameter map, as parsed out of a configuration file.
type AppenderFactory func(name string, params map[string]string) (Appender, error)

// LayoutFactory builds a Layout from a flat string parameter map.
type LayoutFactory func(params map[string]string) (Layout, error)

// FilterFactory builds a Filter from a flat string parameter map.
type FilterFactory func(params map[string]string) (Filter, error)

// ObjectFactory builds an arbitrary named, layout-shareable value (a
// TriggeringPolicy, for instance) from a flat string parameter map, as
// declared by a top-level <object name= type=> configuration element.
// Unlike AppenderFactory/LayoutFactory/FilterFactory, the return type is
// whatever the object represents; callers type-assert it to the interface
// the referencing property expects.
type ObjectFactory func(params map[string]string) (interface{}, error)

// registry is the type lookup table the configurator consults to resolve
// every type attribute, built-in or plug-in. A module loaded through
// ModuleLoader.LoadFile registers its contributed types here, the same role the original's g_type plug-in class registration
// plays for dlopen'd modules.
type registry struct {
	mu       sync.RWMutex
	appender map[string]AppenderFactory
	layout   map[string]LayoutFactory
	filter   map[string]FilterFactory
	object   map[string]ObjectFactory
}

var typeRegistry = &registry{
	appender: make(map[string]AppenderFactory),
	layout:   make(map[string]LayoutFactory),
	filter:   make(map[string]FilterFactory),
	object:   make(map[string]ObjectFactory),
}

// RegisterAppenderType makes typeName available to the configurator.
func RegisterAppenderType(typeName string, factory AppenderFactory) {
	typeRegistry.mu.Lock()
	defer typeRegistry.mu.Unlock()
	typeRegistry.appender[typeName] = factory
}

// RegisterLayoutType makes typeName available to the configurator.
func RegisterLayoutType(typeName string, factory LayoutFactory) {
	typeRegistry.mu.Lock()
	defer typeRegistry.mu.Unlock()
	typeRegistry.layout[typeName] = factory
}

// RegisterFilterType makes typeName available to the configurator.
func RegisterFilterType(typeName string, factory FilterFactory) {
	typeRegistry.mu.Lock()
	defer typeRegistry.mu.Unlock()
	typeRegistry.filter[typeName] = factory
}

// RegisterObjectType makes typeName available to <object name= type=>
// configuration elements.
func RegisterObjectType(typeName string, factory ObjectFactory) {
	typeRegistry.mu.Lock()
	defer typeRegistry.mu.Unlock()
	typeRegistry.object[typeName] = factory
}

func lookupAppenderType(typeName string) (AppenderFactory, bool) {
	typeRegistry.mu.RLock()
	defer typeRegistry.mu.RUnlock()
	f, ok := typeRegistry.appender[typeName]
	return f, ok
}

func lookupLayoutType(typeName string) (LayoutFactory, bool) {
	typeRegistry.mu.RLock()
	defer typeRegistry.mu.RUnlock()
	f, ok := typeRegistry.layout[typeName]
	return f, ok
}

func lookupFilterType(typeName string) (FilterFactory, bool) {
	typeRegistry.mu.RLock()
	defer typeRegistry.mu.RUnlock()
	f, ok := typeRegistry.filter[typeName]
	return f, ok
}

func lookupObjectType(typeName string) (ObjectFactory, bool) {
	typeRegistry.mu.RLock()
	defer typeRegistry.mu.RUnlock()
	f, ok := typeRegistry.object[typeName]
	return f, ok
}

func init() {
	RegisterAppenderType("console", func(name string, params map[string]string) (Appender, error) {
		a := NewConsoleAppender()
		a.SetName(name)
		if target, ok := params["target"]; ok {
			a.SetTarget(target)
		}
		return a, nil
	})
	RegisterAppenderType("file", func(name string, params map[string]string) (Appender, error) {
		a := NewFileAppender(params["file"])
		a.SetName(name)
		if raw, ok := params["append"]; ok {
			appendVal, err := coerceBool(raw)
			if err != nil {
				return nil, errors.Wrapf(err, "appender %s: append property", name)
			}
			a.SetAppend(appendVal)
		}
		return a, nil
	})
	RegisterAppenderType("rollingFile", func(name string, params map[string]string) (Appender, error) {
		a := NewRollingFileAppender(params["file"])
		a.SetName(name)
		if raw, ok := params["maximum-file-size"]; ok {
			maxSize, err := coerceInt64(raw)
			if err != nil {
				return nil, errors.Wrapf(err, "appender %s: maximum-file-size property", name)
			}
			a.SetTriggeringPolicy(NewSizeTriggeringPolicy(maxSize))
		}
		if raw, ok := params["max-backup-index"]; ok {
			maxBackups, err := coerceUint64(raw)
			if err != nil {
				return nil, errors.Wrapf(err, "appender %s: max-backup-index property", name)
			}
			a.SetMaxBackupIndex(int(maxBackups))
		}
		return a, nil
	})

	RegisterLayoutType("pattern", func(params map[string]string) (Layout, error) {
		pattern := params["conversionPattern"]
		if pattern == "" {
			pattern = DefaultPattern
		}
		layout := NewPatternLayout(pattern)
		if raw, ok := params["padChar"]; ok {
			padChar, err := coerceChar(raw)
			if err != nil {
				return nil, errors.Wrap(err, "pattern layout: padChar property")
			}
			layout.PadChar = padChar
		}
		return layout, nil
	})
	RegisterLayoutType("simple", func(params map[string]string) (Layout, error) {
		return NewTextLayout(), nil
	})
	RegisterLayoutType("json", func(params map[string]string) (Layout, error) {
		return NewJSONLayout(), nil
	})
	RegisterLayoutType("xml", func(params map[string]string) (Layout, error) {
		return NewXMLLayout(), nil
	})
	RegisterLayoutType("html", func(params map[string]string) (Layout, error) {
		return NewHTMLLayout(), nil
	})

	RegisterFilterType("levelRange", func(params map[string]string) (Filter, error) {
		min := ParseLevel(params["levelMin"], LevelAll)
		max := ParseLevel(params["levelMax"], LevelOff)
		f := NewLevelRangeFilter(min, max)
		if raw, ok := params["acceptOnMatch"]; ok {
			accept, err := coerceBool(raw)
			if err != nil {
				return nil, errors.Wrap(err, "levelRange filter: acceptOnMatch property")
			}
			f.AcceptOnMatch = accept
		}
		return f, nil
	})
	RegisterFilterType("threshold", func(params map[string]string) (Filter, error) {
		return NewThresholdFilter(ParseLevel(params["level"], LevelInfo)), nil
	})
	RegisterFilterType("denyAll", func(params map[string]string) (Filter, error) {
		return &DenyAllFilter{}, nil
	})
	RegisterFilterType("marker", func(params map[string]string) (Filter, error) {
		f := NewMarkerFilter(params["marker"])
		if raw, ok := params["acceptOnMatch"]; ok {
			accept, err := coerceBool(raw)
			if err != nil {
				return nil, errors.Wrap(err, "marker filter: acceptOnMatch property")
			}
			f.AcceptOnMatch = accept
		}
		return f, nil
	})
	RegisterFilterType("burst", func(params map[string]string) (Filter, error) {
		level := ParseLevel(params["level"], LevelWarn)
		rate, err := coerceFloat64(params["rate"])
		if err != nil {
			return nil, errors.Wrap(err, "burst filter: rate property")
		}
		maxBurst, err := coerceInt64(params["maxBurst"])
		if err != nil {
			return nil, errors.Wrap(err, "burst filter: maxBurst property")
		}
		return NewBurstFilter(level, rate, int(maxBurst)), nil
	})

	RegisterObjectType("sizeTriggeringPolicy", func(params map[string]string) (interface{}, error) {
		maxBytes, err := coerceInt64(params["maxBytes"])
		if err != nil {
			return nil, errors.Wrap(err, "sizeTriggeringPolicy object: maxBytes property")
		}
		return NewSizeTriggeringPolicy(maxBytes), nil
	})
	RegisterObjectType("timeTriggeringPolicy", func(params map[string]string) (interface{}, error) {
		interval, err := time.ParseDuration(params["interval"])
		if err != nil {
			return nil, errors.Wrap(err, "timeTriggeringPolicy object: interval property")
		}
		return NewTimeTriggeringPolicy(interval), nil
	})
}
