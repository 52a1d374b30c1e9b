package log4g

import (
	"encoding/xml"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// BasicConfigurator installs the simplest possible working setup: the
// root logger at DEBUG with one console appender using DefaultPattern.
// It is the fallback Initialize reaches for when no configuration file
// is given or the given one fails to parse.
func BasicConfigurator() {
	root := RootLogger()
	root.RemoveAllAppenders()
	root.SetLevel(LevelDebug)
	root.AddAppender(newDefaultConsoleAppender())
}

// xmlConfiguration mirrors the <configuration> document: a root element
// carrying optional debug/reset/threshold attributes, declaring named
// appenders and loggers (plus a distinguished <root>).
type xmlConfiguration struct {
	XMLName   xml.Name      `xml:"configuration"`
	Debug     string        `xml:"debug,attr"`
	Reset     bool          `xml:"reset,attr"`
	Threshold string        `xml:"threshold,attr"`
	Objects   []xmlObject   `xml:"object"`
	Appenders []xmlAppender `xml:"appender"`
	Loggers   []xmlLogger   `xml:"logger"`
	Root      *xmlRoot      `xml:"root"`
}

// xmlObject declares a named, layout-shareable value — a TriggeringPolicy,
// for instance — that an appender or layout property can reference by name
// instead of embedding inline. Resolved before appenders are built, since
// an appender's property may refer to one.
type xmlObject struct {
	Name       string        `xml:"name,attr"`
	Type       string        `xml:"type,attr"`
	Properties []xmlProperty `xml:"property"`
}

type xmlProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type xmlAppender struct {
	Name       string        `xml:"name,attr"`
	Type       string        `xml:"type,attr"`
	Properties []xmlProperty `xml:"property"`
	Layout     *xmlLayout    `xml:"layout"`
	Filters    []xmlFilter   `xml:"filter"`
	Refs       []xmlAppenderRef `xml:"appender"` // nested appender refs, used by AppenderAttachable-style appenders
}

type xmlAppenderRef struct {
	Name string `xml:"name,attr"`
}

type xmlLayout struct {
	Type       string        `xml:"type,attr"`
	Properties []xmlProperty `xml:"property"`
}

type xmlFilter struct {
	Type       string        `xml:"type,attr"`
	Properties []xmlProperty `xml:"property"`
}

type xmlLevel struct {
	Value string `xml:"value,attr"`
}

type xmlLogger struct {
	Name       string           `xml:"name,attr"`
	Additivity string           `xml:"additivity,attr"`
	Level      *xmlLevel        `xml:"level"`
	Appenders  []xmlAppenderRef `xml:"appender"`
}

type xmlRoot struct {
	Level     *xmlLevel        `xml:"level"`
	Appenders []xmlAppenderRef `xml:"appender"`
}

// XMLConfigurator parses and applies an XML configuration document.
// Built on encoding/xml: the document shape here (attribute-driven, no
// namespaces on the input side) is squarely within what encoding/xml
// expresses cleanly, and no dependency in this module's stack offers
// an XML decoder with meaningfully better ergonomics for it.
type XMLConfigurator struct {
	appenders map[string]Appender
	objects   map[string]interface{}
}

// NewXMLConfigurator creates a configurator with an empty appender
// registry, ready to parse one document.
func NewXMLConfigurator() *XMLConfigurator {
	return &XMLConfigurator{
		appenders: make(map[string]Appender),
		objects:   make(map[string]interface{}),
	}
}

// ConfigureFile reads and applies the configuration at path.
func (c *XMLConfigurator) ConfigureFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return newConfigError(path, err)
	}
	return c.Configure(path, data)
}

// Configure parses data as an XML configuration document and applies it
// to the current repository. source is used only for error messages.
func (c *XMLConfigurator) Configure(source string, data []byte) error {
	var doc xmlConfiguration
	if err := xml.Unmarshal(data, &doc); err != nil {
		return newConfigError(source, err)
	}

	repo := GetRepository()
	if doc.Reset {
		repo.ResetConfiguration()
	}
	if doc.Threshold != "" {
		repo.SetThreshold(ParseLevel(doc.Threshold, LevelAll))
	}

	for _, objCfg := range doc.Objects {
		obj, err := c.buildObject(objCfg)
		if err != nil {
			return newConfigError(source, err)
		}
		c.objects[objCfg.Name] = obj
	}

	for _, appCfg := range doc.Appenders {
		appender, err := c.buildAppender(appCfg)
		if err != nil {
			return newConfigError(source, err)
		}
		c.appenders[appCfg.Name] = appender
	}

	for _, loggerCfg := range doc.Loggers {
		logger := GetLogger(loggerCfg.Name)
		if loggerCfg.Level != nil {
			logger.SetLevel(ParseLevel(loggerCfg.Level.Value, LevelInfo))
		}
		if loggerCfg.Additivity != "" {
			logger.SetAdditivity(strings.EqualFold(loggerCfg.Additivity, "true"))
		}
		for _, ref := range loggerCfg.Appenders {
			if appender, ok := c.appenders[ref.Name]; ok {
				logger.AddAppender(appender)
			}
		}
	}

	if doc.Root != nil {
		root := repo.Root()
		if doc.Root.Level != nil {
			root.SetLevel(ParseLevel(doc.Root.Level.Value, LevelDebug))
		}
		for _, ref := range doc.Root.Appenders {
			if appender, ok := c.appenders[ref.Name]; ok {
				root.AddAppender(appender)
			}
		}
	}
	return nil
}

func propMap(props []xmlProperty) map[string]string {
	out := make(map[string]string, len(props))
	for _, p := range props {
		out[p.Name] = p.Value
	}
	return out
}

func (c *XMLConfigurator) buildAppender(cfg xmlAppender) (Appender, error) {
	if cfg.Type == "" {
		if existing, ok := c.appenders[cfg.Name]; ok {
			return existing, nil
		}
		return nil, newConfigError(cfg.Name, errUndeclaredAppenderRef)
	}

	factory, ok := lookupAppenderType(cfg.Type)
	if !ok {
		return nil, newConfigError(cfg.Name, errUnknownAppenderType)
	}
	props := propMap(cfg.Properties)
	appender, err := factory(cfg.Name, props)
	if err != nil {
		return nil, err
	}

	if ref, ok := props["triggering-policy-ref"]; ok {
		rfa, ok := appender.(*RollingFileAppender)
		if !ok {
			return nil, newConfigError(cfg.Name, errors.Errorf("triggering-policy-ref is only valid on a rollingFile appender"))
		}
		obj, ok := c.objects[ref]
		if !ok {
			return nil, newConfigError(cfg.Name, errors.Wrapf(errNoSuchObject, "triggering-policy-ref %q", ref))
		}
		policy, ok := obj.(TriggeringPolicy)
		if !ok {
			return nil, newConfigError(cfg.Name, errors.Wrapf(errObjectTypeMismatch, "triggering-policy-ref %q is not a TriggeringPolicy", ref))
		}
		rfa.SetTriggeringPolicy(policy)
	}

	if cfg.Layout != nil {
		layout, err := c.buildLayout(*cfg.Layout)
		if err != nil {
			return nil, err
		}
		appender.SetLayout(layout)
	}
	if appender.RequiresLayout() && appender.Layout() == nil {
		return nil, newConfigError(cfg.Name, errMissingLayout)
	}

	for _, filterCfg := range cfg.Filters {
		filter, err := c.buildFilter(filterCfg)
		if err != nil {
			return nil, err
		}
		appender.AddFilter(filter)
	}

	if attachable, ok := appender.(AppenderAttachable); ok {
		for _, ref := range cfg.Refs {
			nested, ok := c.appenders[ref.Name]
			if !ok {
				return nil, newConfigError(ref.Name, errUndeclaredAppenderRef)
			}
			attachable.AddAppender(nested)
		}
	}

	if threshold, ok := props["threshold"]; ok {
		appender.SetThreshold(ParseLevel(threshold, LevelAll))
	}

	appender.ActivateOptions()
	return appender, nil
}

func (c *XMLConfigurator) buildLayout(cfg xmlLayout) (Layout, error) {
	factory, ok := lookupLayoutType(cfg.Type)
	if !ok {
		return nil, newConfigError(cfg.Type, errUnknownLayoutType)
	}
	layout, err := factory(propMap(cfg.Properties))
	if err != nil {
		return nil, err
	}
	if patternLayout, ok := layout.(*PatternLayout); ok {
		if pattern, ok := propMap(cfg.Properties)["conversionPattern"]; ok {
			patternLayout.SetPattern(pattern)
		}
	}
	layout.ActivateOptions()
	return layout, nil
}

func (c *XMLConfigurator) buildObject(cfg xmlObject) (interface{}, error) {
	factory, ok := lookupObjectType(cfg.Type)
	if !ok {
		return nil, newConfigError(cfg.Name, errUnknownObjectType)
	}
	return factory(propMap(cfg.Properties))
}

func (c *XMLConfigurator) buildFilter(cfg xmlFilter) (Filter, error) {
	factory, ok := lookupFilterType(cfg.Type)
	if !ok {
		return nil, newConfigError(cfg.Type, errUnknownFilterType)
	}
	filter, err := factory(propMap(cfg.Properties))
	if err != nil {
		return nil, err
	}
	filter.ActivateOptions()
	return filter, nil
}

// coerceBool parses a property's bool form case-insensitively.
func coerceBool(s string) (bool, error) {
	return strconv.ParseBool(strings.ToLower(s))
}

// coerceInt64 parses a property's signed integer form, base 10.
func coerceInt64(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

// coerceUint64 parses a property's unsigned integer form, base 10.
func coerceUint64(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(s), 10, 64)
}

// coerceFloat64 parses a property's float/double form.
func coerceFloat64(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// coerceChar parses a property's single-byte char form.
func coerceChar(s string) (byte, error) {
	if len(s) != 1 {
		return 0, errors.Errorf("char property must be exactly one byte, got %q", s)
	}
	return s[0], nil
}
