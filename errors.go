package log4g

import "github.com/pkg/errors"

// ConfigError wraps a failure encountered while parsing or applying a
// configuration, carrying the configuration source (file path or
// "<inline>") for diagnostics.
type ConfigError struct {
	Source string
	cause  error
}

func (e *ConfigError) Error() string {
	return errors.Wrapf(e.cause, "log4g: configuration error in %s", e.Source).Error()
}

func (e *ConfigError) Unwrap() error { return e.cause }

func newConfigError(source string, cause error) error {
	return &ConfigError{Source: source, cause: cause}
}

// ModuleError wraps a failure encountered while loading or initializing
// a plug-in module, carrying the module path.
type ModuleError struct {
	Path  string
	cause error
}

func (e *ModuleError) Error() string {
	return errors.Wrapf(e.cause, "log4g: module error loading %s", e.Path).Error()
}

func (e *ModuleError) Unwrap() error { return e.cause }

func newModuleError(path string, cause error) error {
	return &ModuleError{Path: path, cause: cause}
}

// errModuleSignature is returned when a module's RegisterLog4g symbol
// exists but doesn't have the expected func(Registrar) signature.
var errModuleSignature = errors.New("RegisterLog4g has an unexpected signature, want func(log4g.Registrar)")

var (
	errUndeclaredAppenderRef = errors.New("appender reference has no prior type-bearing declaration")
	errUnknownAppenderType   = errors.New("unknown appender type")
	errUnknownLayoutType     = errors.New("unknown layout type")
	errUnknownFilterType     = errors.New("unknown filter type")
	errMissingLayout         = errors.New("appender requires a layout but none was configured")
	errUnknownObjectType     = errors.New("unknown object type")
	errNoSuchObject          = errors.New("object property references an undeclared <object name=>")
	errObjectTypeMismatch    = errors.New("object does not implement the type this property requires")
)
