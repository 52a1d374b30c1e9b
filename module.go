package log4g

import (
	"os"
	"path/filepath"
	"plugin"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// moduleSymbol is the entry point a plug-in module must export: a
// RegisterLog4g func(log4g.Registrar) bound at build time. Go plugins
// are the closest analogue to the original's dlopen/g_module_* loader —
// both resolve a well-known exported symbol out of a shared object
// loaded at runtime.
const moduleSymbol = "RegisterLog4g"

// Registrar is the interface a loaded module's RegisterLog4g entry
// point receives, letting it contribute appender/layout/filter types
// without importing package internals.
type Registrar interface {
	RegisterAppenderType(name string, factory AppenderFactory)
	RegisterLayoutType(name string, factory LayoutFactory)
	RegisterFilterType(name string, factory FilterFactory)
}

type registrarFuncs struct{}

func (registrarFuncs) RegisterAppenderType(name string, factory AppenderFactory) {
	RegisterAppenderType(name, factory)
}
func (registrarFuncs) RegisterLayoutType(name string, factory LayoutFactory) {
	RegisterLayoutType(name, factory)
}
func (registrarFuncs) RegisterFilterType(name string, factory FilterFactory) {
	RegisterFilterType(name, factory)
}

// ModuleLoader loads .so plug-ins contributing appender/layout/filter
// types, consulting LOG4G_MODULE_SYSTEM_PATH and LOG4G_MODULE_PATH for
// search directories. It also supports an optional fsnotify watch so a
// module dropped into a watched directory at runtime gets picked up
// without a restart.
type ModuleLoader struct {
	mu      sync.Mutex
	loaded  map[string]*plugin.Plugin
	watcher *fsnotify.Watcher
}

// NewModuleLoader creates an empty loader.
func NewModuleLoader() *ModuleLoader {
	return &ModuleLoader{loaded: make(map[string]*plugin.Plugin)}
}

func isValidModuleName(basename string) bool {
	return strings.HasPrefix(basename, "lib") && strings.HasSuffix(basename, ".so")
}

// LoadDirectory loads every valid plug-in in dir, logging (not failing)
// on a per-module basis so one bad module never blocks the rest.
func (m *ModuleLoader) LoadDirectory(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		internalError("%s: %v", dir, err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !isValidModuleName(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := m.LoadFile(path); err != nil {
			internalError("failed to load module %s: %v", path, err)
		}
	}
}

// LoadEnvVar loads every directory named in a colon-separated
// environment variable value.
func (m *ModuleLoader) LoadEnvVar(value string) {
	if value == "" {
		return
	}
	for _, dir := range strings.Split(value, ":") {
		m.LoadDirectory(dir)
	}
}

// LoadDefault loads modules from LOG4G_MODULE_SYSTEM_PATH and
// LOG4G_MODULE_PATH, in that order.
func (m *ModuleLoader) LoadDefault() {
	m.LoadEnvVar(os.Getenv("LOG4G_MODULE_SYSTEM_PATH"))
	m.LoadEnvVar(os.Getenv("LOG4G_MODULE_PATH"))
}

// LoadFile opens a single plug-in and invokes its RegisterLog4g entry
// point, returning the error rather than logging it so callers doing
// their own per-module bookkeeping (LoadDirectory, the fsnotify watch)
// can decide how to report it.
func (m *ModuleLoader) LoadFile(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.loaded[path]; ok {
		return nil
	}
	p, err := plugin.Open(path)
	if err != nil {
		return newModuleError(path, err)
	}
	sym, err := p.Lookup(moduleSymbol)
	if err != nil {
		return newModuleError(path, err)
	}
	register, ok := sym.(func(Registrar))
	if !ok {
		return newModuleError(path, errModuleSignature)
	}
	register(registrarFuncs{})
	m.loaded[path] = p
	internalLogDebug("loaded module: %s", path)
	return nil
}

// Watch starts an fsnotify watch on dir, loading any new valid plug-in
// file as it is created, for hot-reload of plug-in directories without
// a process restart.
func (m *ModuleLoader) Watch(dir string) error {
	m.mu.Lock()
	if m.watcher == nil {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			m.mu.Unlock()
			return err
		}
		m.watcher = w
		go m.watchLoop()
	}
	watcher := m.watcher
	m.mu.Unlock()
	return watcher.Add(dir)
}

func (m *ModuleLoader) watchLoop() {
	for {
		m.mu.Lock()
		watcher := m.watcher
		m.mu.Unlock()
		if watcher == nil {
			return
		}
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			base := filepath.Base(event.Name)
			if !isValidModuleName(base) {
				continue
			}
			if err := m.LoadFile(event.Name); err != nil {
				internalError("failed to hot-load module %s: %v", event.Name, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			internalError("module watch error: %v", err)
		}
	}
}

// Close stops the fsnotify watch, if one was started.
func (m *ModuleLoader) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.watcher == nil {
		return nil
	}
	err := m.watcher.Close()
	m.watcher = nil
	return err
}

func internalLogDebug(format string, args ...interface{}) {
	internalMu.RLock()
	defer internalMu.RUnlock()
	internalLog.Debugf(format, args...)
}
