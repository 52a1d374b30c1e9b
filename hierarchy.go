package log4g

import (
	"strings"
	"sync"
)

// Hierarchy is the repository of Loggers for one logging namespace: it
// owns the root logger, creates and caches named loggers, and keeps the
// dotted-name parent/child links consistent as loggers are created out
// of order.
type Hierarchy struct {
	mu          sync.Mutex
	root        *Logger
	table       map[string]interface{} // *Logger or *ProvisionNode
	warnedNoApp bool
	threshold   *Level
}

// NewHierarchy creates a repository with the given root level.
func NewHierarchy(rootLevel *Level) *Hierarchy {
	h := &Hierarchy{table: make(map[string]interface{}), threshold: LevelAll}
	h.root = newRootLogger(h, rootLevel)
	return h
}

// Root returns the repository's root logger.
func (h *Hierarchy) Root() *Logger { return h.root }

// Threshold returns the repository-wide level floor: events below it
// never reach a logger's effective-level check.
func (h *Hierarchy) Threshold() *Level {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.threshold
}

// SetThreshold sets the repository-wide level floor.
func (h *Hierarchy) SetThreshold(level *Level) {
	if level == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.threshold = level
}

// IsDisabled reports whether level is below the repository threshold,
// meaning no logger in this hierarchy can emit at that level regardless
// of its own effective level.
func (h *Hierarchy) IsDisabled(level *Level) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !level.IsGreaterOrEqual(h.threshold)
}

// GetLogger returns the named logger, creating it if necessary. Missing
// ancestors implied by its dotted name get ProvisionNode placeholders,
// not Loggers.
func (h *Hierarchy) GetLogger(name string) *Logger {
	if name == "" || name == "root" {
		return h.root
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	existing, ok := h.table[name]
	if ok {
		if logger, ok := existing.(*Logger); ok {
			return logger
		}
		node := existing.(*ProvisionNode)
		logger := newLogger(name, h)
		h.table[name] = logger
		h.updateParents(logger)
		h.updateChildren(node, logger)
		return logger
	}

	logger := newLogger(name, h)
	h.table[name] = logger
	h.updateParents(logger)
	return logger
}

// Exists returns the named logger without creating it, or nil.
func (h *Hierarchy) Exists(name string) *Logger {
	h.mu.Lock()
	defer h.mu.Unlock()
	if logger, ok := h.table[name].(*Logger); ok {
		return logger
	}
	return nil
}

// dottedAncestors yields name's dotted-prefix ancestors from nearest to
// furthest, e.g. "a.b.c" -> ["a.b", "a"].
func dottedAncestors(name string) []string {
	var out []string
	for {
		idx := strings.LastIndexByte(name, '.')
		if idx < 0 {
			return out
		}
		name = name[:idx]
		out = append(out, name)
	}
}

// isAncestorName reports whether candidate is name itself or a
// dotted-prefix ancestor of it (e.g. "a.b" is an ancestor of "a.b.c").
func isAncestorName(candidate, name string) bool {
	if candidate == name {
		return true
	}
	return strings.HasPrefix(name, candidate+".")
}

// updateParents walks up logger's dotted-name prefixes looking for an
// existing Logger to attach to. Each unseen prefix gets a fresh
// ProvisionNode recording logger as a pending child, and each existing
// ProvisionNode gets logger added to it. The walk stops at the first
// existing Logger, or falls back to the root.
func (h *Hierarchy) updateParents(logger *Logger) {
	for _, ancestorName := range dottedAncestors(logger.name) {
		existing, ok := h.table[ancestorName]
		if !ok {
			h.table[ancestorName] = newProvisionNode(logger)
			continue
		}
		if parent, ok := existing.(*Logger); ok {
			logger.setParent(parent)
			return
		}
		existing.(*ProvisionNode).addChild(logger)
	}
	logger.setParent(h.root)
}

// updateChildren reparents every child recorded on node whose current
// parent is neither the newly created logger nor one of its dotted-name
// descendants — i.e. every child that was, until now, skipping past logger's name to
// reach a more distant ancestor. A plain name-equality check would only
// catch children parented directly on the ProvisionNode's own
// (nonexistent) logger; the dotted-prefix check below is the one that
// actually guarantees GetLogger never leaves a reparentable child
// pointing past an intermediate logger that now exists.
func (h *Hierarchy) updateChildren(node *ProvisionNode, logger *Logger) {
	for _, child := range node.children {
		currentParent := child.Parent()
		if currentParent == nil || !isAncestorName(logger.name, currentParent.name) || currentParent.name == logger.name {
			child.setParent(logger)
		}
	}
}

// emitNoAppenderWarning fires the only-once "no appenders could be
// found" diagnostic the first time a log call finds no appender along
// its additive chain. ResetConfiguration clears the latch so a fresh
// configuration gets its own warning if it too leaves a logger
// appender-less.
func (h *Hierarchy) emitNoAppenderWarning(logger *Logger) {
	h.mu.Lock()
	if h.warnedNoApp {
		h.mu.Unlock()
		return
	}
	h.warnedNoApp = true
	h.mu.Unlock()
	internalWarn("no appenders could be found for logger (%s)", logger.name)
	internalWarn("please initialize the log4g system properly")
}

// Shutdown closes every appender reachable from every logger in the
// repository, including the root.
func (h *Hierarchy) Shutdown() {
	h.mu.Lock()
	loggers := make([]*Logger, 0, len(h.table)+1)
	loggers = append(loggers, h.root)
	for _, v := range h.table {
		if logger, ok := v.(*Logger); ok {
			loggers = append(loggers, logger)
		}
	}
	h.mu.Unlock()

	for _, logger := range loggers {
		logger.RemoveAllAppenders()
	}
}

// ResetConfiguration restores every logger to inherited level/additive
// defaults, detaches all appenders, and clears the no-appender warning
// latch so the next configuration gets a fresh chance to warn.
func (h *Hierarchy) ResetConfiguration() {
	h.mu.Lock()
	h.root.SetLevel(LevelDebug)
	h.warnedNoApp = false
	loggers := make([]*Logger, 0, len(h.table))
	for _, v := range h.table {
		if logger, ok := v.(*Logger); ok {
			loggers = append(loggers, logger)
		}
	}
	h.mu.Unlock()

	h.root.RemoveAllAppenders()
	for _, logger := range loggers {
		logger.RemoveAllAppenders()
		logger.SetLevel(nil)
		logger.SetAdditivity(true)
	}
}

// LoggerNames returns every named logger currently in the repository,
// in no particular order.
func (h *Hierarchy) LoggerNames() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	names := make([]string, 0, len(h.table))
	for name, v := range h.table {
		if _, ok := v.(*Logger); ok {
			names = append(names, name)
		}
	}
	return names
}
