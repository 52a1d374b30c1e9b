package log4g

import "sync"

// RepositorySelector chooses which Hierarchy backs a given logger
// lookup. The default selector always returns the same Hierarchy; an
// application embedding multiple independent logging domains (e.g. a
// multi-tenant server) can install its own selector that picks a
// Hierarchy per tenant.
type RepositorySelector interface {
	SelectRepository() *Hierarchy
}

type defaultRepositorySelector struct {
	repo *Hierarchy
}

func (s *defaultRepositorySelector) SelectRepository() *Hierarchy { return s.repo }

var (
	managerMu sync.RWMutex
	selector  RepositorySelector // built on first use by GetRepository
)

// SetRepositorySelector replaces the process-wide repository selector.
func SetRepositorySelector(s RepositorySelector) {
	managerMu.Lock()
	defer managerMu.Unlock()
	selector = s
}

// GetRepository returns the currently selected Hierarchy, installing the
// default selector (one Hierarchy with root at DEBUG) on first use.
func GetRepository() *Hierarchy {
	managerMu.RLock()
	s := selector
	managerMu.RUnlock()
	if s == nil {
		managerMu.Lock()
		if selector == nil {
			selector = &defaultRepositorySelector{repo: NewHierarchy(LevelDebug)}
		}
		s = selector
		managerMu.Unlock()
	}
	return s.SelectRepository()
}

// GetLogger returns the named logger from the current repository,
// creating it as needed.
func GetLogger(name string) *Logger {
	return GetRepository().GetLogger(name)
}

// RootLogger returns the root logger of the current repository.
func RootLogger() *Logger {
	return GetRepository().Root()
}

// Shutdown closes every appender in the current repository.
func Shutdown() {
	GetRepository().Shutdown()
}

// ResetConfiguration resets every logger in the current repository to
// its inherited defaults and detaches all appenders.
func ResetConfiguration() {
	GetRepository().ResetConfiguration()
}
