package log4g

import (
	"bytes"
	"context"
	"runtime"
	"strconv"
	"sync"
)

// Go has no OS-thread-local storage and no implicit per-goroutine context,
// unlike the pthread TLS the original C implementation relies on for MDC
// and NDC. goroutineID recovers a stable-for-the-goroutine's-lifetime
// label by parsing the header line of runtime.Stack, the standard
// workaround reached for by goroutine-local logging shims in the absence
// of a runtime-exposed id. It is used as the map key for implicit MDC and
// NDC storage and for thread names, and it appears in the default
// "goroutine-<id>" thread label that events carry.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

var threadNames sync.Map // goroutine id (uint64) -> string

// SetThreadName gives the calling goroutine a display name for the
// pattern layout's %t converter, in place of the default
// "goroutine-<id>" label. Initialize uses this to apply
// --log4g-main-thread to whichever goroutine calls it.
func SetThreadName(name string) {
	threadNames.Store(goroutineID(), name)
}

func currentTaskLabel() string {
	id := goroutineID()
	if name, ok := threadNames.Load(id); ok {
		return name.(string)
	}
	return "goroutine-" + strconv.FormatUint(id, 10)
}

// taskContext holds the per-task MDC map and NDC stack, implicitly created
// on first use by a goroutine and torn down explicitly by ClearContext
// (lifecycle: "implicit-create on first put, destroyed when the task
// ends" — Go has no task-end hook, so callers that spawn short-lived
// goroutines should defer ClearContext to avoid unbounded growth of the
// registry).
type taskContext struct {
	mu      sync.RWMutex
	mdc     map[string]interface{}
	ndc     []string
	maxNDC  int
}

var taskRegistry sync.Map // goroutine id (uint64) -> *taskContext

func currentTask(create bool) *taskContext {
	id := goroutineID()
	if v, ok := taskRegistry.Load(id); ok {
		return v.(*taskContext)
	}
	if !create {
		return nil
	}
	tc := &taskContext{}
	actual, _ := taskRegistry.LoadOrStore(id, tc)
	return actual.(*taskContext)
}

// ClearContext destroys the calling goroutine's MDC and NDC. Call this
// before a pooled goroutine (worker pool, connection handler) returns to
// its pool to avoid leaking per-task state across reuse.
func ClearContext() {
	taskRegistry.Delete(goroutineID())
}

// ctxKey is the context.Context key type for the explicit carrier variant
// used when a task's diagnostic context must cross a goroutine boundary
// (implicit inheritance across `go func(){}()` is impossible in Go
// without an explicit handoff, which is exactly what SnapshotContext and
// InheritContext provide).
type ctxKey struct{}

type contextSnapshot struct {
	mdc map[string]interface{}
	ndc []string
}

// InheritContext copies the MDC and NDC from ctx (if present, via a
// snapshot taken with SnapshotContext) into the calling goroutine's task
// context, replacing whatever was there. This is the Go realization of
// the original's "child calls inherit(snapshot)".
func InheritContext(ctx context.Context) {
	snap, ok := ctx.Value(ctxKey{}).(*contextSnapshot)
	if !ok || snap == nil {
		return
	}
	tc := currentTask(true)
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.mdc = cloneMap(snap.mdc)
	tc.ndc = append([]string(nil), snap.ndc...)
}

// SnapshotContext returns a context.Context carrying a snapshot of the
// calling goroutine's current MDC and NDC, for handoff to a child
// goroutine via InheritContext.
func SnapshotContext(ctx context.Context) context.Context {
	tc := currentTask(false)
	snap := &contextSnapshot{}
	if tc != nil {
		tc.mu.RLock()
		snap.mdc = cloneMap(tc.mdc)
		snap.ndc = append([]string(nil), tc.ndc...)
		tc.mu.RUnlock()
	}
	return context.WithValue(ctx, ctxKey{}, snap)
}

func cloneMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
