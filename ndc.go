package log4g

import "strings"

// NDCPush appends a string to the calling goroutine's nested diagnostic
// context stack.
func NDCPush(message string) {
	tc := currentTask(true)
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.ndc = append(tc.ndc, message)
	if tc.maxNDC > 0 && len(tc.ndc) > tc.maxNDC {
		tc.ndc = tc.ndc[:tc.maxNDC]
	}
}

// NDCPop removes and returns the top of the stack, or "" if empty.
func NDCPop() string {
	tc := currentTask(false)
	if tc == nil {
		return ""
	}
	tc.mu.Lock()
	defer tc.mu.Unlock()
	if len(tc.ndc) == 0 {
		return ""
	}
	last := tc.ndc[len(tc.ndc)-1]
	tc.ndc = tc.ndc[:len(tc.ndc)-1]
	return last
}

// NDCPeek returns the top of the stack without removing it, or "" if empty.
func NDCPeek() string {
	tc := currentTask(false)
	if tc == nil {
		return ""
	}
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	if len(tc.ndc) == 0 {
		return ""
	}
	return tc.ndc[len(tc.ndc)-1]
}

// NDCSize returns the number of entries currently on the stack.
func NDCSize() int {
	tc := currentTask(false)
	if tc == nil {
		return 0
	}
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return len(tc.ndc)
}

// NDCClear empties the stack.
func NDCClear() {
	tc := currentTask(false)
	if tc == nil {
		return
	}
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.ndc = nil
}

// NDCSetMaxDepth truncates the stack to at most depth entries, keeping
// the oldest (bottom) entries, and caps future pushes at that depth.
func NDCSetMaxDepth(depth int) {
	tc := currentTask(true)
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.maxNDC = depth
	if depth > 0 && len(tc.ndc) > depth {
		tc.ndc = tc.ndc[:depth]
	}
}

// NDCGet returns the space-joined concatenation of the stack, or "" if
// empty.
func NDCGet() string {
	tc := currentTask(false)
	if tc == nil {
		return ""
	}
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	if len(tc.ndc) == 0 {
		return ""
	}
	return strings.Join(tc.ndc, " ")
}

// NDCClone returns an independent deep copy of the calling goroutine's
// stack, for explicit hand-off to a child task alongside SnapshotContext.
func NDCClone() []string {
	tc := currentTask(false)
	if tc == nil {
		return nil
	}
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return append([]string(nil), tc.ndc...)
}

// ndcGet is the internal accessor used when building a LoggingEvent; it
// never creates a task context as a side effect.
func ndcGet() string {
	return NDCGet()
}
