package log4g

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextDoesNotImplicitlyCrossGoroutines(t *testing.T) {
	defer ClearContext()
	MDCPut("tenant", "acme")

	var seen interface{}
	var ok bool
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		seen, ok = MDCGet("tenant")
	}()
	wg.Wait()

	assert.False(t, ok)
	assert.Nil(t, seen)
}

func TestSnapshotAndInheritContextCarriesMDCAndNDC(t *testing.T) {
	defer ClearContext()
	MDCPut("tenant", "acme")
	NDCPush("request-1")
	defer NDCClear()

	snapshot := SnapshotContext(context.Background())

	var tenant interface{}
	var ok bool
	var ndc string
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer ClearContext()
		InheritContext(snapshot)
		tenant, ok = MDCGet("tenant")
		ndc = NDCGet()
	}()
	wg.Wait()

	require.True(t, ok)
	assert.Equal(t, "acme", tenant)
	assert.Equal(t, "request-1", ndc)
}
