package log4g

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnlyOnceErrorHandlerFiresOnce(t *testing.T) {
	f, err := os.CreateTemp("", "errhandler-*.log")
	require.NoError(t, err)
	defer os.Remove(f.Name())

	h := &OnlyOnceErrorHandler{out: f}
	h.Error(nil, "first failure: %s", "disk full")
	h.Error(nil, "second failure: %s", "disk full again")

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)

	assert.Contains(t, string(data), "first failure")
	assert.NotContains(t, string(data), "second failure")
}
