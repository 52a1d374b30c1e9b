package log4g

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNDCRoundTrip(t *testing.T) {
	defer NDCClear()
	NDCClear()

	NDCPush("foo")
	NDCPush("bar")
	NDCPush("baz")

	require.Equal(t, "foo bar baz", NDCGet())
	require.Equal(t, 3, NDCSize())

	clone := NDCClone()
	NDCPush("extra")
	assert.Equal(t, []string{"foo", "bar", "baz"}, clone)

	NDCPop()
	NDCSetMaxDepth(1)
	assert.Equal(t, 1, NDCSize())
	assert.Equal(t, "foo", NDCGet())

	NDCClear()
	assert.Equal(t, "", NDCGet())
	assert.Equal(t, 0, NDCSize())
}

func TestMDCPutGetRemove(t *testing.T) {
	defer MDCClear()
	MDCClear()

	MDCPut("request_id", "abc-123")
	v, ok := MDCGet("request_id")
	require.True(t, ok)
	assert.Equal(t, "abc-123", v)

	MDCRemove("request_id")
	_, ok = MDCGet("request_id")
	assert.False(t, ok)
}
