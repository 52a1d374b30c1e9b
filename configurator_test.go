package log4g

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	require.NoError(t, w.Close())
	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}

func TestBasicConfiguratorEmitsOneLine(t *testing.T) {
	SetRepositorySelector(&defaultRepositorySelector{repo: NewHierarchy(LevelDebug)})

	out := captureStdout(t, func() {
		BasicConfigurator()
		RootLogger().Debug("hello")
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "hello")
	assert.Contains(t, lines[0], "DEBUG")
}

func TestXMLConfiguratorBuildsAppenders(t *testing.T) {
	SetRepositorySelector(&defaultRepositorySelector{repo: NewHierarchy(LevelDebug)})

	doc := `<configuration threshold="debug">
	  <appender name="console1" type="console">
	    <layout type="pattern"><property name="conversionPattern" value="%p %m%n"/></layout>
	  </appender>
	  <root><level value="INFO"/><appender name="console1"/></root>
	</configuration>`

	cfg := NewXMLConfigurator()
	err := cfg.Configure("<inline>", []byte(doc))
	require.NoError(t, err)

	root := RootLogger()
	assert.Equal(t, LevelInfo, root.Level())
	assert.Len(t, root.GetAllAppenders(), 1)
}

func TestXMLConfiguratorRejectsUnknownType(t *testing.T) {
	cfg := NewXMLConfigurator()
	err := cfg.Configure("<inline>", []byte(`<configuration><appender name="a" type="bogus"/></configuration>`))
	assert.Error(t, err)
}
