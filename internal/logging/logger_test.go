package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"trace":   TRACE,
		"DEBUG":   DEBUG,
		"":        INFO,
		" warn ":  WARN,
		"warning": WARN,
		"Error":   ERROR,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestWriterLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger("registry", &buf, INFO)

	logger.Debug("скрытое сообщение")
	logger.Info("registered %d blocks", 2)
	logger.Error("boom")

	out := buf.String()
	assert.NotContains(t, out, "скрытое сообщение")
	assert.Contains(t, out, "[INFO] [registry] registered 2 blocks")
	assert.Contains(t, out, "[ERROR] [registry] boom")
}

func TestDefaultLogger_Swap(t *testing.T) {
	var buf bytes.Buffer
	prev := current()
	SetDefaultLogger(NewWriterLogger("", &buf, DEBUG))
	defer SetDefaultLogger(prev)

	Debug("tick %d", 7)
	Trace("не должно попасть")

	assert.Contains(t, buf.String(), "[DEBUG] tick 7")
	assert.NotContains(t, buf.String(), "не должно попасть")
}

func TestNewLogger_WritesFile(t *testing.T) {
	dir := t.TempDir()
	Configure(dir, ERROR, DEBUG)
	defer Configure("logs", INFO, DEBUG)

	logger, err := NewLogger("world")
	require.NoError(t, err)

	logger.Debug("chunk generated")
	require.NoError(t, logger.Close())
	// Повторное закрытие безопасно
	require.NoError(t, logger.Close())

	files, err := filepath.Glob(filepath.Join(dir, "world_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "[DEBUG] [world] chunk generated"))
}

func TestLoggerManager_ReusesLoggers(t *testing.T) {
	created := 0
	lm := NewLoggerManager(func(component string) (*Logger, error) {
		created++
		return NewWriterLogger(component, &bytes.Buffer{}, INFO), nil
	})

	a := lm.MustGetLogger("assets")
	b := lm.MustGetLogger("assets")
	lm.MustGetLogger("api")

	assert.Same(t, a, b)
	assert.Equal(t, 2, created)
	assert.Equal(t, []string{"api", "assets"}, lm.ListComponents())

	require.NoError(t, lm.SetLogLevel("api", ERROR, ERROR))
	assert.Error(t, lm.SetLogLevel("missing", ERROR, ERROR))

	require.NoError(t, lm.CloseAll())
	assert.Empty(t, lm.ListComponents())
}
