package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Out: &buf})
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	require.Zero(t, buf.Len(), "info is below warn")

	logger.Warn().Str("round", "r1").Msg("visible")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "warn", line["level"])
	require.Equal(t, "r1", line["round"])
	require.Equal(t, "visible", line["message"])
	require.Contains(t, line, "time")
}

func TestNewConsole(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Out: &buf})
	require.NoError(t, err)
	logger.Info().Msg("hello")
	require.Contains(t, buf.String(), "hello")
	require.NotContains(t, buf.String(), `"message"`)
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := New(Options{Format: "xml"})
	require.ErrorContains(t, err, "unknown log format")

	_, err = New(Options{Level: "loud"})
	require.ErrorContains(t, err, "parse log level")
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	require.NoError(t, SetLevel("debug"))
	require.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	require.NoError(t, SetLevel(""))
	require.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
