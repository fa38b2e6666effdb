package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	level, ok := ParseLevel("DEBUG")
	require.True(t, ok)
	require.Equal(t, slog.LevelDebug, level)

	level, ok = ParseLevel(" warn ")
	require.True(t, ok)
	require.Equal(t, slog.LevelWarn, level)

	level, ok = ParseLevel("verbose")
	require.False(t, ok)
	require.Equal(t, slog.LevelInfo, level)
}

func TestWith_CarriesAttributes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ToContext(context.Background(), New(&buf, slog.LevelInfo))
	ctx = With(ctx, "requestID", "abc")

	InfoFromContext(ctx, "hello", "n", 1)
	FromContext(ctx).Debug("dropped")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "hello", entry["msg"])
	require.Equal(t, "abc", entry["requestID"])
	require.EqualValues(t, 1, entry["n"])
	require.Contains(t, entry, "time")
}

func TestFromContext_FallsBackToGlobal(t *testing.T) {
	t.Parallel()
	require.Same(t, L, FromContext(context.Background()))
}
