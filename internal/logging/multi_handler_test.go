package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		slog.NewJSONHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)

	logger := slog.New(h)
	logger.Info("hello", "key", "value")

	assert.Contains(t, a.String(), `"msg":"hello"`)
	assert.Contains(t, b.String(), `"msg":"hello"`)
}

func TestMultiHandlerRespectsLevels(t *testing.T) {
	var info, errOnly bytes.Buffer
	h := NewMultiHandler(
		slog.NewJSONHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&errOnly, &slog.HandlerOptions{Level: slog.LevelError}),
	)

	require.True(t, h.Enabled(context.Background(), slog.LevelInfo))

	logger := slog.New(h)
	logger.Info("routine")
	logger.Error("broken")

	assert.Equal(t, 2, strings.Count(info.String(), "\n"))
	assert.Equal(t, 1, strings.Count(errOnly.String(), "\n"))
	assert.NotContains(t, errOnly.String(), "routine")
}
