package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "kanban.log")

	logger, closer, err := Open(path, slog.LevelInfo)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Error("fetch failed", "endpoint", "http://example.test")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fetch failed")
	assert.Contains(t, string(data), "endpoint=http://example.test")
	assert.NotContains(t, string(data), "hidden")
}

func TestOpen_EmptyPathDiscards(t *testing.T) {
	logger, closer, err := Open("", slog.LevelDebug)

	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.NotPanics(t, func() { logger.Info("dropped") })
	assert.NoError(t, closer.Close())
}

func TestOpen_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, _, err := Open(filepath.Join(blocker, "kanban.log"), slog.LevelInfo)

	assert.Error(t, err)
}
