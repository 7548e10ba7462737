package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jask/pokedex/internal/config"
)

func TestNewEmptyPathIsNop(t *testing.T) {
	t.Parallel()
	logger, err := New(config.LogConfig{}, true)
	require.NoError(t, err)
	logger.Info("dropped")
	assert.NotNil(t, logger)
}

func TestNewWritesJSONLines(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "state", "pokedex.log")
	logger, err := New(config.LogConfig{Path: path, Level: "warn"}, false)
	require.NoError(t, err)

	logger.Info("filtered out")
	logger.Warn("kept", zap.String("operation", "pokemon"))
	_ = logger.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "pokemon", entry["operation"])
	assert.Contains(t, entry, "ts")
}

func TestVerboseForcesDebug(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "pokedex.log")
	logger, err := New(config.LogConfig{Path: path, Level: "error"}, true)
	require.NoError(t, err)
	logger.Debug("debug line")
	_ = logger.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "debug line")
}

func TestRotateIfNeeded(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "pokedex.log")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 64)), 0o644))
	require.NoError(t, os.WriteFile(path+".old", []byte("previous"), 0o644))

	RotateIfNeeded(path, 128)
	_, err := os.Stat(path)
	require.NoError(t, err, "small file must stay in place")

	RotateIfNeeded(path, 32)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	old, err := os.ReadFile(path + ".old")
	require.NoError(t, err)
	assert.Len(t, old, 64)
}
