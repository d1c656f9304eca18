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
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "studyplan.log")

	logger, err := New(Config{Level: "info", File: path})
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("quiz submitted", zap.Int("score", 4))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "quiz submitted", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, float64(4), entry["score"])
	assert.Contains(t, entry, "time")
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(Config{Level: "chatty", File: filepath.Join(t.TempDir(), "x.log")})
	assert.Error(t, err)

	l, err := NewOrNop(Config{Level: "chatty"})
	assert.Error(t, err)
	assert.NotNil(t, l)
}

func TestDefaultLogPath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	p, err := DefaultLogPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/state", "studyplan", "studyplan.log"), p)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("STUDYPLAN_LOG_LEVEL", " DEBUG ")
	t.Setenv("STUDYPLAN_LOG_FILE", "/tmp/sp.log")

	cfg := ConfigFromEnv()
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "/tmp/sp.log", cfg.File)
	assert.False(t, cfg.Verbose)
}
