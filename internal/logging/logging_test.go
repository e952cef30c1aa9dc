package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "qslcard.log")
	logger, err := New(path, "debug")
	require.NoError(t, err)

	logger.Info("card exported")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "card exported")
}

func TestNewEmptyPathIsNop(t *testing.T) {
	logger, err := New("", "info")
	require.NoError(t, err)
	require.NotNil(t, logger)
	logger.Info("dropped")
}

func TestNewBadLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qslcard.log")
	logger, err := New(path, "loud")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "hidden")
	require.Contains(t, string(data), "shown")
}
