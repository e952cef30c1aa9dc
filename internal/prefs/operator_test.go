package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/qslcard/internal/settings"
)

func TestOperatorRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	op := settings.OperatorSettings{Callsign: "HS0ZZZ", CQZone: "26", ITUZone: "49"}

	require.NoError(t, SaveOperator(op))
	got, err := LoadOperator()
	require.NoError(t, err)
	require.Equal(t, op, got)
}

func TestLoadOperatorMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	got, err := LoadOperator()
	require.NoError(t, err)
	require.Equal(t, settings.OperatorSettings{}, got)
}

func TestLoadOperatorUsesSettingsKeys(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "qslcard"), 0o755))
	data := []byte(`{"customCallsign":"JA1ABC","customCqZone":"25","customItuZone":"45"}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "qslcard", "operator.json"), data, 0o600))

	got, err := LoadOperator()
	require.NoError(t, err)
	require.Equal(t, "JA1ABC", got.Callsign)
	require.Equal(t, "25", got.CQZone)
	require.Equal(t, "45", got.ITUZone)
}
