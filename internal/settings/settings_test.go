package settings

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/qslcard/internal/database"
	"github.com/jask/qslcard/internal/database/repository"
)

func TestComplete(t *testing.T) {
	cases := []struct {
		name string
		in   OperatorSettings
		want bool
	}{
		{"all set", OperatorSettings{"E26AFI", "26", "49"}, true},
		{"no callsign", OperatorSettings{"", "26", "49"}, false},
		{"blank cq", OperatorSettings{"E26AFI", "  ", "49"}, false},
		{"no itu", OperatorSettings{"E26AFI", "26", ""}, false},
		{"empty", OperatorSettings{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.in.Complete())
		})
	}
}

func TestLoadEmptyStore(t *testing.T) {
	store := NewStore(NewMemoryKV())
	op, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, OperatorSettings{}, op)
	require.False(t, op.Complete())
}

func TestSaveNormalizes(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryKV())

	saved, err := store.Save(ctx, OperatorSettings{Callsign: " e26afi ", CQZone: " 26", ITUZone: "49 "})
	require.NoError(t, err)
	require.Equal(t, OperatorSettings{"E26AFI", "26", "49"}, saved)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, saved, loaded)
}

func TestSaveRejectsIncomplete(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	store := NewStore(kv)

	_, err := store.Save(ctx, OperatorSettings{Callsign: "E26AFI", CQZone: "26"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, "settings", verr.Field)

	_, ok, _ := kv.Get(ctx, KeyCallsign)
	require.False(t, ok, "nothing is written when validation fails")
}

func TestSaveRejectsZonesOutOfRange(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryKV())

	_, err := store.Save(ctx, OperatorSettings{Callsign: "E26AFI", CQZone: "41", ITUZone: "49"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, "cqZone", verr.Field)

	_, err = store.Save(ctx, OperatorSettings{Callsign: "E26AFI", CQZone: "26", ITUZone: "abc"})
	require.True(t, errors.As(err, &verr))
	require.Equal(t, "ituZone", verr.Field)

	_, err = store.Save(ctx, OperatorSettings{Callsign: "E26AFI", CQZone: "40", ITUZone: "90"})
	require.NoError(t, err)
}

func TestStoreOverSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenMigrated(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := NewStore(repository.NewSettingsRepo(db))
	_, err = store.Save(ctx, OperatorSettings{Callsign: "e26afi", CQZone: "26", ITUZone: "49"})
	require.NoError(t, err)

	reopened := NewStore(repository.NewSettingsRepo(db))
	op, err := reopened.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, OperatorSettings{"E26AFI", "26", "49"}, op)
}
