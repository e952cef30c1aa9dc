package testdata

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/qslcard/internal/database"
	"github.com/jask/qslcard/internal/database/repository"
	"github.com/jask/qslcard/internal/qso"
	"github.com/jask/qslcard/internal/service"
)

func TestSeedInsertsValidCards(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenMigrated(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	cards := repository.NewCardRepo(db)

	require.NoError(t, Seed(ctx, cards, "HS0ZZZ", 12, 42))

	n, err := cards.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 12, n)

	list, err := cards.List(ctx, 0)
	require.NoError(t, err)
	for _, c := range list {
		rec := service.RecordFromCard(c)
		for _, step := range qso.InputSteps() {
			require.Empty(t, qso.ValidateStep(step, rec), "card %s step %s", c.ID, step.Title())
		}
		require.Equal(t, "HS0ZZZ", c.OperatorCallsign)
		require.Contains(t, c.UTC, qso.ZuluMarker)
	}
}
