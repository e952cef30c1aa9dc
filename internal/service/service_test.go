package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/qslcard/internal/database"
	"github.com/jask/qslcard/internal/database/repository"
	"github.com/jask/qslcard/internal/export"
	"github.com/jask/qslcard/internal/qso"
	"github.com/jask/qslcard/internal/settings"
)

var station = settings.OperatorSettings{Callsign: "E26AFI", CQZone: "26", ITUZone: "49"}

func sampleRecord() qso.Record {
	return qso.Record{
		Callsign: "W1AW", Day: "15", Month: "Jun", Year: "2024", UTC: "14:00 (Z)",
		MHz: "14.250", RST: "59", Mode: "SSB", QSL: "TNX QSO",
	}
}

type fakeExporter struct {
	calls []qso.Record
	err   error
}

func (f *fakeExporter) Export(_ context.Context, rec qso.Record, _ settings.OperatorSettings) (export.Result, error) {
	f.calls = append(f.calls, rec)
	if f.err != nil {
		return export.Result{}, f.err
	}
	return export.Result{ImagePath: "/cards/" + export.FileName(rec, ".png")}, nil
}

func setup(t *testing.T) (*Issuer, *fakeExporter, *MaintenanceService) {
	t.Helper()
	db, err := database.OpenMigrated(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	fx := &fakeExporter{}
	return &Issuer{Cards: repository.NewCardRepo(db), Exporter: fx}, fx, &MaintenanceService{DB: db}
}

func TestIssueRecordsHistory(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	issuer, fx, _ := setup(t)

	res, err := issuer.Issue(ctx, sampleRecord(), station)
	require.NoError(t, err)
	require.NotEmpty(t, res.ID)
	require.Equal(t, "/cards/QSL_W1AW_2024.png", res.Export.ImagePath)
	require.Len(t, fx.calls, 1)

	recent, err := issuer.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Equal(t, res.ID, recent[0].ID)
	require.Equal(t, "E26AFI", recent[0].OperatorCallsign)
	require.Equal(t, sampleRecord(), RecordFromCard(recent[0]))
}

func TestIssueRefusesIncompleteSettings(t *testing.T) {
	t.Parallel()
	issuer, fx, _ := setup(t)
	_, err := issuer.Issue(context.Background(), sampleRecord(), settings.OperatorSettings{Callsign: "E26AFI"})
	require.ErrorIs(t, err, qso.ErrSettingsIncomplete)
	require.Empty(t, fx.calls)
}

func TestIssueSurfacesExportError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	issuer, fx, _ := setup(t)
	boom := errors.New("disk full")
	fx.err = boom

	_, err := issuer.Issue(ctx, sampleRecord(), station)
	require.ErrorIs(t, err, boom)

	recent, err := issuer.Recent(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, recent)
}

func TestReissue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	issuer, fx, _ := setup(t)

	first, err := issuer.Issue(ctx, sampleRecord(), station)
	require.NoError(t, err)
	again, err := issuer.Reissue(ctx, first.ID, station)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, again.ID)
	require.Len(t, fx.calls, 2)
	require.Equal(t, fx.calls[0], fx.calls[1])

	_, err = issuer.Reissue(ctx, "missing", station)
	require.Error(t, err)
}

func TestClearHistory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	issuer, _, maint := setup(t)

	_, err := issuer.Issue(ctx, sampleRecord(), station)
	require.NoError(t, err)
	require.NoError(t, maint.ClearHistory(ctx))

	n, err := issuer.Cards.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	require.Error(t, (&MaintenanceService{}).ClearHistory(ctx))
}
