package export

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jask/qslcard/internal/card"
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

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{G: 0x80, A: 0xff})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func TestFileName(t *testing.T) {
	require.Equal(t, "QSL_W1AW_2024.png", FileName(sampleRecord(), ".png"))

	rec := sampleRecord()
	rec.Callsign = "HS0/W1AW"
	require.Equal(t, "QSL_HS0-W1AW_2024.adi", FileName(rec, ".adi"))
}

func TestExportWritesScaledPNG(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "out")
	e := &Exporter{Dir: dir, Scale: 2}

	res, err := e.Export(context.Background(), sampleRecord(), station)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "QSL_W1AW_2024.png"), res.ImagePath)
	require.False(t, res.Background)
	require.Empty(t, res.ADIFPath)

	f, err := os.Open(res.ImagePath)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	th := card.DefaultTheme()
	require.Equal(t, th.Width*2, cfg.Width)
	require.Equal(t, th.Height*2, cfg.Height)
	require.Equal(t, cfg.Width, res.Width)

	_, err = os.Stat(res.ImagePath + ".tmp")
	require.True(t, os.IsNotExist(err))
}

func TestExportUsesBackground(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	bgPath := filepath.Join(dir, "bg.png")
	writePNG(t, bgPath, 30, 20)

	e := &Exporter{Dir: dir, Scale: 1, Background: bgPath, ImageTimeout: time.Second}
	res, err := e.Export(context.Background(), sampleRecord(), station)
	require.NoError(t, err)
	require.True(t, res.Background)
}

func TestExportProceedsWithoutBackground(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	core, logs := observer.New(zap.WarnLevel)
	e := &Exporter{Dir: dir, Scale: 1, Background: filepath.Join(dir, "missing.jpg"), Logger: zap.New(core)}

	res, err := e.Export(context.Background(), sampleRecord(), station)
	require.NoError(t, err)
	require.False(t, res.Background)
	require.FileExists(t, res.ImagePath)
	require.Equal(t, 1, logs.FilterMessage("background skipped").Len())
}

func TestExportProceedsWithUndecodableBackground(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	bgPath := filepath.Join(dir, "bg.jpg")
	require.NoError(t, os.WriteFile(bgPath, []byte("not an image"), 0o644))

	e := &Exporter{Dir: dir, Background: bgPath}
	res, err := e.Export(context.Background(), sampleRecord(), station)
	require.NoError(t, err)
	require.False(t, res.Background)
}

func TestExportWritesADIF(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	e := &Exporter{Dir: dir, Scale: 1, WriteADIF: true}

	res, err := e.Export(context.Background(), sampleRecord(), station)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "QSL_W1AW_2024.adi"), res.ADIFPath)
	data, err := os.ReadFile(res.ADIFPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "<CALL:4>W1AW")
}

func TestExportFailsOnUnwritableDir(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	e := &Exporter{Dir: filepath.Join(blocker, "out")}
	_, err := e.Export(context.Background(), sampleRecord(), station)
	require.Error(t, err)
	require.Contains(t, err.Error(), "create export dir")
}

func TestLoadBackgroundEmptyPath(t *testing.T) {
	img, err := LoadBackground(context.Background(), "  ", time.Second)
	require.NoError(t, err)
	require.Nil(t, img)
}

func TestADIF(t *testing.T) {
	out := ADIF(sampleRecord(), station)
	for _, want := range []string{
		"<ADIF_VER:5>3.1.4",
		"<EOH>",
		"<CALL:4>W1AW",
		"<QSO_DATE:8>20240615",
		"<TIME_ON:4>1400",
		"<FREQ:6>14.250",
		"<MODE:3>SSB",
		"<RST_SENT:2>59",
		"<QSLMSG:7>TNX QSO",
		"<STATION_CALLSIGN:6>E26AFI",
		"<MY_CQ_ZONE:2>26",
		"<MY_ITU_ZONE:2>49",
		"<EOR>",
	} {
		require.Contains(t, out, want)
	}
	require.NotContains(t, out, "SUBMODE")
}

func TestADIFModesAndTimes(t *testing.T) {
	rec := sampleRecord()
	rec.Mode = "DSTAR"
	rec.UTC = "9:05 (Z)"
	out := ADIF(rec, station)
	require.Contains(t, out, "<MODE:12>DIGITALVOICE")
	require.Contains(t, out, "<SUBMODE:5>DSTAR")
	require.Contains(t, out, "<TIME_ON:4>0905")

	rec.Month = "Foo"
	rec.UTC = "soon"
	out = ADIF(rec, station)
	require.False(t, strings.Contains(out, "QSO_DATE"))
	require.False(t, strings.Contains(out, "TIME_ON"))
}
