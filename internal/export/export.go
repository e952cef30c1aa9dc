// Package export turns a finalized QSO record into files on disk: the card PNG
// and, optionally, an ADIF log entry beside it.
package export

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/jask/qslcard/internal/card"
	"github.com/jask/qslcard/internal/qso"
	"github.com/jask/qslcard/internal/settings"
)

// DefaultScale is the pixel scale of exported cards.
const DefaultScale = 2

// Exporter writes cards into Dir.
type Exporter struct {
	Dir          string
	Scale        int
	Theme        card.Theme
	Background   string
	ImageTimeout time.Duration
	WriteADIF    bool
	Logger       *zap.Logger
}

// Result describes what Export wrote.
type Result struct {
	ImagePath  string
	ADIFPath   string
	Background bool
	Width      int
	Height     int
}

// Export lays out, rasterizes and writes the card for rec. A background image
// that is missing, unreadable or too slow to load is skipped; every other
// failure is returned.
func (e *Exporter) Export(ctx context.Context, rec qso.Record, op settings.OperatorSettings) (Result, error) {
	log := e.logger()
	theme := e.Theme
	if theme.Width == 0 {
		theme = card.DefaultTheme()
	}
	scale := e.Scale
	if scale < 1 {
		scale = DefaultScale
	}

	var res Result
	bg, err := LoadBackground(ctx, e.Background, e.ImageTimeout)
	switch {
	case err != nil:
		log.Warn("background skipped", zap.String("path", e.Background), zap.Error(err))
	case bg != nil:
		res.Background = true
	}

	img, err := card.Draw(card.Layout(rec, op, theme), scale, bg)
	if err != nil {
		return Result{}, errors.Wrap(err, "rasterize card")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Result{}, errors.Wrap(err, "encode png")
	}

	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return Result{}, errors.Wrap(err, "create export dir")
	}
	res.ImagePath = filepath.Join(e.Dir, FileName(rec, ".png"))
	if err := writeFile(res.ImagePath, buf.Bytes()); err != nil {
		return Result{}, errors.Wrap(err, "write card")
	}
	res.Width, res.Height = img.Bounds().Dx(), img.Bounds().Dy()

	if e.WriteADIF {
		res.ADIFPath = filepath.Join(e.Dir, FileName(rec, ".adi"))
		if err := writeFile(res.ADIFPath, []byte(ADIF(rec, op))); err != nil {
			return Result{}, errors.Wrap(err, "write adif")
		}
	}

	log.Info("card exported",
		zap.String("callsign", rec.Callsign),
		zap.String("path", res.ImagePath),
		zap.Bool("background", res.Background),
		zap.Int("width", res.Width),
		zap.Int("height", res.Height))
	return res, nil
}

func (e *Exporter) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// FileName returns QSL_<callsign>_<year><ext>. Characters that are unsafe
// in file names (the "/" of portable callsigns, for one) become "-".
func FileName(rec qso.Record, ext string) string {
	call := unsafeName.ReplaceAllString(strings.TrimSpace(rec.Callsign), "-")
	year := unsafeName.ReplaceAllString(strings.TrimSpace(rec.Year), "-")
	return "QSL_" + call + "_" + year + ext
}

// LoadBackground decodes the image at path, giving up after timeout. An empty
// path returns (nil, nil).
func LoadBackground(ctx context.Context, path string, timeout time.Duration) (image.Image, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type result struct {
		img image.Image
		err error
	}
	done := make(chan result, 1)
	go func() {
		f, err := os.Open(path)
		if err != nil {
			done <- result{err: err}
			return
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		done <- result{img: img, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, errors.Wrap(r.err, "load background")
		}
		return r.img, nil
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "load background")
	}
}

func writeFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
