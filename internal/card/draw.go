package card

import (
	"image"
	"image/color"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	fontsOnce   sync.Once
	regularFont *opentype.Font
	boldFont    *opentype.Font
	fontsErr    error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		regularFont, fontsErr = opentype.Parse(goregular.TTF)
		if fontsErr != nil {
			fontsErr = errors.Wrap(fontsErr, "parse regular font")
			return
		}
		boldFont, fontsErr = opentype.Parse(gobold.TTF)
		if fontsErr != nil {
			fontsErr = errors.Wrap(fontsErr, "parse bold font")
		}
	})
	return fontsErr
}

// column widths as shares of the table width, in Layout order
var columnWeights = []float64{2.2, 2.4, 1.3, 1.2, 0.8, 1.5, 1.8}

// logical geometry
const (
	countryY       = 58
	zoneY          = 96
	callsignY      = 215
	tableMargin    = 30
	tableHeaderH   = 40
	tableSubH      = 28
	tableRowH      = 64
	tableBottomGap = 36
)

type painter struct {
	img   *image.RGBA
	scale int
}

// Draw rasterizes c at scale times its logical size. bg may be nil; when set
// it is scaled to cover the card before anything else is drawn.
func Draw(c Card, scale int, bg image.Image) (*image.RGBA, error) {
	if scale < 1 {
		scale = 1
	}
	if err := loadFonts(); err != nil {
		return nil, err
	}
	th := c.Theme
	if th.Width == 0 || th.Height == 0 {
		th = DefaultTheme()
	}
	w, h := th.Width*scale, th.Height*scale
	p := &painter{img: image.NewRGBA(image.Rect(0, 0, w, h)), scale: scale}

	draw.Draw(p.img, p.img.Bounds(), image.NewUniform(mustColor(th.Background)), image.Point{}, draw.Src)
	if bg != nil {
		draw.CatmullRom.Scale(p.img, coverRect(bg.Bounds(), p.img.Bounds()), bg, bg.Bounds(), draw.Over, nil)
	}

	if err := p.centered(c.Country, boldFont, 34, 0, th.Width, countryY, mustColor(th.Header)); err != nil {
		return nil, err
	}
	if err := p.centered(c.ZoneLine, regularFont, 20, 0, th.Width, zoneY, mustColor(th.Header)); err != nil {
		return nil, err
	}
	if err := p.centered(c.OperatorCallsign, boldFont, 88, 0, th.Width, callsignY, mustColor(th.Callsign)); err != nil {
		return nil, err
	}
	if err := p.table(c.Columns, th); err != nil {
		return nil, err
	}
	return p.img, nil
}

// coverRect returns the largest rect with src's aspect ratio that covers dst,
// centered on dst.
func coverRect(src, dst image.Rectangle) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	dw, dh := dst.Dx(), dst.Dy()
	if sw == 0 || sh == 0 {
		return dst
	}
	w, h := dw, sh*dw/sw
	if h < dh {
		w, h = sw*dh/sh, dh
	}
	x := dst.Min.X + (dw-w)/2
	y := dst.Min.Y + (dh-h)/2
	return image.Rect(x, y, x+w, y+h)
}

func (p *painter) table(cols []Column, th Theme) error {
	top := th.Height - tableBottomGap - tableHeaderH - tableSubH - tableRowH
	left, right := tableMargin, th.Width-tableMargin
	bottom := th.Height - tableBottomGap
	line := mustColor(th.TableLine)
	text := mustColor(th.Text)

	p.fill(left, top, right, bottom, mustColor(th.TableFill))

	total := 0.0
	for _, wgt := range columnWeights[:len(cols)] {
		total += wgt
	}
	x := float64(left)
	subTop := top + tableHeaderH
	rowTop := subTop + tableSubH
	for i, col := range cols {
		cw := float64(right-left) * columnWeights[i] / total
		x0, x1 := int(x), int(x+cw)
		if i == len(cols)-1 {
			x1 = right
		}
		if err := p.fitted(col.Header, boldFont, 14, x0, x1, top+tableHeaderH/2+5, text); err != nil {
			return err
		}
		if len(col.Sub) > 0 {
			if err := p.split(col.Sub, regularFont, 11, x0, x1, subTop+tableSubH/2+4, text); err != nil {
				return err
			}
			if err := p.split(col.Values, boldFont, 18, x0, x1, rowTop+tableRowH/2+6, text); err != nil {
				return err
			}
		} else if len(col.Values) > 0 {
			if err := p.fitted(col.Values[0], boldFont, 18, x0, x1, rowTop+tableRowH/2+6, text); err != nil {
				return err
			}
		}
		if i > 0 {
			p.vline(x0, top, bottom, line)
		}
		x += cw
	}

	p.hline(left, right, top, line)
	p.hline(left, right, subTop, line)
	p.hline(left, right, rowTop, line)
	p.hline(left, right, bottom, line)
	p.vline(left, top, bottom, line)
	p.vline(right, top, bottom, line)
	return nil
}

// split spreads values evenly across [x0, x1).
func (p *painter) split(values []string, f *opentype.Font, size float64, x0, x1, baseline int, c color.Color) error {
	if len(values) == 0 {
		return nil
	}
	step := (x1 - x0) / len(values)
	for i, v := range values {
		if err := p.fitted(v, f, size, x0+i*step, x0+(i+1)*step, baseline, c); err != nil {
			return err
		}
	}
	return nil
}

// fitted draws s centered in [x0, x1), shrinking the font until it fits.
func (p *painter) fitted(s string, f *opentype.Font, size float64, x0, x1, baseline int, c color.Color) error {
	const minSize = 7
	avail := fixed.I((x1 - x0 - 8) * p.scale)
	for ; size > minSize; size-- {
		face, err := p.face(f, size)
		if err != nil {
			return err
		}
		fits := font.MeasureString(face, s) <= avail
		_ = face.Close()
		if fits {
			break
		}
	}
	return p.centered(s, f, size, x0, x1, baseline, c)
}

func (p *painter) centered(s string, f *opentype.Font, size float64, x0, x1, baseline int, c color.Color) error {
	if s == "" {
		return nil
	}
	face, err := p.face(f, size)
	if err != nil {
		return err
	}
	defer face.Close()
	d := &font.Drawer{Dst: p.img, Src: image.NewUniform(c), Face: face}
	width := d.MeasureString(s)
	mid := fixed.I((x0 + x1) * p.scale / 2)
	d.Dot = fixed.Point26_6{X: mid - width/2, Y: fixed.I(baseline * p.scale)}
	d.DrawString(s)
	return nil
}

func (p *painter) face(f *opentype.Font, size float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size * float64(p.scale),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "font face %.0fpt", size)
	}
	return face, nil
}

func (p *painter) fill(x0, y0, x1, y1 int, c color.Color) {
	r := image.Rect(x0*p.scale, y0*p.scale, x1*p.scale, y1*p.scale)
	draw.Draw(p.img, r, image.NewUniform(c), image.Point{}, draw.Over)
}

func (p *painter) hline(x0, x1, y int, c color.Color) {
	r := image.Rect(x0*p.scale, y*p.scale, x1*p.scale, y*p.scale+p.scale)
	draw.Draw(p.img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func (p *painter) vline(x, y0, y1 int, c color.Color) {
	r := image.Rect(x*p.scale, y0*p.scale, x*p.scale+p.scale, y1*p.scale)
	draw.Draw(p.img, r, image.NewUniform(c), image.Point{}, draw.Src)
}
