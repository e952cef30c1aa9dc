package card

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Theme controls the look of a card. Sizes are logical pixels; the exporter
// multiplies them by its scale.
type Theme struct {
	Country    string `toml:"country"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background_color"`
	Header     string `toml:"header_color"`
	Callsign   string `toml:"callsign_color"`
	Text       string `toml:"text_color"`
	TableFill  string `toml:"table_fill"`
	TableLine  string `toml:"table_line"`
}

// DefaultThemeTOML is the built-in theme, used when no theme file is configured.
const DefaultThemeTOML = `# QSL card theme
country = "THAILAND"
width = 900
height = 560
background_color = "#0b2a4a"
header_color = "#f9e2af"
callsign_color = "#ffffff"
text_color = "#11111b"
table_fill = "#ffffffd9"
table_line = "#1e1e2e"
`

func DefaultTheme() Theme {
	th, err := ParseTheme([]byte(DefaultThemeTOML))
	if err != nil {
		panic(err)
	}
	return th
}

// LoadTheme reads a TOML theme file. An empty path returns DefaultTheme.
// Keys missing from the file keep their default values.
func LoadTheme(path string) (Theme, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultTheme(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultTheme(), errors.Wrap(err, "read theme")
	}
	return ParseTheme(data)
}

// ParseTheme decodes TOML over the defaults and validates the result.
func ParseTheme(data []byte) (Theme, error) {
	th := Theme{}
	if _, err := toml.Decode(DefaultThemeTOML, &th); err != nil {
		return Theme{}, errors.Wrap(err, "parse default theme")
	}
	if _, err := toml.Decode(string(data), &th); err != nil {
		return Theme{}, errors.Wrap(err, "parse theme")
	}
	if th.Width < 300 || th.Height < 200 {
		return Theme{}, fmt.Errorf("theme size %dx%d is too small (min 300x200)", th.Width, th.Height)
	}
	for name, v := range map[string]string{
		"background_color": th.Background,
		"header_color":     th.Header,
		"callsign_color":   th.Callsign,
		"text_color":       th.Text,
		"table_fill":       th.TableFill,
		"table_line":       th.TableLine,
	} {
		if _, err := ParseColor(v); err != nil {
			return Theme{}, errors.Wrapf(err, "theme %s", name)
		}
	}
	return th, nil
}

// ParseColor accepts #rrggbb or #rrggbbaa.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	if len(s) == 6 {
		s += "ff"
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func mustColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	return c
}
