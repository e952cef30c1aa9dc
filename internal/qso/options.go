package qso

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Months are the selectable month abbreviations.
var Months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Modes are the selectable two-way modes.
var Modes = []string{"FM", "CW", "AM", "DSTAR", "DMR", "DIGITAL VOICE", "SSB"}

// Days returns "01".."31".
func Days() []string {
	out := make([]string, 31)
	for i := range out {
		out[i] = fmt.Sprintf("%02d", i+1)
	}
	return out
}

// Options returns the fixed choices for a select field, or nil for free text.
func Options(f Field) []string {
	switch f {
	case FieldDay:
		return Days()
	case FieldMonth:
		return Months
	case FieldMode:
		return Modes
	}
	return nil
}

// ClosestOption snaps typed text to one of options. Matching is
// case-insensitive: an exact match wins, then a unique prefix, then the
// smallest edit distance as long as it is under half the input length.
func ClosestOption(options []string, input string) (string, bool) {
	in := strings.ToUpper(strings.TrimSpace(input))
	if in == "" {
		return "", false
	}
	var prefixed []string
	for _, o := range options {
		up := strings.ToUpper(o)
		if up == in {
			return o, true
		}
		if strings.HasPrefix(up, in) {
			prefixed = append(prefixed, o)
		}
	}
	if len(prefixed) == 1 {
		return prefixed[0], true
	}

	best, bestDist := "", -1
	for _, o := range options {
		d := levenshtein.ComputeDistance(in, strings.ToUpper(o))
		if bestDist < 0 || d < bestDist {
			best, bestDist = o, d
		}
	}
	if bestDist >= 0 && bestDist*2 < len(in) {
		return best, true
	}
	return "", false
}

// NormalizeOption resolves typed text for a select field. Days accept
// unpadded numbers ("5" becomes "05"). Free-text fields are returned as-is.
func NormalizeOption(f Field, input string) (string, bool) {
	opts := Options(f)
	if opts == nil {
		return input, true
	}
	if f == FieldDay {
		if n, err := strconv.Atoi(strings.TrimSpace(input)); err == nil {
			if n >= 1 && n <= 31 {
				return fmt.Sprintf("%02d", n), true
			}
			return "", false
		}
	}
	return ClosestOption(opts, input)
}
