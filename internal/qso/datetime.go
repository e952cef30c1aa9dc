package qso

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ZuluMarker is appended to UTC times.
const ZuluMarker = "(Z)"

var bareTime = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

// NormalizeUTC appends " (Z)" to a bare H:MM or HH:MM value. Anything else,
// including values that already carry the marker, is returned unchanged.
func NormalizeUTC(v string) string {
	if v == "" || strings.Contains(v, ZuluMarker) {
		return v
	}
	if bareTime.MatchString(v) {
		return v + " " + ZuluMarker
	}
	return v
}

// ZuluTime formats t as "HH:MM (Z)" in UTC.
func ZuluTime(t time.Time) string {
	return t.UTC().Format("15:04") + " " + ZuluMarker
}

// DateParts returns the two-digit day, month abbreviation and four-digit year
// of t in its own location.
func DateParts(t time.Time) (day, month, year string) {
	return fmt.Sprintf("%02d", t.Day()), t.Month().String()[:3], fmt.Sprintf("%04d", t.Year())
}
