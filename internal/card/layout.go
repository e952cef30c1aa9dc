// Package card lays out and draws a QSL card from a finalized QSO record and
// the operator's station settings.
package card

import (
	"strings"

	"github.com/jask/qslcard/internal/qso"
	"github.com/jask/qslcard/internal/settings"
)

// Placeholders printed when a settings value is blank.
const (
	PlaceholderCallsign = "SET CALLSIGN"
	PlaceholderZone     = "SET"
)

// Column is one column of the confirmation table.
type Column struct {
	Header string
	// Sub holds sub-headers; Values lines up with it when set.
	Sub    []string
	Values []string
}

// Card is the complete visual layout of one QSL card.
type Card struct {
	Theme            Theme
	Country          string
	ZoneLine         string
	OperatorCallsign string
	Columns          []Column
}

// Layout projects rec and op onto a card. It does no validation: blank
// settings become placeholders and blank record fields are printed blank.
func Layout(rec qso.Record, op settings.OperatorSettings, theme Theme) Card {
	return Card{
		Theme:            theme,
		Country:          theme.Country,
		ZoneLine:         "CQ ZONE " + orPlaceholder(op.CQZone, PlaceholderZone) + " ITU ZONE " + orPlaceholder(op.ITUZone, PlaceholderZone),
		OperatorCallsign: orPlaceholder(op.Callsign, PlaceholderCallsign),
		Columns: []Column{
			{Header: "CONFIRMING QSO WITH", Values: []string{rec.Callsign}},
			{Header: "DATE", Sub: []string{"DAY", "MONTH", "YEAR"}, Values: []string{rec.Day, rec.Month, rec.Year}},
			{Header: "UTC", Values: []string{rec.UTC}},
			{Header: "MHz", Values: []string{rec.MHz}},
			{Header: "RST", Values: []string{rec.RST}},
			{Header: "MODE 2-WAY", Values: []string{rec.Mode}},
			{Header: "QSL", Values: []string{rec.QSL}},
		},
	}
}

func orPlaceholder(v, placeholder string) string {
	if strings.TrimSpace(v) == "" {
		return placeholder
	}
	return v
}

// Text renders the card as plain lines for terminal previews.
func (c Card) Text() string {
	var b strings.Builder
	b.WriteString(c.Country + "\n")
	b.WriteString(c.ZoneLine + "\n\n")
	b.WriteString(c.OperatorCallsign + "\n\n")
	for _, col := range c.Columns {
		label := col.Header
		if len(col.Sub) > 0 {
			label += " (" + strings.Join(col.Sub, "/") + ")"
		}
		b.WriteString(label + ": " + strings.Join(col.Values, " ") + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
