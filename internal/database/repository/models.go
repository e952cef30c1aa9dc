package repository

import "time"

// Card represents an issued card row.
type Card struct {
	ID               string
	OperatorCallsign string
	Callsign         string
	Day              string
	Month            string
	Year             string
	UTC              string
	MHz              string
	RST              string
	Mode             string
	QSL              string
	ImagePath        string
	CreatedAt        time.Time
}
