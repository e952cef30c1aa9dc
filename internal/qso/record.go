// Package qso holds the QSO confirmation record and the wizard that builds it.
//
// The wizard walks three input steps (call sign, date and time, QSO details)
// and ends in a terminal success step that carries the finalized record.
// Validation is scoped to the current step; submission re-checks the last
// step and the operator settings every time.
package qso

// Field names one input of the record.
type Field int

const (
	FieldCallsign Field = iota
	FieldDay
	FieldMonth
	FieldYear
	FieldUTC
	FieldMHz
	FieldRST
	FieldMode
	FieldQSL
)

var fieldKeys = [...]string{
	FieldCallsign: "callsign",
	FieldDay:      "day",
	FieldMonth:    "month",
	FieldYear:     "year",
	FieldUTC:      "utc",
	FieldMHz:      "mhz",
	FieldRST:      "rst",
	FieldMode:     "mode",
	FieldQSL:      "qsl",
}

var fieldLabels = [...]string{
	FieldCallsign: "Call Sign",
	FieldDay:      "Day",
	FieldMonth:    "Month",
	FieldYear:     "Year",
	FieldUTC:      "UTC Time",
	FieldMHz:      "Frequency (MHz)",
	FieldRST:      "RST",
	FieldMode:     "Mode 2-Way",
	FieldQSL:      "QSL Message",
}

// Key is the stable name used in error maps.
func (f Field) Key() string {
	if f < 0 || int(f) >= len(fieldKeys) {
		return ""
	}
	return fieldKeys[f]
}

// Label is the human-readable input label.
func (f Field) Label() string {
	if f < 0 || int(f) >= len(fieldLabels) {
		return ""
	}
	return fieldLabels[f]
}

func (f Field) String() string { return f.Key() }

// Record is one QSO confirmation. It is a value: copies handed out by
// Machine.Submit are never touched by later edits.
type Record struct {
	Callsign string
	Day      string
	Month    string
	Year     string
	UTC      string
	MHz      string
	RST      string
	Mode     string
	QSL      string
}

// Get returns the value of f.
func (r Record) Get(f Field) string {
	switch f {
	case FieldCallsign:
		return r.Callsign
	case FieldDay:
		return r.Day
	case FieldMonth:
		return r.Month
	case FieldYear:
		return r.Year
	case FieldUTC:
		return r.UTC
	case FieldMHz:
		return r.MHz
	case FieldRST:
		return r.RST
	case FieldMode:
		return r.Mode
	case FieldQSL:
		return r.QSL
	}
	return ""
}

func (r *Record) set(f Field, v string) {
	switch f {
	case FieldCallsign:
		r.Callsign = v
	case FieldDay:
		r.Day = v
	case FieldMonth:
		r.Month = v
	case FieldYear:
		r.Year = v
	case FieldUTC:
		r.UTC = v
	case FieldMHz:
		r.MHz = v
	case FieldRST:
		r.RST = v
	case FieldMode:
		r.Mode = v
	case FieldQSL:
		r.QSL = v
	}
}

// DateLine renders "15 Jun 2024, 14:00 (Z)" for summaries.
func (r Record) DateLine() string {
	return r.Day + " " + r.Month + " " + r.Year + ", " + r.UTC
}
