package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/qslcard/internal/qso"
)

const lockedHint = "Set your callsign in Settings first"

var fieldPlaceholders = map[qso.Field]string{
	qso.FieldCallsign: "e.g. W1AW",
	qso.FieldDay:      "01-31",
	qso.FieldMonth:    "Jan-Dec",
	qso.FieldYear:     "e.g. 2024",
	qso.FieldUTC:      "HH:MM (Z)",
	qso.FieldMHz:      "e.g. 145.500",
	qso.FieldRST:      "e.g. 59",
	qso.FieldMode:     "FM, CW, AM, DSTAR, DMR, DIGITAL VOICE, SSB",
	qso.FieldQSL:      "e.g. TNX",
}

var fieldLimits = map[qso.Field]int{
	qso.FieldCallsign: 10,
	qso.FieldDay:      2,
	qso.FieldMonth:    3,
	qso.FieldYear:     4,
	qso.FieldUTC:      9,
	qso.FieldMHz:      10,
	qso.FieldRST:      3,
	qso.FieldMode:     13,
	qso.FieldQSL:      20,
}

// wizardForm holds the text inputs of the step on screen. Values live in the
// machine; the inputs are rebuilt whenever the step changes.
type wizardForm struct {
	fields []qso.Field
	inputs []textinput.Model
	focus  int
	locked bool
}

// lockedStep reports whether a step's inputs stay read-only until the operator
// callsign is configured.
func lockedStep(step qso.Step, operatorCallsign string) bool {
	if strings.TrimSpace(operatorCallsign) != "" {
		return false
	}
	switch step.(type) {
	case qso.CallSignStep, qso.DateTimeStep:
		return true
	}
	return false
}

func newWizardForm(step qso.Step, rec qso.Record, locked bool) wizardForm {
	f := wizardForm{fields: step.Fields(), locked: locked}
	for _, field := range f.fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = fieldLimits[field]
		ti.Width = 24
		ti.Placeholder = fieldPlaceholders[field]
		if locked {
			ti.Placeholder = lockedHint
		}
		ti.SetValue(rec.Get(field))
		f.inputs = append(f.inputs, ti)
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

func (f *wizardForm) focused() (qso.Field, bool) {
	if f.focus < 0 || f.focus >= len(f.fields) {
		return 0, false
	}
	return f.fields[f.focus], true
}

func (f *wizardForm) setFocus(i int) {
	if len(f.inputs) == 0 {
		return
	}
	i = (i + len(f.inputs)) % len(f.inputs)
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	f.focus = i
	f.inputs[i].Focus()
}

func (f *wizardForm) value(i int) string {
	return f.inputs[i].Value()
}

func (f *wizardForm) setValue(i int, v string) {
	f.inputs[i].SetValue(v)
	f.inputs[i].CursorEnd()
}

// update forwards a key to the focused input. Locked forms swallow edits.
func (f *wizardForm) update(msg tea.Msg) tea.Cmd {
	if f.locked || len(f.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// liveField reports whether edits to f are committed on every keystroke.
// Select fields and the UTC time are committed when focus leaves them so
// partial input is not snapped or suffixed mid-typing.
func liveField(f qso.Field) bool {
	if qso.Options(f) != nil {
		return false
	}
	return f != qso.FieldUTC
}

// cycleOption steps a select value through its options.
func cycleOption(f qso.Field, current string, delta int) (string, bool) {
	opts := qso.Options(f)
	if len(opts) == 0 {
		return current, false
	}
	idx := -1
	if v, ok := qso.NormalizeOption(f, current); ok {
		for i, o := range opts {
			if o == v {
				idx = i
				break
			}
		}
	}
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = len(opts) - 1
	default:
		idx = (idx + delta + len(opts)) % len(opts)
	}
	return opts[idx], true
}
