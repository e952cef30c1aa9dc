package qso

import (
	"errors"
	"strings"
	"time"

	"github.com/jask/qslcard/internal/settings"
)

var (
	// ErrSettingsIncomplete means the operator callsign, CQ zone or ITU zone
	// is unset. The caller should open the settings editor.
	ErrSettingsIncomplete = errors.New("please set your callsign, CQ Zone, and ITU Zone in Settings before creating a QSL card")
	ErrNotOnDetailsStep   = errors.New("submit is only available on the QSO details step")
	ErrNotOnDateTimeStep  = errors.New("current date and time can only be applied on the date and time step")
)

// Machine is one wizard instance. The zero value is not usable; call NewMachine.
type Machine struct {
	step   Step
	record Record
	errs   Errors
}

func NewMachine() *Machine {
	return &Machine{step: CallSignStep{}, errs: Errors{}}
}

// Reset starts a fresh wizard: first step, empty record, no errors.
func (m *Machine) Reset() {
	*m = *NewMachine()
}

func (m *Machine) Step() Step { return m.step }

// Record returns a copy of the in-progress record.
func (m *Machine) Record() Record { return m.record }

// Errors returns a copy of the current error map.
func (m *Machine) Errors() Errors {
	out := make(Errors, len(m.errs))
	for k, v := range m.errs {
		out[k] = v
	}
	return out
}

// Done reports whether the wizard reached the success step.
func (m *Machine) Done() bool {
	_, ok := m.step.(SuccessStep)
	return ok
}

// SetField stores value for f after normalization and clears f's error.
// Callsigns are uppercased and bare UTC times get the zulu marker.
func (m *Machine) SetField(f Field, value string) {
	if m.Done() {
		return
	}
	switch f {
	case FieldCallsign:
		value = strings.ToUpper(value)
	case FieldUTC:
		value = NormalizeUTC(value)
	}
	m.record.set(f, value)
	delete(m.errs, f)
}

// Advance validates the current step and moves forward when it passes. It
// reports whether the step changed. On the details step it still validates
// but always returns false: that step only leaves through Submit.
func (m *Machine) Advance() bool {
	if m.Done() {
		return false
	}
	errs := ValidateStep(m.step, m.record)
	m.errs = errs
	if len(errs) > 0 {
		return false
	}
	to := next(m.step)
	if to == m.step {
		return false
	}
	m.step = to
	return true
}

// Retreat moves back one step without validating or clearing values.
func (m *Machine) Retreat() {
	m.step = prev(m.step)
}

// Submit finalizes the record. It requires the details step, complete
// operator settings (checked first, with no state change on failure) and a
// valid details step. On success the wizard moves to SuccessStep.
func (m *Machine) Submit(op settings.OperatorSettings) (Record, error) {
	if _, ok := m.step.(DetailsStep); !ok {
		return Record{}, ErrNotOnDetailsStep
	}
	if !op.Complete() {
		return Record{}, ErrSettingsIncomplete
	}
	errs := ValidateStep(DetailsStep{}, m.record)
	m.errs = errs
	if len(errs) > 0 {
		return Record{}, &ValidationError{Step: DetailsStep{}, Errors: errs}
	}
	final := m.record
	m.step = SuccessStep{Record: final}
	return final, nil
}

// ApplyCurrentDateTime fills day, month, year and UTC from now. The date is
// taken in now's location and the time in UTC.
func (m *Machine) ApplyCurrentDateTime(now time.Time) error {
	if _, ok := m.step.(DateTimeStep); !ok {
		return ErrNotOnDateTimeStep
	}
	day, month, year := DateParts(now)
	m.record.Day = day
	m.record.Month = month
	m.record.Year = year
	m.record.UTC = ZuluTime(now)
	for _, f := range (DateTimeStep{}).Fields() {
		delete(m.errs, f)
	}
	return nil
}
