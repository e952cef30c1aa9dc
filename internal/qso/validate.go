package qso

import (
	"fmt"
	"sort"
	"strings"
)

var requiredMessages = map[Field]string{
	FieldCallsign: "Call sign is required",
	FieldDay:      "Day is required",
	FieldMonth:    "Month is required",
	FieldYear:     "Year is required",
	FieldUTC:      "UTC is required",
	FieldMHz:      "MHz is required",
	FieldRST:      "RST is required",
	FieldMode:     "Mode is required",
	FieldQSL:      "QSL is required",
}

// DateMessage is shown once for any missing day, month or year.
const DateMessage = "Please select all date fields"

// Errors maps a field to its message. An empty map means valid.
type Errors map[Field]string

// Has reports whether f has an error.
func (e Errors) Has(f Field) bool {
	_, ok := e[f]
	return ok
}

// DateMessage returns the combined date message when day, month or year failed.
func (e Errors) DateMessage() string {
	if e.Has(FieldDay) || e.Has(FieldMonth) || e.Has(FieldYear) {
		return DateMessage
	}
	return ""
}

// Fields returns the failing fields in declaration order.
func (e Errors) Fields() []Field {
	out := make([]Field, 0, len(e))
	for f := range e {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ValidationError wraps the errors of a failed step.
type ValidationError struct {
	Step   Step
	Errors Errors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, f := range e.Errors.Fields() {
		parts = append(parts, e.Errors[f])
	}
	return fmt.Sprintf("step %d invalid: %s", e.Step.Number(), strings.Join(parts, "; "))
}

// ValidateStep checks every field owned by step without stopping at the
// first failure, so several errors can be reported together. It never looks
// at fields of other steps.
func ValidateStep(step Step, rec Record) Errors {
	errs := Errors{}
	for _, f := range step.Fields() {
		if strings.TrimSpace(rec.Get(f)) == "" {
			errs[f] = requiredMessages[f]
		}
	}
	return errs
}
