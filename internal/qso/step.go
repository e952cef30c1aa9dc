package qso

// Step is one state of the wizard. The concrete types are CallSignStep,
// DateTimeStep, DetailsStep and SuccessStep.
type Step interface {
	// Number is the 1-based position shown in the progress indicator.
	Number() int
	Title() string
	// Fields lists the inputs collected on this step.
	Fields() []Field
	step()
}

type CallSignStep struct{}

type DateTimeStep struct{}

type DetailsStep struct{}

// SuccessStep is terminal and carries the record that was submitted.
type SuccessStep struct {
	Record Record
}

func (CallSignStep) Number() int { return 1 }
func (DateTimeStep) Number() int { return 2 }
func (DetailsStep) Number() int  { return 3 }
func (SuccessStep) Number() int  { return 4 }

func (CallSignStep) Title() string { return "Call Sign" }
func (DateTimeStep) Title() string { return "Date & Time" }
func (DetailsStep) Title() string  { return "QSO Details" }
func (SuccessStep) Title() string  { return "Done" }

func (CallSignStep) Fields() []Field { return []Field{FieldCallsign} }
func (DateTimeStep) Fields() []Field { return []Field{FieldDay, FieldMonth, FieldYear, FieldUTC} }
func (DetailsStep) Fields() []Field  { return []Field{FieldMHz, FieldRST, FieldMode, FieldQSL} }
func (SuccessStep) Fields() []Field  { return nil }

func (CallSignStep) step() {}
func (DateTimeStep) step() {}
func (DetailsStep) step()  {}
func (SuccessStep) step()  {}

// InputSteps are the steps a user fills in, in order.
func InputSteps() []Step {
	return []Step{CallSignStep{}, DateTimeStep{}, DetailsStep{}}
}

func next(s Step) Step {
	switch s.(type) {
	case CallSignStep:
		return DateTimeStep{}
	case DateTimeStep:
		return DetailsStep{}
	}
	// DetailsStep only leaves through Submit.
	return s
}

func prev(s Step) Step {
	switch s.(type) {
	case DateTimeStep:
		return CallSignStep{}
	case DetailsStep:
		return DateTimeStep{}
	}
	return s
}
