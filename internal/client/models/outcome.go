package models

// OutcomeKind tags the result of one submission attempt.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota + 1
	OutcomeValidationRejected
	OutcomeTransportFailure
	OutcomeUnexpectedFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeValidationRejected:
		return "validation_rejected"
	case OutcomeTransportFailure:
		return "transport_failure"
	case OutcomeUnexpectedFailure:
		return "unexpected_failure"
	}
	return "unknown"
}

// Acknowledgment is the server's answer to an accepted application. Raw is
// kept opaque; Reference is extracted when the body carries an id.
type Acknowledgment struct {
	Reference string
	Raw       []byte
}

// Outcome is consumed immediately by the flow and never stored.
type Outcome struct {
	Kind        OutcomeKind
	Message     string
	FieldErrors FieldErrors
	Ack         *Acknowledgment
	// Local is true when the outcome was decided without a network call.
	Local bool
}

func (o Outcome) Succeeded() bool { return o.Kind == OutcomeSuccess }
