package contact

import "fmt"

// Phase is the submission phase of a contact form.
type Phase int

const (
	// PhaseIdle is the initial phase; the form is editable.
	PhaseIdle Phase = iota

	// PhaseSubmitting means a valid form is waiting for delivery.
	PhaseSubmitting

	// PhaseSuccess means the inquiry was delivered. The controller returns
	// to PhaseIdle with cleared fields after the reset delay.
	PhaseSuccess

	// PhaseError means delivery failed. Retry resubmits the same fields.
	PhaseError
)

// String returns a string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	for _, candidate := range []Phase{PhaseIdle, PhaseSubmitting, PhaseSuccess, PhaseError} {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("contact: unknown phase %q", text)
}

// SubmitOutcome reports what a call to Submit or Retry did.
type SubmitOutcome int

const (
	// SubmitIgnored: the controller was busy, finished or disposed.
	SubmitIgnored SubmitOutcome = iota
	// SubmitInvalid: validation failed and errors were recorded.
	SubmitInvalid
	// SubmitStarted: the controller entered PhaseSubmitting.
	SubmitStarted
)

func (o SubmitOutcome) String() string {
	switch o {
	case SubmitIgnored:
		return "ignored"
	case SubmitInvalid:
		return "invalid"
	case SubmitStarted:
		return "started"
	default:
		return fmt.Sprintf("SubmitOutcome(%d)", int(o))
	}
}
