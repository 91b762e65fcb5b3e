package errcode

// Code is a stable error identifier for clock-tree misconfigurations.
// It is a string newtype, comparable, allocation-free, and implements error.
// Every code except Timeout marks a programmer error: freeze aborts, nothing
// is rolled back, and the caller should treat the boot as failed.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// InvalidDivider: a source/target ratio is zero, non-integral, or not a
	// supported power-of-two step for that bus class.
	InvalidDivider Code = "invalid_divider"
	// MissingDependency: a node selects an input source that was never enabled.
	MissingDependency Code = "missing_dependency"
	// FreqMismatch: a declared target does not equal the realized frequency.
	FreqMismatch Code = "freq_mismatch"
	// PLLOutOfRange: a VCO stage or the PLL output violates its rated range.
	PLLOutOfRange Code = "pll_out_of_range"
	// Prerequisite: clock security requested without its fallback oscillator.
	Prerequisite Code = "unsatisfied_prerequisite"
	// InvalidParams: static parameter bounds violated at construction.
	InvalidParams Code = "invalid_params"
	// Consumed: a configuration was frozen twice.
	Consumed Code = "config_consumed"
	// Claimed: the clock peripheral was taken more than once.
	Claimed Code = "peripheral_claimed"
	// Timeout: a hardware ready flag never set within the poll budget.
	Timeout Code = "timeout"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Is allows errors.Is(err, someCode) through the E wrapper.
func (e *E) Is(target error) bool {
	if c, ok := target.(Code); ok {
		return e.C == c
	}
	return false
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
