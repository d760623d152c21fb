package model

// ValidationState is the lifecycle state of a descriptor validation.
type ValidationState string

const (
	ValidationUnvalidated ValidationState = "UNVALIDATED"
	ValidationValid       ValidationState = "VALID"
	ValidationInvalid     ValidationState = "INVALID"
)

// String returns the string representation of the validation state.
func (s ValidationState) String() string {
	return string(s)
}

// IsTerminal returns true once a verdict has been reached.
func (s ValidationState) IsTerminal() bool {
	return s == ValidationValid || s == ValidationInvalid
}

// ValidValidationTransitions defines the allowed state transitions.
// Both verdicts are terminal; there are no retries.
var ValidValidationTransitions = map[ValidationState][]ValidationState{
	ValidationUnvalidated: {ValidationValid, ValidationInvalid},
}

// CanTransitionTo returns true if moving from the current state to next is valid.
func (s ValidationState) CanTransitionTo(next ValidationState) bool {
	for _, allowed := range ValidValidationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
