package infusion

import "fmt"

// InputValidationError reports parameters that cannot produce a rate.
type InputValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InputValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid inputs: %s (got %v)", e.Reason, e.Value)
	}
	return fmt.Sprintf("invalid inputs: %s %s (got %v)", e.Field, e.Reason, e.Value)
}
