package scoring

import (
	"errors"
	"fmt"
)

// ConfigurationError reports a lookup of a protocol id that is not registered.
// It is fatal to the request only.
type ConfigurationError struct {
	Protocol string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unknown protocol %q", e.Protocol)
}

// InputValidationError reports a field value the protocol cannot accept:
// a non-numeric value in a numeric field, a value outside the field's
// physical range, an unknown option, or a field the protocol does not define.
type InputValidationError struct {
	Protocol string
	Field    string
	Value    any
	Reason   string
}

func (e *InputValidationError) Error() string {
	return fmt.Sprintf("%s: field %q: %s (got %v)", e.Protocol, e.Field, e.Reason, e.Value)
}

// IsConfigurationError reports whether err is or wraps a *ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsInputValidationError reports whether err is or wraps an *InputValidationError.
func IsInputValidationError(err error) bool {
	var ie *InputValidationError
	return errors.As(err, &ie)
}
