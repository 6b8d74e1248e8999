package auth

import (
	"errors"
	"fmt"
)

// ErrWrongStep is returned when a ResetFlow operation is not valid at the
// current step.
var ErrWrongStep = errors.New("operation not allowed at this step")

// ValidationError is a local input error. It never reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// StepError is a server failure of one reset step. The flow stays where it
// was.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
