package factory

import (
	"errors"
	"fmt"
)

// Registration and execution error kinds
var (
	ErrInvalidHandler   = errors.New("no valid handlers were provided")
	ErrMissingName      = errors.New("handler name is unknown, anonymous handlers must be registered by name")
	ErrMissingTarget    = errors.New("handler name missing, hooks can't be added")
	ErrTooManyArguments = errors.New("too many arguments, use Register, Before or After to provide hooks")
	ErrUnknownHandler   = errors.New("unknown handler")
)

// RegistrationError represents a rejected registration with additional context
type RegistrationError struct {
	Op   string // Operation that failed (e.g., "Register", "Before")
	Name string // Handler or hook target name, if any
	Err  error  // Underlying error
}

func (e *RegistrationError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s failed for '%s': %v", e.Op, e.Name, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

func newRegistrationError(op, name string, err error) *RegistrationError {
	return &RegistrationError{Op: op, Name: name, Err: err}
}

// ExecutionError is delivered through the callback when a step of the chain fails.
// Step is the zero-based position of the failing step in the resolved chain.
type ExecutionError struct {
	Handler string
	Step    int
	Err     error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("handler '%s' failed at step %d: %v", e.Handler, e.Step, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// IsExecutionError returns true if err came out of a running chain
func IsExecutionError(err error) bool {
	var execErr *ExecutionError
	return errors.As(err, &execErr)
}

// PanicError carries a value recovered from a panicking step
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("step panicked: %v", e.Value)
}

// Unwrap exposes the panic value when it was itself an error
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
