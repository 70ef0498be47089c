package inspector

import (
	"errors"
	"fmt"
)

type Step string

const (
	StepConnect    Step = "connect"
	StepProbe      Step = "probe"
	StepIntrospect Step = "introspect"
)

var (
	ErrConnection    = errors.New("connection error")
	ErrLiveness      = errors.New("liveness error")
	ErrIntrospection = errors.New("introspection error")
)

// StepError records which step of a run failed and why. It matches the
// step's sentinel under errors.Is as well as the underlying cause.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() []error {
	return []error{e.kind(), e.Err}
}

func (e *StepError) kind() error {
	switch e.Step {
	case StepConnect:
		return ErrConnection
	case StepProbe:
		return ErrLiveness
	case StepIntrospect:
		return ErrIntrospection
	}
	return nil
}

// Message is the single line printed for the failure.
func (e *StepError) Message() string {
	switch e.Step {
	case StepConnect:
		return fmt.Sprintf("Failed to connect to database: %v", e.Err)
	case StepProbe:
		return fmt.Sprintf("Failed to ping database: %v", e.Err)
	case StepIntrospect:
		return fmt.Sprintf("Failed to query table info: %v", e.Err)
	}
	return e.Error()
}
