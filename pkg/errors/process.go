package errors

import (
	"errors"
	"fmt"
)

var (
	// Classes. Every ProcessError carries exactly one.
	ErrRetriable    = fmt.Errorf("retriable")
	ErrNonRetriable = fmt.Errorf("non-retriable")

	// Kinds of non retriable errors callers may want to single out.
	ErrUserNotFound       = fmt.Errorf("user not found")
	ErrPipelineNotFound   = fmt.Errorf("pipeline not found")
	ErrNodeNotFound       = fmt.Errorf("node not found")
	ErrTemplateNotFound   = fmt.Errorf("template not found")
	ErrMissingInputField  = fmt.Errorf("missing input field")
	ErrMissingOutputField = fmt.Errorf("missing output field")
	ErrSecretNotFound     = fmt.Errorf("secret not found")
	ErrNoCapacity         = fmt.Errorf("no capacity")
)

// ProcessError is raised by the executor & processors. It is either retriable
// (requeue with backoff) or not (fail the task).
type ProcessError struct {
	Class error
	Kind  error
	Msg   string
	Err   error
}

func (e *ProcessError) Error() string {
	msg := e.Msg
	if e.Kind != nil {
		if msg == "" {
			msg = e.Kind.Error()
		} else {
			msg = fmt.Sprintf("%s: %s", e.Kind.Error(), msg)
		}
	}
	if e.Err != nil {
		if msg == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ProcessError) Unwrap() []error {
	errs := []error{e.Class}
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Retriable returns a new retriable error
func Retriable(format string, args ...interface{}) error {
	return &ProcessError{Class: ErrRetriable, Msg: fmt.Sprintf(format, args...)}
}

// NonRetriable returns a new non retriable error
func NonRetriable(format string, args ...interface{}) error {
	return &ProcessError{Class: ErrNonRetriable, Msg: fmt.Sprintf(format, args...)}
}

// RetriableWrap marks an existing error as retriable.
func RetriableWrap(err error, msg string) error {
	return &ProcessError{Class: ErrRetriable, Msg: msg, Err: err}
}

// NonRetriableWrap marks an existing error as non retriable.
func NonRetriableWrap(err error, msg string) error {
	return &ProcessError{Class: ErrNonRetriable, Msg: msg, Err: err}
}

// NonRetriableKind returns a non retriable error of the given kind.
func NonRetriableKind(kind error, format string, args ...interface{}) error {
	return &ProcessError{Class: ErrNonRetriable, Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// IsRetriable reports whether err should be retried. Anything not explicitly
// marked retriable is not.
func IsRetriable(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrRetriable) && !errors.Is(err, ErrNonRetriable)
}

// AsNonRetriable returns err unchanged if it already carries a class,
// otherwise wraps it as non retriable.
func AsNonRetriable(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrRetriable) || errors.Is(err, ErrNonRetriable) {
		return err
	}
	return NonRetriableWrap(err, "")
}
