package errors

import (
	"fmt"
)

var (
	ErrNotFound      = fmt.Errorf("not found")
	ErrInvalidState  = fmt.Errorf("invalid state")
	ErrInvalidArg    = fmt.Errorf("invalid arg")
	ErrNotSupported  = fmt.Errorf("not supported")
	ErrMaxExceeded   = fmt.Errorf("max length exceeded")
	ErrInvalidToken  = fmt.Errorf("invalid resume token")
	ErrTaskNotFound  = fmt.Errorf("task not found")
	ErrNotPermitted  = fmt.Errorf("not permitted")
	ErrEmptyPipeline = fmt.Errorf("pipeline has no nodes")

	ErrUnknownProcessor = fmt.Errorf("unknown processor")

	// ErrNotYetSuspended is returned when resuming a task whose suspension has not
	// been recorded yet; the caller should try again shortly.
	ErrNotYetSuspended = fmt.Errorf("task not yet suspended")

	// lifecycle guards
	ErrInvalidStateForCancel  = fmt.Errorf("%w for cancel", ErrInvalidState)
	ErrInvalidStateForDelete  = fmt.Errorf("%w for delete", ErrInvalidState)
	ErrInvalidStateForProcess = fmt.Errorf("%w for process", ErrInvalidState)
	ErrInvalidStateForResume  = fmt.Errorf("%w for resume", ErrInvalidState)
)
