package processor

import (
	"context"

	"github.com/voidshard/pipewright/pkg/structs"
)

// Invocation is one call of a processor for the current node of a task.
type Invocation struct {
	Node *structs.Node

	// Template may be nil if the node has none
	Template *structs.Template

	Task *structs.Task

	// Extras are the document keys merged in from the node's extras. They are
	// removed again once the node has run.
	Extras []string
}

// Processor is a capability a node applies to a task.
//
// A processor may alter the task document and rewrite the remaining nodes
// (JumpNode, HaltNode). It returns errors built with pkg/errors Retriable or
// NonRetriable; anything else is treated as non retriable.
type Processor interface {
	Process(ctx context.Context, in *Invocation) (*structs.Task, error)
}

// ProcessorFunc adapts a func to a Processor
type ProcessorFunc func(ctx context.Context, in *Invocation) (*structs.Task, error)

func (f ProcessorFunc) Process(ctx context.Context, in *Invocation) (*structs.Task, error) {
	return f(ctx, in)
}

// Tasks is what the split processor needs from the task service.
type Tasks interface {
	// Task returns the stored task (without document)
	Task(ctx context.Context, id string) (*structs.Task, error)

	// CreateTask persists and enqueues a new task
	CreateTask(ctx context.Context, t *structs.Task) error

	// SetSplitStatus records the split watermark of a RUNNING task
	SetSplitStatus(ctx context.Context, id string, status int) error
}

// Allocator hands out worker boxes to box backed processors.
type Allocator interface {
	Allocate(ctx context.Context, kind string) (bool, *structs.Box, error)
	Empty(ctx context.Context, kind string) (bool, error)
	Port() int
}
