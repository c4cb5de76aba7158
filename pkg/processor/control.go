package processor

import (
	"context"

	pe "github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/structs"
)

const (
	KeyJumpTo = "jump_to"
	KeyJumpIf = "jump_if"
	KeyHaltIf = "halt_if"
)

// Jump skips ahead to the node named by `jump_to`. If `jump_if` names a document
// field the jump only happens when that field is truthy.
type Jump struct{}

func (p *Jump) Process(ctx context.Context, in *Invocation) (*structs.Task, error) {
	target, err := docString(in.Task.Document, KeyJumpTo, "")
	if err != nil {
		return nil, err
	}
	if target == "" {
		return nil, pe.NonRetriableKind(pe.ErrMissingInputField, "%s", KeyJumpTo)
	}

	ok, err := condition(in.Task.Document, KeyJumpIf)
	if err != nil || !ok {
		return in.Task, err
	}

	err = in.Task.JumpNode(target)
	if err != nil {
		return nil, pe.NonRetriableWrap(err, "jumping")
	}
	return in.Task, nil
}

// Halt ends the pipeline after the current node. If `halt_if` names a document
// field it only halts when that field is truthy.
type Halt struct{}

func (p *Halt) Process(ctx context.Context, in *Invocation) (*structs.Task, error) {
	ok, err := condition(in.Task.Document, KeyHaltIf)
	if err != nil || !ok {
		return in.Task, err
	}
	in.Task.HaltNode()
	return in.Task, nil
}

// condition is true if key is unset, otherwise the truthiness of the field it names.
func condition(doc *structs.Document, key string) (bool, error) {
	field, err := docString(doc, key, "")
	if err != nil {
		return false, err
	}
	if field == "" {
		return true, nil
	}
	v, _ := doc.Lookup(field)
	return structs.Truthy(v), nil
}
