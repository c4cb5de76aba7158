package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	pe "github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/structs"
)

const KeyBatchSize = "batch_size"

// Split fans a task holding large lists out into child tasks of at most
// batch_size elements, each running the rest of the pipeline. The task itself
// is halted at the current node.
//
// The split fields are those the node's template declares as both input and
// output. The task's stored split status is the number of elements already
// handed to children, so a repeated delivery carries on where the last one
// stopped rather than splitting the same elements again.
type Split struct {
	tasks Tasks
}

func NewSplit(tasks Tasks) *Split {
	return &Split{tasks: tasks}
}

func (p *Split) Process(ctx context.Context, in *Invocation) (*structs.Task, error) {
	t := in.Task

	batch, ok := structs.AsInt(mustGet(t.Document, KeyBatchSize))
	if !ok || batch <= 0 {
		return nil, pe.NonRetriable("%s must be a positive integer", KeyBatchSize)
	}
	if len(t.Nodes) < 2 {
		return nil, pe.NonRetriable("nothing follows node %s to hand split tasks to", in.Node.ID)
	}

	fields := splitFields(in.Template)
	if len(fields) == 0 {
		return nil, pe.NonRetriable("node %s declares no fields to split", in.Node.ID)
	}

	stored, err := p.current(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	base := stored.SplitStatus
	if base < 0 {
		base = 0
	}

	lists, remaining, err := splitLists(t.Document, fields, base)
	if err != nil {
		return nil, err
	}

	count := (remaining + batch - 1) / batch
	slog.Debug("splitting task", "component", "split", "task", t.ID, "from", base, "remaining", remaining, "children", count)

	for i := 0; i < count; i++ {
		// re-check each time round; a cancel may arrive mid split
		if i > 0 {
			if _, err = p.current(ctx, t.ID); err != nil {
				return nil, err
			}
		}

		lo := base + i*batch
		hi := base + min((i+1)*batch, remaining)

		child := structs.NewTask(t.UserID, t.PipeID, t.Nodes[1:], childDocument(t.Document, in.Extras, lists, lo, hi))
		err = p.tasks.CreateTask(ctx, child)
		if err != nil {
			return nil, retriable(err, "creating split task")
		}

		err = p.tasks.SetSplitStatus(ctx, t.ID, hi)
		if err != nil {
			return nil, retriable(err, "recording split status")
		}
		t.SplitStatus = hi
		slog.Debug("split task", "component", "split", "task", t.ID, "child", child.ID, "split_status", hi)
	}

	if t.SplitStatus < base {
		t.SplitStatus = base
	}
	t.HaltNode()
	return t, nil
}

// current fetches the stored task, failing if it is no longer RUNNING
func (p *Split) current(ctx context.Context, id string) (*structs.Task, error) {
	stored, err := p.tasks.Task(ctx, id)
	if errors.Is(err, pe.ErrTaskNotFound) {
		return nil, fmt.Errorf("%w task %s no longer exists", pe.ErrInvalidState, id)
	} else if err != nil {
		return nil, retriable(err, "fetching task")
	}
	if !structs.IsValidStateForProcess(stored.State) {
		return nil, fmt.Errorf("%w task %s is %s", pe.ErrInvalidState, id, stored.State)
	}
	return stored, nil
}

// retriable wraps store & queue failures. Invalid state errors are passed through
// so the caller drops the delivery rather than retrying it.
func retriable(err error, msg string) error {
	if errors.Is(err, pe.ErrInvalidState) {
		return err
	}
	return pe.RetriableWrap(err, msg)
}

// splitFields are the template fields that are both input & output
func splitFields(tmpl *structs.Template) []string {
	if tmpl == nil {
		return nil
	}
	outputs := map[string]bool{}
	for _, name := range tmpl.OutputNames() {
		outputs[name] = true
	}
	fields := []string{}
	for _, name := range tmpl.InputNames() {
		if outputs[name] {
			fields = append(fields, name)
		}
	}
	return fields
}

// splitLists returns each split field as a list along with the number of elements
// left to split, which must be the same for every field.
func splitLists(doc *structs.Document, fields []string, base int) (map[string][]interface{}, int, error) {
	lists := map[string][]interface{}{}
	remaining := -1
	for _, f := range fields {
		v, ok := doc.Get(f)
		if !ok {
			return nil, 0, pe.NonRetriableKind(pe.ErrMissingInputField, "%s", f)
		}
		list, ok := structs.AsList(v)
		if !ok {
			return nil, 0, pe.NonRetriable("split field %s must be a list, got %T", f, v)
		}
		left := len(list) - base
		if left < 0 {
			return nil, 0, pe.NonRetriable("split field %s has %d elements, %d already split", f, len(list), base)
		}
		if remaining >= 0 && left != remaining {
			return nil, 0, pe.NonRetriable("split fields have differing lengths (%d vs %d remaining)", remaining, left)
		}
		remaining = left
		lists[f] = list
	}
	return lists, remaining, nil
}

// childDocument is the parent's non secret fields, less the node's extras, with
// each split list cut to [lo:hi]
func childDocument(parent *structs.Document, extras []string, lists map[string][]interface{}, lo, hi int) *structs.Document {
	doc := parent.Scrubbed()
	for _, k := range extras {
		doc.Delete(k)
	}
	for f, list := range lists {
		doc.Set(f, append([]interface{}{}, list[lo:hi]...))
	}
	return doc
}

func mustGet(doc *structs.Document, key string) interface{} {
	v, _ := doc.Get(key)
	return v
}
