package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/voidshard/pipewright/pkg/database"
	pe "github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/processor"
	"github.com/voidshard/pipewright/pkg/structs"
)

// Executor runs the current node of a task.
type Executor struct {
	db        database.Catalog
	reg       *processor.Registry
	post      []processor.Processor
	callbacks *processor.Callback
	opts      *Options
	log       *slog.Logger
}

func NewExecutor(db database.Catalog, reg *processor.Registry, opts *Options) *Executor {
	if opts == nil {
		opts = DefaultOptions()
	}
	timeout := opts.CallbackTimeout
	if timeout <= 0 {
		timeout = defCallbackTimeout
	}
	return &Executor{
		db:        db,
		reg:       reg,
		post:      []processor.Processor{&processor.PostTemplate{}},
		callbacks: processor.NewCallback(&http.Client{Timeout: timeout}),
		opts:      opts,
		log:       slog.Default().With("component", "executor"),
	}
}

// ValidatePipeline checks every node of the pipeline exists and names a
// registered processor.
func (e *Executor) ValidatePipeline(ctx context.Context, pipe *structs.Pipeline) error {
	for _, id := range pipe.NodeIDs {
		node, err := e.db.Node(ctx, id)
		if err != nil {
			return fmt.Errorf("pipeline %s node %s: %w", pipe.ID, id, err)
		}
		if _, ok := e.reg.Get(node.Processor); !ok {
			return fmt.Errorf("%w %q (node %s)", pe.ErrUnknownProcessor, node.Processor, id)
		}
		if node.TemplateID != "" {
			_, err = e.db.Template(ctx, node.TemplateID)
			if err != nil {
				return fmt.Errorf("node %s template %s: %w", id, node.TemplateID, err)
			}
		}
	}
	return nil
}

// Execute runs the task's current node, returning the altered task.
//
// Errors are pkg/errors ProcessErrors; non retriable errors have been recorded
// on the task (and sent to its callback) before being returned. Errors wrapping
// ErrInvalidState mean the task changed state under us & should be left alone.
func (e *Executor) Execute(ctx context.Context, t *structs.Task) (*structs.Task, error) {
	user, err := e.db.User(ctx, t.UserID)
	if err != nil {
		return nil, resolveError(err, pe.ErrUserNotFound, t.UserID)
	}
	_, err = e.db.Pipeline(ctx, t.PipeID)
	if err != nil {
		return nil, resolveError(err, pe.ErrPipelineNotFound, t.PipeID)
	}
	nodeID, ok := t.NextNode()
	if !ok {
		return nil, pe.NonRetriableKind(pe.ErrNodeNotFound, "task %s has no nodes", t.ID)
	}
	node, err := e.db.Node(ctx, nodeID)
	if err != nil {
		return nil, resolveError(err, pe.ErrNodeNotFound, nodeID)
	}
	if node.UserID != t.UserID {
		return nil, pe.NonRetriableKind(pe.ErrNodeNotFound, "%s", nodeID)
	}
	var tmpl *structs.Template
	if node.TemplateID != "" {
		tmpl, err = e.db.Template(ctx, node.TemplateID)
		if err != nil {
			return nil, resolveError(err, pe.ErrTemplateNotFound, node.TemplateID)
		}
	}

	if t.Document == nil {
		t.Document = structs.NewDocument()
	}
	if tmpl != nil {
		for _, f := range tmpl.InputNames() {
			if _, ok := t.Document.Lookup(f); !ok {
				return nil, e.fail(ctx, t, node, pe.NonRetriableKind(pe.ErrMissingInputField, "%s", f))
			}
		}
	}

	extras, err := e.resolveExtras(ctx, t.UserID, node.Extras, t.Document)
	if err != nil {
		return nil, e.fail(ctx, t, node, err)
	}
	added := extras.mergeInto(t.Document)
	t.Document.Set(structs.KeyAPIKey, user.APIKey)
	t.Document.Set(structs.KeyDatabaseID, user.DatabaseID)

	// extras belong to this node only; later nodes get their own
	strip := func(task *structs.Task) {
		task.Document.Delete(structs.KeyAPIKey)
		task.Document.Delete(structs.KeyDatabaseID)
		for _, k := range added {
			task.Document.Delete(k)
		}
	}

	proc, ok := e.reg.Get(node.Processor)
	if !ok {
		strip(t)
		return nil, e.fail(ctx, t, node, pe.NonRetriableWrap(pe.ErrUnknownProcessor, node.Processor))
	}

	start := time.Now()
	result, err := proc.Process(ctx, &processor.Invocation{Node: node, Template: tmpl, Task: t, Extras: added})
	metricNodeSeconds.WithLabelValues(node.Processor).Observe(time.Since(start).Seconds())
	if err != nil {
		strip(t)
		return nil, e.fail(ctx, t, node, err)
	}
	if result == nil {
		result = t
	}

	if !result.Suspended() {
		for _, post := range e.post {
			next, err := post.Process(ctx, &processor.Invocation{Node: node, Template: tmpl, Task: result, Extras: added})
			if err != nil {
				strip(result)
				return nil, e.fail(ctx, result, node, err)
			}
			result = next
		}
	}

	strip(result)

	if tmpl != nil && !result.Suspended() {
		for _, f := range tmpl.OutputNames() {
			if _, ok := result.Document.Lookup(f); !ok {
				return nil, e.fail(ctx, result, node, pe.NonRetriableKind(pe.ErrMissingOutputField, "%s", f))
			}
		}
	}

	return result, nil
}

// fail routes an error raised while executing a node. Retriable & invalid state
// errors pass through untouched. Anything else is non retriable: it is recorded
// on the task and a callback is attempted.
func (e *Executor) fail(ctx context.Context, t *structs.Task, node *structs.Node, err error) error {
	if errors.Is(err, pe.ErrInvalidState) || pe.IsRetriable(err) {
		return err
	}
	err = pe.AsNonRetriable(err)
	t.Error = err.Error()
	e.callback(ctx, t, node)
	return err
}

// callback makes one best effort attempt to tell the task's callback uri about
// a failure. Failures here are only logged.
//
// A callback node has already posted to the task's callback uri, so it is not
// told a second time.
func (e *Executor) callback(ctx context.Context, t *structs.Task, node *structs.Node) {
	uri := e.opts.DefaultCallbackURI
	if v, ok := t.Document.Get(structs.KeyCallbackURI); ok {
		if s, ok := v.(string); ok && s != "" {
			if node.Processor == processor.NameCallback {
				return
			}
			uri = s
		}
	}
	if uri == "" {
		return
	}

	err := e.callbacks.Post(ctx, uri, &processor.CallbackPayload{
		TaskID:   t.ID,
		PipeID:   t.PipeID,
		NodeID:   node.ID,
		State:    structs.FAILED,
		Error:    t.Error,
		Document: t.Document.Scrubbed(),
	})
	if err != nil {
		metricCallbacks.WithLabelValues("error").Inc()
		e.log.Warn("failure callback", "task", t.ID, "node", node.ID, "error", err)
		return
	}
	metricCallbacks.WithLabelValues("ok").Inc()
}

// resolveError maps a catalog lookup failure: missing records are non retriable
// errors of the given kind, anything else is worth retrying.
func resolveError(err error, kind error, id string) error {
	if errors.Is(err, pe.ErrNotFound) {
		return pe.NonRetriableKind(kind, "%s", id)
	}
	return pe.RetriableWrap(err, fmt.Sprintf("reading %s", id))
}
