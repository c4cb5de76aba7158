package processor

import (
	"context"
	"net/http"
	"time"

	pe "github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/structs"
)

const defCallbackTimeout = 10 * time.Second

// CallbackPayload is what we POST to a callback URI
type CallbackPayload struct {
	TaskID   string            `json:"task_id"`
	PipeID   string            `json:"pipe_id"`
	NodeID   string            `json:"node_id"`
	State    structs.State     `json:"state"`
	Error    string            `json:"error,omitempty"`
	Document *structs.Document `json:"document"`
}

// Callback posts the (scrubbed) document to the `callback_uri` in the document.
// If the node's template declares output fields, only those are sent.
type Callback struct {
	http *http.Client
}

func NewCallback(hc *http.Client) *Callback {
	if hc == nil {
		hc = &http.Client{Timeout: defCallbackTimeout}
	}
	return &Callback{http: hc}
}

func (p *Callback) Process(ctx context.Context, in *Invocation) (*structs.Task, error) {
	uri, err := docString(in.Task.Document, structs.KeyCallbackURI, "")
	if err != nil {
		return nil, err
	}
	if uri == "" {
		return nil, pe.NonRetriableKind(pe.ErrMissingInputField, "%s", structs.KeyCallbackURI)
	}

	doc := in.Task.Document.Scrubbed()
	if in.Template != nil && len(in.Template.OutputFields) > 0 {
		filtered := structs.NewDocument()
		for _, name := range in.Template.OutputNames() {
			if v, ok := doc.Get(name); ok {
				filtered.Set(name, v)
			}
		}
		doc = filtered
	}

	err = p.Post(ctx, uri, &CallbackPayload{
		TaskID:   in.Task.ID,
		PipeID:   in.Task.PipeID,
		NodeID:   in.Node.ID,
		State:    in.Task.State,
		Document: doc,
	})
	if err != nil {
		return nil, err
	}
	return in.Task, nil
}

// Post sends a payload to the given uri. Errors are classified retriable or not
// by the reply status.
func (p *Callback) Post(ctx context.Context, uri string, payload *CallbackPayload) error {
	return postJSON(ctx, p.http, uri, payload, nil)
}
