package processor

import (
	"context"
	"encoding/json"
	"strings"

	pe "github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/render"
	"github.com/voidshard/pipewright/pkg/structs"
)

// Template renders the node's template text over the document.
//
// Output that is a JSON object is merged into the document, otherwise it's
// written to the template's only output field.
type Template struct{}

func (p *Template) Process(ctx context.Context, in *Invocation) (*structs.Task, error) {
	if in.Template == nil {
		return nil, pe.NonRetriable("node %s has no template to render", in.Node.ID)
	}

	out, err := render.Expand(in.Template.Text, in.Task.Document.Map())
	if err != nil {
		return nil, pe.NonRetriableWrap(err, "rendering template")
	}

	obj, isObject := jsonObject(out)
	if isObject {
		in.Task.Document.Merge(obj)
		return in.Task, nil
	}

	outputs := in.Template.OutputNames()
	if len(outputs) != 1 {
		return nil, pe.NonRetriable("template %s output is not a JSON object and declares %d output fields", in.Template.ID, len(outputs))
	}
	in.Task.Document.Set(outputs[0], out)
	return in.Task, nil
}

// PostTemplate renders the optional `{{define "json"}}` block of a node's template,
// merging the resulting JSON object into the document. It runs after every
// successful processor call.
type PostTemplate struct{}

func (p *PostTemplate) Process(ctx context.Context, in *Invocation) (*structs.Task, error) {
	if in.Template == nil || !render.Contains(in.Template.Text) {
		return in.Task, nil
	}

	out, found, err := render.Block(in.Template.Text, render.BlockJSON, in.Task.Document.Map())
	if err != nil {
		return nil, pe.NonRetriableWrap(err, "rendering json block")
	}
	if !found || strings.TrimSpace(out) == "" {
		return in.Task, nil
	}

	obj, ok := jsonObject(out)
	if !ok {
		return nil, pe.NonRetriable("template %s json block did not render a JSON object", in.Template.ID)
	}
	in.Task.Document.Merge(obj)
	return in.Task, nil
}

func jsonObject(in string) (*structs.Document, bool) {
	trimmed := strings.TrimSpace(in)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}
	doc := structs.NewDocument()
	err := json.Unmarshal([]byte(trimmed), doc)
	if err != nil {
		return nil, false
	}
	return doc, true
}
