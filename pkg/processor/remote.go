package processor

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	pe "github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/structs"
)

const (
	// KeyJobError is set by a remote job that failed
	KeyJobError = "job_error"
)

// remoteJobRequest is posted to a box's /jobs endpoint. When the job is done the
// box POSTs its result (a JSON object) to ResumeURL. The task is only parked once
// this request has been accepted, so a quick job may be told 503 (with Retry-After)
// and must post again.
type remoteJobRequest struct {
	TaskID    string            `json:"task_id"`
	NodeID    string            `json:"node_id"`
	ResumeURL string            `json:"resume_url"`
	Document  *structs.Document `json:"document"`
}

// RemoteJob hands the document to a long running job on a worker box of kind
// `box_kind` and suspends the task until the job reports back.
//
// When the task is resumed at this node the job's result has already been merged
// into the document; the node then succeeds unless the job set `job_error`.
type RemoteJob struct {
	boxes     Allocator
	resumeURL string
	http      *http.Client
}

func NewRemoteJob(boxes Allocator, resumeURL string) *RemoteJob {
	return &RemoteJob{
		boxes:     boxes,
		resumeURL: strings.TrimSuffix(resumeURL, "/"),
		http:      &http.Client{Timeout: defBoxTimeout},
	}
}

func (p *RemoteJob) Process(ctx context.Context, in *Invocation) (*structs.Task, error) {
	t := in.Task
	if t.Resumed() {
		return p.finish(t)
	}

	kind, err := docString(t.Document, KeyBoxKind, "")
	if err != nil {
		return nil, err
	}
	if kind == "" {
		return nil, pe.NonRetriableKind(pe.ErrMissingInputField, "%s", KeyBoxKind)
	}
	base, err := boxURL(ctx, p.boxes, kind)
	if err != nil {
		return nil, err
	}

	token := t.Suspend()
	err = postJSON(ctx, p.http, base+"/jobs", &remoteJobRequest{
		TaskID:    t.ID,
		NodeID:    in.Node.ID,
		ResumeURL: fmt.Sprintf("%s/%s/%s", p.resumeURL, t.ID, token),
		Document:  t.Document.Scrubbed(),
	}, nil)
	if err != nil {
		t.State = structs.RUNNING
		t.ResumeToken = ""
		return nil, err
	}

	slog.Info("suspended task on remote job", "component", "processor", "task", t.ID, "node", in.Node.ID, "kind", kind)
	return t, nil
}

func (p *RemoteJob) finish(t *structs.Task) (*structs.Task, error) {
	msg, err := docString(t.Document, KeyJobError, "")
	if err != nil {
		return nil, err
	}
	if msg != "" {
		return nil, pe.NonRetriable("remote job failed: %s", msg)
	}
	return t, nil
}
