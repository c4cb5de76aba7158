package structs

import (
	"fmt"
	"time"

	"github.com/voidshard/pipewright/internal/utils"
	"github.com/voidshard/pipewright/pkg/errors"
)

const (
	// MaxRetries is the number of times a task may be requeued after a retriable error.
	MaxRetries = 5

	// NotSplit & NotJumped are the zero values of SplitStatus & JumpStatus
	NotSplit  = -1
	NotJumped = -1
)

var timeNow = func() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// Task is one execution of a pipeline.
type Task struct {
	// ID is a unique identifier for this task
	ID string `json:"id"`

	// UserID is the owner of the task
	UserID string `json:"user_id"`

	// PipeID is the pipeline this task was created from
	PipeID string `json:"pipe_id"`

	// Nodes are the remaining node IDs. Nodes[0] is the node about to execute.
	Nodes []string `json:"nodes"`

	// Document is the data handed from node to node
	Document *Document `json:"document"`

	// CreatedAt is the time the task was created (UTC, second precision)
	CreatedAt time.Time `json:"created_at"`

	// Retries is the number of times we've requeued after a retriable error.
	Retries int `json:"retries"`

	// Error is the last recorded failure, if any
	Error string `json:"error"`

	State State `json:"state"`

	// SplitStatus records how many list elements have already been handed to child tasks.
	// NotSplit (-1) if this task has never been split.
	SplitStatus int `json:"split_status"`

	// JumpStatus is NotJumped (-1) if this task is running from the pipeline head, otherwise
	// it's the pipeline offset of the node we resumed at.
	JumpStatus int `json:"jump_status"`

	// ResumeToken is set only while the task is SUSPENDED.
	ResumeToken string `json:"resume_token,omitempty"`
}

// NewTask returns a new RUNNING task for the given pipeline nodes.
func NewTask(userID, pipeID string, nodes []string, doc *Document) *Task {
	if doc == nil {
		doc = NewDocument()
	}
	return &Task{
		ID:          utils.NewRandomID(),
		UserID:      userID,
		PipeID:      pipeID,
		Nodes:       append([]string{}, nodes...),
		Document:    doc,
		CreatedAt:   timeNow(),
		State:       RUNNING,
		SplitStatus: NotSplit,
		JumpStatus:  NotJumped,
	}
}

// NextNode returns the node about to execute.
func (t *Task) NextNode() (string, bool) {
	if len(t.Nodes) == 0 {
		return "", false
	}
	return t.Nodes[0], true
}

// RemoveNode pops the head node, advancing the task.
func (t *Task) RemoveNode() (string, bool) {
	if len(t.Nodes) == 0 {
		return "", false
	}
	head := t.Nodes[0]
	t.Nodes = t.Nodes[1:]
	return head, true
}

// JumpNode discards every node between the current node and the target.
// The target must appear strictly after the current node.
func (t *Task) JumpNode(target string) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("%w task has no nodes", errors.ErrInvalidState)
	}
	for i, n := range t.Nodes[1:] {
		if n == target {
			t.Nodes = append([]string{t.Nodes[0]}, t.Nodes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w jump target %s is not ahead of node %s", errors.ErrInvalidArg, target, t.Nodes[0])
}

// HaltNode truncates the remaining nodes to the current one, so the pipeline
// ends once it completes.
func (t *Task) HaltNode() {
	if len(t.Nodes) > 1 {
		t.Nodes = t.Nodes[:1]
	}
}

// Suspend parks the task waiting on an external job & returns the token
// that job must present to resume it.
func (t *Task) Suspend() string {
	t.State = SUSPENDED
	t.ResumeToken = utils.NewRandomID()
	return t.ResumeToken
}

// Suspended returns if a processor parked this task
func (t *Task) Suspended() bool {
	return t.State == SUSPENDED
}

// Resumed returns if this task was resumed mid pipeline & has not yet
// finished the node it resumed at.
func (t *Task) Resumed() bool {
	return t.JumpStatus > NotJumped
}

// Copy returns a deep copy of the task
func (t *Task) Copy() *Task {
	cp := *t
	cp.Nodes = append([]string{}, t.Nodes...)
	cp.Document = t.Document.Copy()
	return &cp
}
