package core

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/voidshard/pipewright/pkg/database"
	pe "github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/processor"
	"github.com/voidshard/pipewright/pkg/queue"
	"github.com/voidshard/pipewright/pkg/storage"
	"github.com/voidshard/pipewright/pkg/structs"
)

const (
	// suspended tasks are stored as tasks/{id}.json
	suspendPrefix      = "tasks/"
	suspendContentType = "application/json"
)

var timeNow = time.Now

// Service owns the task lifecycle: creation, queuing, retries, suspension
// & the terminal transitions.
type Service struct {
	db    database.Database
	qu    queue.Queue
	blobs storage.BlobStore
	boxes BoxLister
	opts  *Options
	exec  *Executor
	log   *slog.Logger

	done chan struct{}
}

// NewService returns a new service. Processors are looked up in reg at execution time,
// so it may be filled after the service is built (ie. with processors that need
// the service itself). boxes may be nil if we manage no worker boxes.
func NewService(opts *Options, db database.Database, qu queue.Queue, blobs storage.BlobStore, boxes BoxLister, reg *processor.Registry) *Service {
	if opts == nil {
		opts = DefaultOptions()
	}
	me := &Service{
		db:    db,
		qu:    qu,
		blobs: blobs,
		boxes: boxes,
		opts:  opts,
		exec:  NewExecutor(db, reg, opts),
		log:   slog.Default().With("component", "service"),
		done:  make(chan struct{}),
	}

	if opts.TaskTTL > 0 && opts.SweepFrequency > 0 {
		go me.sweep()
	}

	return me
}

// Executor returns the executor tasks are run with
func (s *Service) Executor() *Executor {
	return s.exec
}

func (s *Service) Close() error {
	close(s.done)
	return nil
}

// sweep periodically deletes finished tasks older than the TaskTTL
func (s *Service) sweep() {
	tick := time.NewTicker(s.opts.SweepFrequency)
	defer tick.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-tick.C:
			count, err := s.DeleteTasksOlderThan(context.Background(), s.opts.TaskTTL)
			if err != nil {
				s.log.Error("sweeping tasks", "error", err)
				continue
			}
			metricTasksSwept.Add(float64(count))
			if count > 0 {
				s.log.Info("swept tasks", "count", count)
			}
		}
	}
}

// CreatePipelineTask validates the pipeline then creates & queues a task to run it.
func (s *Service) CreatePipelineTask(ctx context.Context, userID, pipeID string, doc *structs.Document) (*structs.Task, error) {
	pipe, err := s.db.Pipeline(ctx, pipeID)
	if err != nil {
		return nil, err
	}
	if pipe.UserID != userID {
		// don't admit the pipeline exists
		return nil, fmt.Errorf("%w pipeline %s", pe.ErrNotFound, pipeID)
	}
	if len(pipe.NodeIDs) == 0 {
		return nil, fmt.Errorf("%w %s", pe.ErrEmptyPipeline, pipeID)
	}

	err = s.exec.ValidatePipeline(ctx, pipe)
	if err != nil {
		return nil, err
	}

	t := structs.NewTask(userID, pipeID, pipe.NodeIDs, doc)
	err = s.CreateTask(ctx, t)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// CreateTask records a new task & queues it.
func (s *Service) CreateTask(ctx context.Context, t *structs.Task) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("%w task has no nodes", pe.ErrInvalidArg)
	}
	err := s.db.InsertTask(ctx, t)
	if err != nil {
		return err
	}
	err = s.qu.Enqueue(ctx, t, 0)
	if err != nil {
		dropErr := s.DropTask(ctx, t, fmt.Errorf("enqueue failed: %w", err))
		if dropErr != nil {
			s.log.Error("failing unqueued task", "task", t.ID, "error", dropErr)
		}
		return err
	}
	s.log.Debug("created task", "task", t.ID, "pipe", t.PipeID, "nodes", len(t.Nodes))
	return nil
}

// QueueTask enqueues the task, then records its new state.
//
// Enqueuing first means a failed write leaves a duplicate delivery (which we tolerate)
// rather than a task nothing will ever deliver. The write only applies to a RUNNING
// task, so a task canceled meanwhile stays canceled; its delivery is dropped.
func (s *Service) QueueTask(ctx context.Context, t *structs.Task, delay time.Duration) error {
	err := s.qu.Enqueue(ctx, t, delay)
	if err != nil {
		return err
	}
	n, err := s.db.UpdateTask(ctx, t.ID, structs.UpdateFromTask(t).Guard(structs.RUNNING))
	if err != nil {
		return err
	}
	if n == 0 {
		s.log.Debug("queued task is no longer running", "task", t.ID)
	}
	return nil
}

// RetryTask requeues a task after a retriable failure, with backoff, unless it
// has already used all of its retries in which case it is failed.
func (s *Service) RetryTask(ctx context.Context, t *structs.Task, cause error) error {
	if t.Retries >= structs.MaxRetries {
		return s.DropTask(ctx, t, cause)
	}
	t.Retries++
	if cause != nil {
		t.Error = cause.Error()
	}
	delay := s.opts.Backoff.Delay(t.Retries)
	s.log.Info("retrying task", "task", t.ID, "retries", t.Retries, "delay", delay, "error", t.Error)
	return s.QueueTask(ctx, t, delay)
}

// DropTask fails a RUNNING task.
func (s *Service) DropTask(ctx context.Context, t *structs.Task, cause error) error {
	t.State = structs.FAILED
	if cause != nil {
		t.Error = cause.Error()
	}
	s.log.Info("failing task", "task", t.ID, "retries", t.Retries, "error", t.Error)
	return s.finish(ctx, t)
}

// CompleteTask marks a RUNNING task COMPLETED.
func (s *Service) CompleteTask(ctx context.Context, t *structs.Task) error {
	t.State = structs.COMPLETED
	t.Nodes = []string{}
	s.log.Debug("completed task", "task", t.ID)
	return s.finish(ctx, t)
}

func (s *Service) finish(ctx context.Context, t *structs.Task) error {
	_, err := s.db.UpdateTask(ctx, t.ID, structs.UpdateFromTask(t).Guard(structs.RUNNING))
	return err
}

// CancelTask cancels a RUNNING or SUSPENDED task. An in flight delivery is not
// interrupted, but whatever it does next will be dropped.
func (s *Service) CancelTask(ctx context.Context, userID, id string) (*structs.Task, error) {
	t, err := s.usersTask(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !structs.IsValidStateForCancel(t.State) {
		return nil, fmt.Errorf("%w task %s is %s", pe.ErrInvalidStateForCancel, id, t.State)
	}

	wasSuspended := t.Suspended()
	st := structs.CANCELED
	none := ""
	n, err := s.db.UpdateTask(ctx, id, (&structs.TaskUpdate{State: &st, ResumeToken: &none}).Guard(structs.RUNNING, structs.SUSPENDED))
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("%w task %s changed state", pe.ErrInvalidStateForCancel, id)
	}
	if wasSuspended {
		s.deleteSuspended(ctx, id)
	}

	t.State = st
	t.ResumeToken = none
	return t, nil
}

// DeleteTask removes a finished task.
func (s *Service) DeleteTask(ctx context.Context, userID, id string) error {
	t, err := s.usersTask(ctx, userID, id)
	if err != nil {
		return err
	}
	if !structs.IsValidStateForDelete(t.State) {
		return fmt.Errorf("%w task %s is %s", pe.ErrInvalidStateForDelete, id, t.State)
	}
	n, err := s.db.DeleteTasks(ctx, &structs.Query{TaskIDs: []string{id}, States: structs.TerminalStates})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w task %s changed state", pe.ErrInvalidStateForDelete, id)
	}
	return nil
}

// DeleteTasksByStates removes the user's tasks in the given (finished) states.
func (s *Service) DeleteTasksByStates(ctx context.Context, userID string, states []structs.State) (int64, error) {
	if len(states) == 0 {
		return 0, fmt.Errorf("%w no states given", pe.ErrInvalidArg)
	}
	for _, st := range states {
		if !structs.IsValidStateForDelete(st) {
			return 0, fmt.Errorf("%w %s", pe.ErrInvalidStateForDelete, st)
		}
	}
	q := &structs.Query{States: states}
	if userID != "" {
		q.UserIDs = []string{userID}
	}
	return s.db.DeleteTasks(ctx, q)
}

// DeleteTasksOlderThan removes finished tasks created more than ttl ago.
func (s *Service) DeleteTasksOlderThan(ctx context.Context, ttl time.Duration) (int64, error) {
	if ttl <= 0 {
		return 0, fmt.Errorf("%w ttl must be positive", pe.ErrInvalidArg)
	}
	return s.db.DeleteTasks(ctx, &structs.Query{
		States:        structs.TerminalStates,
		CreatedBefore: timeNow().UTC().Add(-ttl),
	})
}

func (s *Service) Tasks(ctx context.Context, q *structs.Query) ([]*structs.Task, error) {
	q.Sanitize()
	return s.db.Tasks(ctx, q)
}

// Task returns the stored task (without document)
func (s *Service) Task(ctx context.Context, id string) (*structs.Task, error) {
	found, err := s.db.Tasks(ctx, &structs.Query{TaskIDs: []string{id}, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w %s", pe.ErrTaskNotFound, id)
	}
	return found[0], nil
}

// usersTask returns the task if it belongs to the user (any user if userID is empty)
func (s *Service) usersTask(ctx context.Context, userID, id string) (*structs.Task, error) {
	t, err := s.Task(ctx, id)
	if err != nil {
		return nil, err
	}
	if userID != "" && t.UserID != userID {
		return nil, fmt.Errorf("%w %s", pe.ErrTaskNotFound, id)
	}
	return t, nil
}

// SetSplitStatus records the split watermark of a RUNNING task.
func (s *Service) SetSplitStatus(ctx context.Context, id string, status int) error {
	n, err := s.db.UpdateTask(ctx, id, (&structs.TaskUpdate{SplitStatus: &status}).Guard(structs.RUNNING))
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w task %s is not running", pe.ErrInvalidState, id)
	}
	return nil
}

// SuspendTask parks a task a processor has suspended: the task (with its document)
// is written to blob storage & the stored task marked SUSPENDED.
func (s *Service) SuspendTask(ctx context.Context, t *structs.Task) error {
	if !t.Suspended() || t.ResumeToken == "" {
		return fmt.Errorf("%w task %s has not been suspended", pe.ErrInvalidState, t.ID)
	}
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	err = s.blobs.Put(ctx, suspendKey(t.ID), data, suspendContentType)
	if err != nil {
		return err
	}
	n, err := s.db.UpdateTask(ctx, t.ID, structs.UpdateFromTask(t).Guard(structs.RUNNING))
	if err != nil {
		return err
	}
	if n == 0 {
		s.deleteSuspended(ctx, t.ID)
		return fmt.Errorf("%w task %s is no longer running", pe.ErrInvalidState, t.ID)
	}
	s.log.Info("suspended task", "task", t.ID, "node", t.Nodes[0])
	return nil
}

// ResumeTask wakes a SUSPENDED task. The result of the job it waited on is merged
// into its document and it continues from the node it was suspended at, with
// JumpStatus recording that node's position in the pipeline.
func (s *Service) ResumeTask(ctx context.Context, id, token string, result *structs.Document) (*structs.Task, error) {
	stored, err := s.Task(ctx, id)
	if err != nil {
		return nil, err
	}
	if stored.State == structs.RUNNING {
		// the job may report back before the delivery that started it has parked the task
		return nil, fmt.Errorf("%w %s", pe.ErrNotYetSuspended, id)
	}
	if stored.State != structs.SUSPENDED {
		return nil, fmt.Errorf("%w task %s is %s", pe.ErrInvalidStateForResume, id, stored.State)
	}
	if subtle.ConstantTimeCompare([]byte(stored.ResumeToken), []byte(token)) != 1 {
		return nil, fmt.Errorf("%w for task %s", pe.ErrInvalidToken, id)
	}

	data, err := s.blobs.Get(ctx, suspendKey(id))
	if errors.Is(err, pe.ErrNotFound) {
		return nil, fmt.Errorf("%w suspended task %s has no stored document", pe.ErrTaskNotFound, id)
	} else if err != nil {
		return nil, err
	}
	t := &structs.Task{}
	err = json.Unmarshal(data, t)
	if err != nil {
		return nil, err
	}
	if len(t.Nodes) == 0 {
		return nil, fmt.Errorf("%w suspended task %s has no nodes", pe.ErrInvalidState, id)
	}

	t.Document.Merge(result)
	t.JumpStatus = s.pipelineOffset(ctx, t)
	t.State = structs.RUNNING
	t.ResumeToken = ""
	t.Retries = stored.Retries

	n, err := s.db.UpdateTask(ctx, id, structs.UpdateFromTask(t).Guard(structs.SUSPENDED))
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("%w task %s changed state", pe.ErrInvalidStateForResume, id)
	}

	err = s.qu.Enqueue(ctx, t, 0)
	if err != nil {
		// put it back so the job may try again
		st := structs.SUSPENDED
		if _, rerr := s.db.UpdateTask(ctx, id, (&structs.TaskUpdate{State: &st, ResumeToken: &stored.ResumeToken}).Guard(structs.RUNNING)); rerr != nil {
			s.log.Error("re-suspending task", "task", id, "error", rerr)
		}
		return nil, err
	}

	s.deleteSuspended(ctx, id)
	s.log.Info("resumed task", "task", id, "node", t.Nodes[0], "jump_status", t.JumpStatus)
	return t, nil
}

// pipelineOffset is the index of the task's current node in its pipeline
func (s *Service) pipelineOffset(ctx context.Context, t *structs.Task) int {
	pipe, err := s.db.Pipeline(ctx, t.PipeID)
	if err == nil {
		for i, n := range pipe.NodeIDs {
			if n == t.Nodes[0] {
				return i
			}
		}
		if off := len(pipe.NodeIDs) - len(t.Nodes); off >= 0 {
			return off
		}
	} else {
		s.log.Warn("reading pipeline of resumed task", "task", t.ID, "pipe", t.PipeID, "error", err)
	}
	return 0
}

func (s *Service) deleteSuspended(ctx context.Context, id string) {
	err := s.blobs.Delete(ctx, suspendKey(id))
	if err != nil && !errors.Is(err, pe.ErrNotFound) {
		s.log.Warn("deleting suspended task document", "task", id, "error", err)
	}
}

func suspendKey(id string) string {
	return suspendPrefix + id + ".json"
}
