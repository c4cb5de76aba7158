package core

import (
	"context"
	"errors"

	pe "github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/structs"
)

// Process handles one delivery of a task from the queue: its current node is
// executed and the task advanced, retried, failed or suspended accordingly.
//
// Deliveries of tasks that are missing or no longer RUNNING are dropped. The
// returned error is for logging only; the delivery should not be redelivered
// because of it.
func (s *Service) Process(ctx context.Context, delivered *structs.Task) error {
	outcome, err := s.process(ctx, delivered)
	metricDeliveries.WithLabelValues(outcome).Inc()
	if err != nil {
		s.log.Error("processing task", "task", delivered.ID, "outcome", outcome, "error", err)
	}
	return err
}

func (s *Service) process(ctx context.Context, delivered *structs.Task) (string, error) {
	stored, err := s.Task(ctx, delivered.ID)
	if errors.Is(err, pe.ErrTaskNotFound) {
		s.log.Debug("dropping delivery of unknown task", "task", delivered.ID)
		return outcomeAbsent, nil
	} else if err != nil {
		return s.retry(ctx, delivered, pe.RetriableWrap(err, "reading task"))
	}
	if !structs.IsValidStateForProcess(stored.State) {
		s.log.Debug("dropping delivery", "task", delivered.ID, "state", stored.State)
		return outcomeSkipped, nil
	}

	delivered.State = stored.State
	original := delivered.Copy()

	result, err := s.exec.Execute(ctx, delivered)
	if errors.Is(err, pe.ErrInvalidState) {
		s.log.Debug("task changed state during execution", "task", delivered.ID, "error", err)
		return outcomeSkipped, nil
	} else if pe.IsRetriable(err) {
		return s.retry(ctx, original, err)
	} else if err != nil {
		return outcomeFailed, s.DropTask(ctx, original, err)
	}

	if result.Suspended() {
		err = s.SuspendTask(ctx, result)
		if errors.Is(err, pe.ErrInvalidState) {
			return outcomeSkipped, nil
		} else if err != nil {
			return s.retry(ctx, original, pe.RetriableWrap(err, "suspending task"))
		}
		return outcomeSuspended, nil
	}

	if result.Resumed() {
		result.JumpStatus = structs.NotJumped
	}
	result.RemoveNode()
	if len(result.Nodes) == 0 {
		return outcomeCompleted, s.CompleteTask(ctx, result)
	}

	err = s.QueueTask(ctx, result, 0)
	if err != nil {
		return outcomeError, err
	}
	return outcomeAdvanced, nil
}

func (s *Service) retry(ctx context.Context, t *structs.Task, cause error) (string, error) {
	outcome := outcomeRetried
	if t.Retries >= structs.MaxRetries {
		outcome = outcomeFailed
	}
	return outcome, s.RetryTask(ctx, t, cause)
}
