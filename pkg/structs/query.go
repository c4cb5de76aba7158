package structs

import (
	"time"
)

const (
	queryLimitDefault = 1000
	queryLimitMax     = 10000
)

type Query struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`

	// Filters
	TaskIDs []string `json:"task_ids,omitempty"`
	UserIDs []string `json:"user_ids,omitempty"`
	PipeIDs []string `json:"pipe_ids,omitempty"`
	States  []State  `json:"states,omitempty"`

	// CreatedBefore, if set, matches tasks created strictly before this time
	CreatedBefore time.Time `json:"created_before,omitempty"`
}

func (q *Query) Sanitize() {
	if q.Limit <= 0 {
		q.Limit = queryLimitDefault
	}
	if q.Limit > queryLimitMax {
		q.Limit = queryLimitMax
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if len(q.TaskIDs) == 0 {
		q.TaskIDs = nil
	}
	if len(q.UserIDs) == 0 {
		q.UserIDs = nil
	}
	if len(q.PipeIDs) == 0 {
		q.PipeIDs = nil
	}
	if len(q.States) == 0 {
		q.States = nil
	}
}
