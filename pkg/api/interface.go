package api

import (
	"context"

	"github.com/voidshard/pipewright/pkg/structs"
)

// API represents the functions pipewright servers should expose.
type API interface {
	// Implemented in pipewright/internal/core.Service

	CreatePipelineTask(ctx context.Context, userID, pipeID string, doc *structs.Document) (*structs.Task, error)
	Tasks(ctx context.Context, q *structs.Query) ([]*structs.Task, error)

	CancelTask(ctx context.Context, userID, id string) (*structs.Task, error)
	DeleteTask(ctx context.Context, userID, id string) error
	DeleteTasksByStates(ctx context.Context, userID string, states []structs.State) (int64, error)

	// Process handles one queue delivery of a task
	Process(ctx context.Context, delivered *structs.Task) error

	// ResumeTask wakes a suspended task with the result of the job it waited on
	ResumeTask(ctx context.Context, id, token string, result *structs.Document) (*structs.Task, error)

	// RefreshBoxes syncs our worker box inventory with the box controller
	RefreshBoxes(ctx context.Context) (int, error)

	Close() error
}

type Server interface {
	ServeForever(api API) error
	Close() error
}
