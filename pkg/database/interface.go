package database

import (
	"context"

	"github.com/voidshard/pipewright/pkg/structs"
)

// TaskStore persists tasks.
//
// The document of a task is not stored here; it travels with the task through the queue
// (or through blob storage while a task is suspended).
type TaskStore interface {
	// InsertTask writes a new task.
	InsertTask(ctx context.Context, t *structs.Task) error

	// UpdateTask applies a partial update to the given task, returning the number of rows
	// altered. If the update carries WhereStates and the task is not in one of them, zero
	// rows are altered and no error is returned.
	UpdateTask(ctx context.Context, id string, u *structs.TaskUpdate) (int64, error)

	// Tasks returns tasks matching the query, newest first.
	Tasks(ctx context.Context, q *structs.Query) ([]*structs.Task, error)

	// DeleteTasks removes tasks matching the query filters (limit & offset are ignored).
	// A query with no filters deletes nothing.
	DeleteTasks(ctx context.Context, q *structs.Query) (int64, error)
}

// Catalog is read only access to records authored elsewhere.
//
// Every method returns errors.ErrNotFound if the record does not exist.
type Catalog interface {
	User(ctx context.Context, id string) (*structs.User, error)
	Pipeline(ctx context.Context, id string) (*structs.Pipeline, error)
	Node(ctx context.Context, id string) (*structs.Node, error)
	Template(ctx context.Context, id string) (*structs.Template, error)

	// Secret returns the user's stored secret of the given name
	Secret(ctx context.Context, userID, name string) (string, error)
}

// Inventory records the worker boxes we know of.
type Inventory interface {
	// Boxes of the given kind
	Boxes(ctx context.Context, kind string) ([]*structs.Box, error)

	// SetBoxStatus marks a box with the given status
	SetBoxStatus(ctx context.Context, id string, status structs.BoxStatus) error

	// UpsertBoxes writes the given boxes, replacing any existing entry with the same ID
	UpsertBoxes(ctx context.Context, boxes []*structs.Box) error

	// DeleteBoxesExcept removes all boxes of a kind whose ID isn't listed
	DeleteBoxesExcept(ctx context.Context, kind string, keep []string) (int64, error)
}

type Database interface {
	TaskStore
	Catalog
	Inventory

	Close() error
}
