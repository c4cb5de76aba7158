package api

import (
	"fmt"
	"log/slog"

	"github.com/voidshard/pipewright/internal/core"
	"github.com/voidshard/pipewright/pkg/database"
	"github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/processor"
	"github.com/voidshard/pipewright/pkg/queue"
	"github.com/voidshard/pipewright/pkg/storage"
)

// NewAPI builds the task service along with every built in processor we have the
// dependencies for.
//
// Suspended tasks are parked in blobs; if nil they're held in memory, which only
// suits a single process.
func NewAPI(db database.Database, qu queue.Queue, blobs storage.BlobStore, opts *Options) (API, error) {
	if db == nil || qu == nil {
		return nil, fmt.Errorf("%w database and queue are required", errors.ErrInvalidArg)
	}
	if opts == nil {
		opts = OptionsClientDefault()
	}
	opts.SetDefaults()
	if blobs == nil {
		slog.Warn("no blob store configured, suspended tasks will be held in memory")
		blobs = storage.NewMemory()
	}

	reg := processor.NewRegistry()
	svc := core.NewService(opts.Core, db, qu, blobs, opts.Boxes, reg)

	deps := *opts.Processors
	deps.Tasks = svc
	if deps.Blobs == nil {
		deps.Blobs = blobs
	}
	reg.Builtins(&deps)
	slog.Debug("registered processors", "names", reg.Names())

	return svc, nil
}
