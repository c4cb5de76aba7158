package queue

import (
	"context"
	"time"

	"github.com/voidshard/pipewright/pkg/structs"
)

// Queue delivers tasks to the processing endpoint, at least once, after some delay.
type Queue interface {
	// Enqueue serializes the task and schedules its delivery.
	//
	// A delay of zero means "use the default": `run_in` seconds if the task document
	// holds it, otherwise a short random jitter.
	Enqueue(ctx context.Context, t *structs.Task, delay time.Duration) error

	// Close & shutdown the queue.
	Close() error
}

// Forwarder is the consuming side of a Queue: it pulls deliveries and posts each
// one to the processing endpoint.
type Forwarder interface {
	// Run blocks, forwarding deliveries until Close() is called.
	Run() error

	// Close & shutdown.
	Close() error
}
