package queue

import (
	"crypto/tls"
	"time"
)

const (
	defQueueName      = "pipewright:tasks"
	defConcurrency    = 10
	defDeliveryRetry  = 10
	defForwardTimeout = 10 * time.Minute
)

// Options are options for the queue.
type Options struct {
	// URL encodes how we'll connect to the queue (eg. redis://localhost:6379/0).
	URL string

	// TLSConfig needed to connect to the queue (optional).
	TLSConfig *tls.Config

	// Name of the queue
	Name string

	// Concurrency is the number of deliveries a forwarder handles at once
	Concurrency int

	// DeliveryRetries is how many times the queue itself retries a delivery the
	// processing endpoint could not be reached for. This is unrelated to task retries.
	DeliveryRetries int

	// ProcessURL is where deliveries are POSTed to (ie. http://host:port/tasks/process/<key>)
	ProcessURL string

	// ForwardTimeout bounds a single POST to the processing endpoint
	ForwardTimeout time.Duration
}

func (o *Options) SetDefaults() {
	if o.Name == "" {
		o.Name = defQueueName
	}
	if o.Concurrency <= 0 {
		o.Concurrency = defConcurrency
	}
	if o.DeliveryRetries <= 0 {
		o.DeliveryRetries = defDeliveryRetry
	}
	if o.ForwardTimeout <= 0 {
		o.ForwardTimeout = defForwardTimeout
	}
}
