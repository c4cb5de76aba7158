package core

import (
	"time"

	"github.com/voidshard/pipewright/pkg/queue"
)

const (
	defTaskTTL         = 7 * 24 * time.Hour
	defSweepFrequency  = time.Hour
	defCallbackTimeout = 10 * time.Second
)

// Options of the core service.
type Options struct {
	// Backoff is the delay schedule between retries of a task
	Backoff queue.Backoff `yaml:"backoff"`

	// TaskTTL is how long finished tasks are kept before the sweeper deletes them.
	// The sweeper runs every SweepFrequency; if either is negative it doesn't run.
	TaskTTL        time.Duration `yaml:"task_ttl"`
	SweepFrequency time.Duration `yaml:"sweep_frequency"`

	// CallbackTimeout bounds failure callbacks. DefaultCallbackURI is used
	// when a task document has no callback_uri of its own.
	CallbackTimeout    time.Duration `yaml:"callback_timeout" validate:"gte=0"`
	DefaultCallbackURI string        `yaml:"default_callback_uri" validate:"omitempty,url"`

	// BoxKinds are the kinds of worker box we manage. Boxes of these kinds no
	// longer reported by the controller are purged on refresh.
	BoxKinds []string `yaml:"box_kinds" validate:"dive,required"`
}

// DefaultOptions returns options with every default set
func DefaultOptions() *Options {
	o := &Options{}
	o.SetDefaults()
	return o
}

// SetDefaults fills in anything left zero
func (o *Options) SetDefaults() {
	if o.Backoff == (queue.Backoff{}) {
		o.Backoff = queue.DefaultBackoff()
	}
	if o.TaskTTL == 0 {
		o.TaskTTL = defTaskTTL
	}
	if o.SweepFrequency == 0 {
		o.SweepFrequency = defSweepFrequency
	}
	if o.CallbackTimeout <= 0 {
		o.CallbackTimeout = defCallbackTimeout
	}
}
