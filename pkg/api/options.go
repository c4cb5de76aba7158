package api

import (
	"net/http"
	"time"

	"github.com/voidshard/pipewright/internal/core"
	"github.com/voidshard/pipewright/pkg/processor"
)

const (
	defProcessorTimeout = 2 * time.Minute
)

// Options passed to the pipewright API on creation
type Options struct {
	// Core are options of the task service itself
	Core *core.Options

	// Processors carries whatever the built in processors need (OpenAI settings, a
	// weaviate client, a box allocator ..). Processors whose dependencies are not given
	// are not registered. The Tasks dependency is always the service itself.
	Processors *processor.Dependencies

	// Boxes, if set, is asked for the current worker boxes on a box refresh.
	Boxes core.BoxLister
}

// OptionsClientDefault runs a service with only the processors that need nothing
// external (template, jump, halt, callback, split_task).
func OptionsClientDefault() *Options {
	return &Options{
		Core:       core.DefaultOptions(),
		Processors: &processor.Dependencies{},
	}
}

// SetDefaults fills in anything left nil
func (o *Options) SetDefaults() {
	if o.Core == nil {
		o.Core = core.DefaultOptions()
	} else {
		o.Core.SetDefaults()
	}
	if o.Processors == nil {
		o.Processors = &processor.Dependencies{}
	}
	if o.Processors.HTTP == nil {
		o.Processors.HTTP = &http.Client{Timeout: defProcessorTimeout}
	}
}
