package processor

import (
	"net/http"
	"sort"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"

	"github.com/voidshard/pipewright/pkg/storage"
)

// Names of the built in processors
const (
	NameTemplate    = "template"
	NameSplit       = "split_task"
	NameJump        = "jump"
	NameHalt        = "halt"
	NameCallback    = "callback"
	NameChat        = "chat"
	NameEmbedding   = "embedding"
	NameWriteVector = "write_vector"
	NameInfoFile    = "info_file"
	NameRemoteJob   = "remote_job"
)

// Registry maps processor names to implementations.
type Registry struct {
	procs map[string]Processor
}

func NewRegistry() *Registry {
	return &Registry{procs: map[string]Processor{}}
}

// Register adds (or replaces) a named processor
func (r *Registry) Register(name string, p Processor) *Registry {
	r.procs[name] = p
	return r
}

func (r *Registry) Get(name string) (Processor, bool) {
	p, ok := r.procs[name]
	return p, ok
}

// Names of all registered processors, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.procs))
	for n := range r.procs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Dependencies of the built in processors. Processors whose dependencies are
// missing are not registered.
type Dependencies struct {
	Tasks Tasks
	Boxes Allocator
	Blobs storage.BlobStore

	OpenAI   *OpenAIOptions
	Weaviate *weaviate.Client

	// ResumeURL is the externally reachable resume endpoint prefix,
	// ie. https://host/tasks/resume/{key}
	ResumeURL string

	HTTP *http.Client
}

// Builtins registers every built in processor we have the dependencies for.
func (r *Registry) Builtins(deps *Dependencies) *Registry {
	hc := deps.HTTP
	if hc == nil {
		hc = &http.Client{Timeout: defCallbackTimeout}
	}

	r.Register(NameTemplate, &Template{}).
		Register(NameJump, &Jump{}).
		Register(NameHalt, &Halt{}).
		Register(NameCallback, NewCallback(hc))

	if deps.Tasks != nil {
		r.Register(NameSplit, NewSplit(deps.Tasks))
	}
	if deps.OpenAI != nil {
		r.Register(NameChat, NewChat(deps.OpenAI))
	}
	if deps.OpenAI != nil || deps.Boxes != nil {
		r.Register(NameEmbedding, NewEmbedding(deps.OpenAI, deps.Boxes))
	}
	if deps.Weaviate != nil {
		r.Register(NameWriteVector, NewWriteVector(deps.Weaviate))
	}
	if deps.Blobs != nil {
		r.Register(NameInfoFile, NewInfoFile(deps.Blobs))
	}
	if deps.Boxes != nil && deps.ResumeURL != "" {
		r.Register(NameRemoteJob, NewRemoteJob(deps.Boxes, deps.ResumeURL))
	}
	return r
}
