package structs

// User is the owner of pipelines, nodes & tasks.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// DatabaseID & APIKey are injected into a document for the duration of
	// a processor call, so processors can reach the user's data.
	DatabaseID string `json:"-"`
	APIKey     string `json:"-"`
}

// Pipeline is an ordered chain of nodes.
type Pipeline struct {
	ID      string   `json:"id"`
	UserID  string   `json:"user_id"`
	Name    string   `json:"name"`
	NodeIDs []string `json:"node_ids"`
}

// Node is one configured step of a pipeline.
type Node struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`

	// Processor is the name of the registered processor this node dispatches to.
	Processor string `json:"processor"`

	// TemplateID optionally names the template declaring this node's fields.
	TemplateID string `json:"template_id"`

	// Extras are static or templated config merged into the document before
	// the processor runs.
	Extras map[string]interface{} `json:"extras"`
}

// Field is a declared input or output of a template.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Template declares the fields a node reads & writes, and (optionally) some
// template text processors & the template post-processor render.
type Template struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	Name         string  `json:"name"`
	Text         string  `json:"text"`
	InputFields  []Field `json:"input_fields"`
	OutputFields []Field `json:"output_fields"`
}

// InputNames returns the names of the input fields
func (t *Template) InputNames() []string {
	return fieldNames(t.InputFields)
}

// OutputNames returns the names of the output fields
func (t *Template) OutputNames() []string {
	return fieldNames(t.OutputFields)
}

func fieldNames(in []Field) []string {
	out := make([]string, len(in))
	for i, f := range in {
		out[i] = f.Name
	}
	return out
}
