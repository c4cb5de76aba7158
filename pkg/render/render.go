// Package render expands user supplied templates over a document.
//
// Templates are Go text/templates restricted to a small set of pure functions; they
// cannot reach the filesystem or network and their output is capped.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/structs"
)

const (
	// MaxOutput is the most a single render may write
	MaxOutput = 1 << 20

	// BlockJSON is the template block the post-processor looks for
	BlockJSON = "json"
)

var funcs = template.FuncMap{
	"join":  join,
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
	"trim":  strings.TrimSpace,
	"split": strings.Split,
	"json":  toJSON,
	"default": func(def, v interface{}) interface{} {
		if structs.Truthy(v) {
			return v
		}
		return def
	},
}

// Contains returns if s looks like it holds template actions
func Contains(s string) bool {
	return strings.Contains(s, "{{")
}

// Expand renders text over data.
func Expand(text string, data map[string]interface{}) (string, error) {
	tmpl, err := parse("expand", text)
	if err != nil {
		return "", err
	}
	return execute(tmpl, data)
}

// Block renders only the named block of text (eg. {{define "json"}}..{{end}}).
// If the block isn't defined found is false.
func Block(text, name string, data map[string]interface{}) (out string, found bool, err error) {
	tmpl, err := parse("block", text)
	if err != nil {
		return "", false, err
	}
	block := tmpl.Lookup(name)
	if block == nil {
		return "", false, nil
	}
	out, err = execute(block, data)
	return out, true, err
}

func parse(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Funcs(funcs).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w template: %v", errors.ErrInvalidArg, err)
	}
	return tmpl, nil
}

func execute(tmpl *template.Template, data map[string]interface{}) (string, error) {
	w := &cappedWriter{max: MaxOutput}
	err := tmpl.Execute(w, data)
	if err != nil {
		return "", fmt.Errorf("%w template: %w", errors.ErrInvalidArg, err)
	}
	return w.buf.String(), nil
}

type cappedWriter struct {
	buf bytes.Buffer
	max int
}

func (c *cappedWriter) Write(p []byte) (int, error) {
	if c.buf.Len()+len(p) > c.max {
		return 0, fmt.Errorf("%w output over %d bytes", errors.ErrMaxExceeded, c.max)
	}
	return c.buf.Write(p)
}

func join(in interface{}, sep string) string {
	list, ok := structs.AsList(in)
	if !ok {
		return fmt.Sprint(in)
	}
	parts := make([]string, len(list))
	for i, v := range list {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, sep)
}

func toJSON(in interface{}) (string, error) {
	data, err := json.Marshal(in)
	return string(data), err
}
