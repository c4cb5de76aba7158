package processor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pe "github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/processor"
	"github.com/voidshard/pipewright/pkg/structs"
)

func templateInvocation(text string, outputs []string, doc map[string]interface{}) *processor.Invocation {
	fields := []structs.Field{}
	for _, o := range outputs {
		fields = append(fields, structs.Field{Name: o})
	}
	return &processor.Invocation{
		Node:     &structs.Node{ID: "n"},
		Template: &structs.Template{ID: "tmpl", Text: text, OutputFields: fields},
		Task:     structs.NewTask("u", "p", []string{"n"}, structs.DocumentFromMap(doc)),
	}
}

func TestTemplate(t *testing.T) {
	cases := []struct {
		Name    string
		Text    string
		Outputs []string
		Doc     map[string]interface{}
		Key     string
		Expect  interface{}
	}{
		{
			"JSONObject",
			`{"greeting": "hello {{.name}}"}`,
			[]string{"greeting"},
			map[string]interface{}{"name": "bob"},
			"greeting",
			"hello bob",
		},
		{
			"SingleOutput",
			`{{upper .name}} says hi`,
			[]string{"line"},
			map[string]interface{}{"name": "bob"},
			"line",
			"BOB says hi",
		},
		{
			"JoinList",
			`{{join .words ", "}}`,
			[]string{"line"},
			map[string]interface{}{"words": []interface{}{"a", "b"}},
			"line",
			"a, b",
		},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			in := templateInvocation(c.Text, c.Outputs, c.Doc)

			result, err := (&processor.Template{}).Process(context.Background(), in)

			require.Nil(t, err)
			got, _ := result.Document.Get(c.Key)
			assert.Equal(t, c.Expect, got)
		})
	}
}

func TestTemplateErrors(t *testing.T) {
	cases := []struct {
		Name    string
		Text    string
		Outputs []string
	}{
		{"MissingKey", `{{.nope}}`, []string{"line"}},
		{"BadSyntax", `{{.name`, []string{"line"}},
		{"NotObjectManyOutputs", `plain text`, []string{"a", "b"}},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			in := templateInvocation(c.Text, c.Outputs, map[string]interface{}{"name": "bob"})

			_, err := (&processor.Template{}).Process(context.Background(), in)

			assert.ErrorIs(t, err, pe.ErrNonRetriable)
		})
	}
}

func TestPostTemplate(t *testing.T) {
	text := `ignored {{define "json"}}{"shout": "{{upper .word}}"}{{end}}`
	in := templateInvocation(text, nil, map[string]interface{}{"word": "hey"})

	result, err := (&processor.PostTemplate{}).Process(context.Background(), in)

	require.Nil(t, err)
	got, _ := result.Document.Get("shout")
	assert.Equal(t, "HEY", got)
}

func TestPostTemplateNoop(t *testing.T) {
	cases := []struct {
		Name     string
		Template *structs.Template
	}{
		{"NoTemplate", nil},
		{"NoActions", &structs.Template{Text: "plain"}},
		{"NoBlock", &structs.Template{Text: "{{.word}}"}},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			in := templateInvocation("", nil, map[string]interface{}{"word": "hey"})
			in.Template = c.Template

			result, err := (&processor.PostTemplate{}).Process(context.Background(), in)

			assert.Nil(t, err)
			assert.Equal(t, []string{"word"}, result.Document.Keys())
		})
	}
}

func TestPostTemplateNotObject(t *testing.T) {
	in := templateInvocation(`{{define "json"}}[1, 2]{{end}}`, nil, map[string]interface{}{})

	_, err := (&processor.PostTemplate{}).Process(context.Background(), in)

	assert.ErrorIs(t, err, pe.ErrNonRetriable)
}
