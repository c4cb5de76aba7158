package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	pe "github.com/voidshard/pipewright/pkg/errors"
)

func TestExpand(t *testing.T) {
	data := map[string]interface{}{
		"name":  "ann",
		"items": []interface{}{"a", "b"},
		"meta":  map[string]interface{}{"lang": "en"},
		"empty": "",
	}

	cases := []struct {
		Name   string
		Text   string
		Expect string
		Err    error
	}{
		{"Plain", "hello", "hello", nil},
		{"Field", "hi {{.name}}", "hi ann", nil},
		{"Nested", "{{.meta.lang}}", "en", nil},
		{"Join", `{{join .items ", "}}`, "a, b", nil},
		{"Upper", `{{upper .name}}`, "ANN", nil},
		{"JSON", `{{json .items}}`, `["a","b"]`, nil},
		{"Default", `{{default "none" .empty}}`, "none", nil},
		{"Missing", "{{.nope}}", "", pe.ErrInvalidArg},
		{"BadSyntax", "{{.name", "", pe.ErrInvalidArg},
		{"NoFileAccess", `{{readFile "/etc/passwd"}}`, "", pe.ErrInvalidArg},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			out, err := Expand(c.Text, data)

			assert.Equal(t, c.Expect, out)
			if c.Err == nil {
				assert.Nil(t, err)
			} else {
				assert.True(t, errors.Is(err, c.Err))
			}
		})
	}
}

func TestExpandCapsOutput(t *testing.T) {
	data := map[string]interface{}{"big": strings.Repeat("x", MaxOutput/2+1)}

	_, err := Expand("{{.big}}{{.big}}", data)

	assert.True(t, errors.Is(err, pe.ErrMaxExceeded))
}

func TestBlock(t *testing.T) {
	text := `ignored {{.name}}{{define "json"}}{"greeting": "hi {{.name}}"}{{end}}`

	out, found, err := Block(text, BlockJSON, map[string]interface{}{"name": "ann"})

	assert.Nil(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"greeting": "hi ann"}`, out)
}

func TestBlockMissing(t *testing.T) {
	out, found, err := Block("just {{.name}}", BlockJSON, map[string]interface{}{"name": "ann"})

	assert.Nil(t, err)
	assert.False(t, found)
	assert.Equal(t, "", out)
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("{{.a}}"))
	assert.False(t, Contains("plain [token]"))
}
