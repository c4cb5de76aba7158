package core

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	pe "github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/render"
	"github.com/voidshard/pipewright/pkg/structs"
)

// [name] refers to the user's secret called name
var secretRef = regexp.MustCompile(`^\[([A-Za-z0-9_.\-]+)\]$`)

// resolvedExtras are a node's extras ready to merge into a document
type resolvedExtras struct {
	keys    []string
	values  map[string]interface{}
	secrets map[string]bool
}

// resolveExtras substitutes secrets, coerces numbers & expands templated values
// of a node's extras. Templates see the document with the extras laid underneath it.
func (e *Executor) resolveExtras(ctx context.Context, userID string, extras map[string]interface{}, doc *structs.Document) (*resolvedExtras, error) {
	out := &resolvedExtras{
		keys:    make([]string, 0, len(extras)),
		values:  make(map[string]interface{}, len(extras)),
		secrets: map[string]bool{},
	}
	for k := range extras {
		out.keys = append(out.keys, k)
	}
	sort.Strings(out.keys)

	for _, k := range out.keys {
		v := extras[k]
		s, ok := v.(string)
		if !ok {
			out.values[k] = v
			continue
		}
		if m := secretRef.FindStringSubmatch(strings.TrimSpace(s)); m != nil {
			secret, err := e.db.Secret(ctx, userID, m[1])
			if errors.Is(err, pe.ErrNotFound) {
				return nil, pe.NonRetriableKind(pe.ErrSecretNotFound, "%s", m[1])
			} else if err != nil {
				return nil, pe.RetriableWrap(err, "reading secret")
			}
			out.values[k] = secret
			out.secrets[k] = true
			continue
		}
		out.values[k] = coerce(s)
	}

	data := map[string]interface{}{}
	for _, k := range out.keys {
		data[k] = out.values[k]
	}
	for _, k := range doc.Keys() {
		data[k], _ = doc.Get(k)
	}

	for _, k := range out.keys {
		if out.secrets[k] {
			continue
		}
		v, err := expand(out.values[k], data)
		if err != nil {
			return nil, pe.NonRetriableWrap(err, fmt.Sprintf("expanding extra %s", k))
		}
		out.values[k] = v
	}
	return out, nil
}

// mergeInto adds the extras to the document; keys the document already has keep
// the document's value. Returns the keys that were added.
func (r *resolvedExtras) mergeInto(doc *structs.Document) []string {
	added := []string{}
	for _, k := range r.keys {
		if doc.Has(k) {
			continue
		}
		doc.Set(k, r.values[k])
		added = append(added, k)
	}
	return added
}

// coerce turns numeric strings into int64 / float64
func coerce(s string) interface{} {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return s
}

// expand renders every templated string in v, descending into maps & lists
func expand(v interface{}, data map[string]interface{}) (interface{}, error) {
	switch t := v.(type) {
	case string:
		if !render.Contains(t) {
			return t, nil
		}
		return render.Expand(t, data)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, inner := range t {
			x, err := expand(inner, data)
			if err != nil {
				return nil, err
			}
			out[k] = x
		}
		return out, nil
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, inner := range t {
			x, err := expand(inner, data)
			if err != nil {
				return nil, err
			}
			out[i] = x
		}
		return out, nil
	default:
		return v, nil
	}
}
