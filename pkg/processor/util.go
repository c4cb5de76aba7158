package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	pe "github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/structs"
)

const maxResponseBytes = 10 << 20

// client errors worth trying again; every 5xx is too
var retriableStatus = map[int]bool{
	http.StatusRequestTimeout:  true,
	http.StatusConflict:        true,
	http.StatusTooEarly:        true,
	http.StatusTooManyRequests: true,
}

// IsRetriableStatus reports if an HTTP status from a remote service is
// worth retrying.
func IsRetriableStatus(code int) bool {
	return code >= 500 || retriableStatus[code]
}

// statusError classifies a non 2xx reply
func statusError(code int, what string) error {
	if IsRetriableStatus(code) {
		return pe.Retriable("%s returned %d", what, code)
	}
	return pe.NonRetriable("%s returned %d", what, code)
}

// postJSON posts data as JSON & decodes a JSON reply into out (if given).
// Transport failures and retriable status codes are retriable, anything else
// is not.
func postJSON(ctx context.Context, hc *http.Client, url string, data, out interface{}) error {
	body, err := json.Marshal(data)
	if err != nil {
		return pe.NonRetriableWrap(err, "encoding request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return pe.NonRetriableWrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return pe.RetriableWrap(err, fmt.Sprintf("posting to %s", req.URL.Host))
	}
	defer resp.Body.Close()

	reply, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return pe.RetriableWrap(err, "reading reply")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, req.URL.Host)
	}
	if out == nil || len(bytes.TrimSpace(reply)) == 0 {
		return nil
	}
	err = json.Unmarshal(reply, out)
	if err != nil {
		return pe.NonRetriableWrap(err, "decoding reply")
	}
	return nil
}

// docString returns a non empty string field, or def if the field is missing.
func docString(doc *structs.Document, key, def string) (string, error) {
	v, ok := doc.Get(key)
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", pe.NonRetriable("field %s must be a string, got %T", key, v)
	}
	if s == "" {
		return def, nil
	}
	return s, nil
}

// docStrings returns a field as a list of strings; a single string is a list of one.
func docStrings(doc *structs.Document, key string) ([]string, error) {
	v, ok := doc.Get(key)
	if !ok {
		return nil, pe.NonRetriableKind(pe.ErrMissingInputField, "%s", key)
	}
	if s, ok := v.(string); ok {
		return []string{s}, nil
	}
	list, ok := structs.AsList(v)
	if !ok {
		return nil, pe.NonRetriable("field %s must be a list, got %T", key, v)
	}
	out := make([]string, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, pe.NonRetriable("field %s[%d] must be a string, got %T", key, i, item)
		}
		out[i] = s
	}
	return out, nil
}

// vectors converts a list of numeric lists (as decoded from JSON) to float32 vectors
func vectors(key string, v interface{}) ([][]float32, error) {
	list, ok := structs.AsList(v)
	if !ok {
		return nil, pe.NonRetriable("field %s must be a list, got %T", key, v)
	}
	out := make([][]float32, len(list))
	for i, item := range list {
		inner, ok := structs.AsList(item)
		if !ok {
			return nil, pe.NonRetriable("field %s[%d] must be a list, got %T", key, i, item)
		}
		vec := make([]float32, len(inner))
		for j, n := range inner {
			f, ok := structs.AsFloat(n)
			if !ok {
				return nil, pe.NonRetriable("field %s[%d][%d] is not a number", key, i, j)
			}
			vec[j] = float32(f)
		}
		out[i] = vec
	}
	return out, nil
}

// listOf converts vectors to plain JSON-like values for the document
func listOf(vecs [][]float32) []interface{} {
	out := make([]interface{}, len(vecs))
	for i, vec := range vecs {
		inner := make([]interface{}, len(vec))
		for j, f := range vec {
			inner[j] = float64(f)
		}
		out[i] = inner
	}
	return out
}
