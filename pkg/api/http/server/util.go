package server

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/voidshard/pipewright/internal/utils"
	pe "github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/structs"
)

const (
	// maxBody caps request bodies (documents, resume results)
	maxBody = 32 << 20
)

var (
	errmap map[int][]error = map[int][]error{
		http.StatusBadRequest: []error{
			pe.ErrInvalidArg,
			pe.ErrMaxExceeded,
			pe.ErrNotSupported,
			pe.ErrEmptyPipeline,
			pe.ErrUnknownProcessor,
		},
		http.StatusForbidden: []error{
			pe.ErrInvalidToken,
			pe.ErrNotPermitted,
		},
		http.StatusNotFound: []error{
			pe.ErrNotFound,
			pe.ErrTaskNotFound,
		},
		http.StatusConflict: []error{
			pe.ErrInvalidState,
		},
		http.StatusServiceUnavailable: []error{
			pe.ErrNotYetSuspended,
		},
	}
)

// mapError returns the http status code for a given error, or
// http.StatusInternalServerError if the error is not recognised.
func mapError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	for code, errs := range errmap {
		for _, e := range errs {
			if errors.Is(err, e) {
				return code
			}
		}
	}
	return http.StatusInternalServerError
}

// validKey reports if the given key matches ours
func validKey(ours, given string) bool {
	if ours == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(ours), []byte(given)) == 1
}

// userID returns the calling user, writing an error if there isn't one
func userID(w http.ResponseWriter, r *http.Request, header string) (string, bool) {
	id := r.Header.Get(header)
	if id == "" {
		http.Error(w, "missing "+header, http.StatusUnauthorized)
		return "", false
	}
	return id, true
}

func unmarshalQuery(w http.ResponseWriter, r *http.Request, out *structs.Query) error {
	q := r.URL.Query()

	if q.Has("limit") {
		limit, err := strconv.Atoi(q.Get("limit"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return fmt.Errorf("bad limit: %v", err)
		}
		out.Limit = limit
	}

	if q.Has("offset") {
		offset, err := strconv.Atoi(q.Get("offset"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return fmt.Errorf("bad offset: %v", err)
		}
		out.Offset = offset
	}

	if q.Has("task_ids") {
		out.TaskIDs = q["task_ids"]
		for _, id := range out.TaskIDs {
			if !utils.IsValidID(id) {
				http.Error(w, "bad task id", http.StatusBadRequest)
				return fmt.Errorf("bad task id: %v", id)
			}
		}
	}
	if q.Has("pipe_ids") {
		out.PipeIDs = q["pipe_ids"]
	}
	if q.Has("states") {
		out.States = []structs.State{}
		for _, s := range q["states"] {
			st := structs.ToState(s)
			if st == "" {
				http.Error(w, "bad state", http.StatusBadRequest)
				return fmt.Errorf("bad state: %v", s)
			}
			out.States = append(out.States, st)
		}
	}

	out.Sanitize()
	return nil
}

// unmarshalJson reads the body of a request and attempts to unmarshal it into the given object.
// This function write an error to the writer if an error occurs, and returns the error.
func unmarshalJson(w http.ResponseWriter, r *http.Request, obj interface{}) error {
	if r.Body == nil {
		http.Error(w, "No body", http.StatusBadRequest)
		return fmt.Errorf("no body")
	}
	d := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))

	err := d.Decode(obj)
	if err != nil {
		// bad JSON, or not the object we wanted
		http.Error(w, err.Error(), http.StatusBadRequest)
		return fmt.Errorf("bad json: %v", err)
	}

	return nil
}

// unmarshalDocument reads an optional JSON object body; no body is an empty document.
func unmarshalDocument(w http.ResponseWriter, r *http.Request) (*structs.Document, error) {
	doc := structs.NewDocument()
	if r.Body == nil || r.ContentLength == 0 {
		return doc, nil
	}
	return doc, unmarshalJson(w, r, doc)
}

// encode writes obj as the JSON response
func encode(w http.ResponseWriter, obj interface{}) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(obj)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// scrubbed returns a copy of the task safe to hand back to a caller
func scrubbed(t *structs.Task) *structs.Task {
	out := t.Copy()
	out.Document = out.Document.Scrubbed()
	return out
}
