package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidshard/pipewright/internal/utils"
	"github.com/voidshard/pipewright/pkg/api/http/common"
	pe "github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/structs"
)

const testKey = "s3cret-key"

// fakeAPI records calls & returns canned results
type fakeAPI struct {
	err error

	user      string
	pipeID    string
	doc       *structs.Document
	query     *structs.Query
	states    []structs.State
	delivered *structs.Task
	token     string
	taskID    string
	boxes     int
}

func (f *fakeAPI) CreatePipelineTask(ctx context.Context, userID, pipeID string, doc *structs.Document) (*structs.Task, error) {
	f.user, f.pipeID, f.doc = userID, pipeID, doc
	if f.err != nil {
		return nil, f.err
	}
	return structs.NewTask(userID, pipeID, []string{"n1"}, doc), nil
}

func (f *fakeAPI) Tasks(ctx context.Context, q *structs.Query) ([]*structs.Task, error) {
	f.query = q
	return []*structs.Task{{ID: "t1", State: structs.RUNNING}}, f.err
}

func (f *fakeAPI) CancelTask(ctx context.Context, userID, id string) (*structs.Task, error) {
	f.user, f.taskID = userID, id
	if f.err != nil {
		return nil, f.err
	}
	return &structs.Task{ID: id, State: structs.CANCELED}, nil
}

func (f *fakeAPI) DeleteTask(ctx context.Context, userID, id string) error {
	f.user, f.taskID = userID, id
	return f.err
}

func (f *fakeAPI) DeleteTasksByStates(ctx context.Context, userID string, states []structs.State) (int64, error) {
	f.user, f.states = userID, states
	return 3, f.err
}

func (f *fakeAPI) Process(ctx context.Context, delivered *structs.Task) error {
	f.delivered = delivered
	return f.err
}

func (f *fakeAPI) ResumeTask(ctx context.Context, id, token string, result *structs.Document) (*structs.Task, error) {
	f.taskID, f.token, f.doc = id, token, result
	if f.err != nil {
		return nil, f.err
	}
	t := &structs.Task{ID: id, State: structs.RUNNING, Document: result}
	return t, nil
}

func (f *fakeAPI) RefreshBoxes(ctx context.Context) (int, error) {
	return f.boxes, f.err
}

func (f *fakeAPI) Close() error {
	return nil
}

func newTestServer(t *testing.T, svc *fakeAPI) *httptest.Server {
	s := NewServer(":0", testKey, true)
	ts := httptest.NewServer(s.Handler(svc))
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, user string, body interface{}) *http.Response {
	var buf bytes.Buffer
	if body != nil {
		require.Nil(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.Nil(t, err)
	if user != "" {
		req.Header.Set(common.HEADER_USER_ID, user)
	}
	resp, err := http.DefaultClient.Do(req)
	require.Nil(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestMapError(t *testing.T) {
	cases := []struct {
		Err  error
		Code int
	}{
		{nil, http.StatusOK},
		{pe.ErrInvalidArg, http.StatusBadRequest},
		{fmt.Errorf("%w x", pe.ErrUnknownProcessor), http.StatusBadRequest},
		{pe.ErrInvalidToken, http.StatusForbidden},
		{fmt.Errorf("%w t1", pe.ErrTaskNotFound), http.StatusNotFound},
		{fmt.Errorf("%w pipeline", pe.ErrNotFound), http.StatusNotFound},
		{pe.ErrInvalidStateForResume, http.StatusConflict},
		{pe.ErrInvalidStateForCancel, http.StatusConflict},
		{fmt.Errorf("%w t1", pe.ErrNotYetSuspended), http.StatusServiceUnavailable},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		assert.Equal(t, c.Code, mapError(c.Err), c.Err)
	}
}

func TestProcess(t *testing.T) {
	cases := []struct {
		Name   string
		Key    string
		Body   interface{}
		Err    error
		Code   int
		Called bool
		Msg    string
	}{
		{Name: "OK", Key: testKey, Body: structs.NewTask("u1", "p1", []string{"n1"}, nil), Code: http.StatusOK, Called: true},
		{Name: "ProcessError", Key: testKey, Body: structs.NewTask("u1", "p1", []string{"n1"}, nil), Err: fmt.Errorf("redis down"), Code: http.StatusOK, Called: true, Msg: "redis down"},
		{Name: "BadBody", Key: testKey, Body: []int{1, 2}, Code: http.StatusOK, Msg: "bad json"},
		{Name: "BadKey", Key: "nope", Body: structs.NewTask("u1", "p1", []string{"n1"}, nil), Code: http.StatusForbidden},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			svc := &fakeAPI{err: c.Err}
			ts := newTestServer(t, svc)

			resp := do(t, http.MethodPost, ts.URL+"/tasks/process/"+c.Key, "", c.Body)

			assert.Equal(t, c.Code, resp.StatusCode)
			assert.Equal(t, c.Called, svc.delivered != nil)
			if c.Code == http.StatusOK {
				out := &common.ErrorResponse{}
				require.Nil(t, json.NewDecoder(resp.Body).Decode(out))
				assert.Contains(t, out.Error, c.Msg)
			}
		})
	}
}

func TestResume(t *testing.T) {
	id := utils.NewRandomID()
	cases := []struct {
		Name string
		Key  string
		ID   string
		Err  error
		Code int
	}{
		{Name: "OK", Key: testKey, ID: id, Code: http.StatusOK},
		{Name: "BadToken", Key: testKey, ID: id, Err: pe.ErrInvalidToken, Code: http.StatusForbidden},
		{Name: "Missing", Key: testKey, ID: id, Err: pe.ErrTaskNotFound, Code: http.StatusNotFound},
		{Name: "Raced", Key: testKey, ID: id, Err: pe.ErrInvalidStateForResume, Code: http.StatusConflict},
		{Name: "NotParkedYet", Key: testKey, ID: id, Err: fmt.Errorf("%w %s", pe.ErrNotYetSuspended, id), Code: http.StatusServiceUnavailable},
		{Name: "BadKey", Key: "nope", ID: id, Code: http.StatusForbidden},
		{Name: "BadID", Key: testKey, ID: "not-a-uuid", Code: http.StatusBadRequest},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			svc := &fakeAPI{err: c.Err}
			ts := newTestServer(t, svc)
			body := map[string]interface{}{"summary": "done", "api_token": "hidden"}

			resp := do(t, http.MethodPost, fmt.Sprintf("%s/tasks/resume/%s/%s/tok", ts.URL, c.Key, c.ID), "", body)

			assert.Equal(t, c.Code, resp.StatusCode)
			if c.Code == http.StatusServiceUnavailable {
				assert.Equal(t, resumeRetryAfter, resp.Header.Get("Retry-After"))
			}
			if c.Code != http.StatusOK {
				return
			}
			assert.Equal(t, id, svc.taskID)
			assert.Equal(t, "tok", svc.token)
			v, _ := svc.doc.Get("summary")
			assert.Equal(t, "done", v)

			out := &structs.Task{}
			require.Nil(t, json.NewDecoder(resp.Body).Decode(out))
			assert.True(t, out.Document.Has("summary"))
			assert.False(t, out.Document.Has("api_token"))
		})
	}
}

func TestResumeRejectsNonObject(t *testing.T) {
	svc := &fakeAPI{}
	ts := newTestServer(t, svc)

	resp := do(t, http.MethodPost, fmt.Sprintf("%s/tasks/resume/%s/%s/tok", ts.URL, testKey, utils.NewRandomID()), "", []string{"a"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "", svc.taskID)
}

func TestRefreshBoxesRoute(t *testing.T) {
	svc := &fakeAPI{boxes: 4}
	ts := newTestServer(t, svc)

	resp := do(t, http.MethodGet, ts.URL+"/cron/boxes/"+testKey, "", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	out := &common.UpdateResponse{}
	require.Nil(t, json.NewDecoder(resp.Body).Decode(out))
	assert.Equal(t, int64(4), out.Updated)

	svc.err = fmt.Errorf("%w no box controller", pe.ErrNotSupported)
	resp = do(t, http.MethodGet, ts.URL+"/cron/boxes/"+testKey, "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateTask(t *testing.T) {
	svc := &fakeAPI{}
	ts := newTestServer(t, svc)

	resp := do(t, http.MethodPost, ts.URL+"/api/v1/pipelines/p1/tasks", "u1", map[string]interface{}{"text": "hi", "password": "x"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "u1", svc.user)
	assert.Equal(t, "p1", svc.pipeID)
	assert.True(t, svc.doc.Has("password"))

	out := &structs.Task{}
	require.Nil(t, json.NewDecoder(resp.Body).Decode(out))
	assert.Equal(t, "p1", out.PipeID)
	assert.True(t, out.Document.Has("text"))
	assert.False(t, out.Document.Has("password"))
}

func TestCreateTaskErrors(t *testing.T) {
	svc := &fakeAPI{}
	ts := newTestServer(t, svc)

	resp := do(t, http.MethodPost, ts.URL+"/api/v1/pipelines/p1/tasks", "", map[string]interface{}{})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	svc.err = fmt.Errorf("%w pipeline p1", pe.ErrNotFound)
	resp = do(t, http.MethodPost, ts.URL+"/api/v1/pipelines/p1/tasks", "u1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	svc.err = fmt.Errorf("%w p1", pe.ErrEmptyPipeline)
	resp = do(t, http.MethodPost, ts.URL+"/api/v1/pipelines/p1/tasks", "u1", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetTasks(t *testing.T) {
	svc := &fakeAPI{}
	ts := newTestServer(t, svc)
	id := utils.NewRandomID()

	resp := do(t, http.MethodGet, ts.URL+"/api/v1/tasks?limit=5&states=running&states=SUSPENDED&task_ids="+id, "u1", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, &structs.Query{
		Limit:   5,
		UserIDs: []string{"u1"},
		TaskIDs: []string{id},
		States:  []structs.State{structs.RUNNING, structs.SUSPENDED},
	}, svc.query)

	out := []*structs.Task{}
	require.Nil(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Len(t, out, 1)
}

func TestGetTasksBadQuery(t *testing.T) {
	svc := &fakeAPI{}
	ts := newTestServer(t, svc)

	for _, q := range []string{"limit=x", "offset=y", "states=sleeping", "task_ids=nope"} {
		resp := do(t, http.MethodGet, ts.URL+"/api/v1/tasks?"+q, "u1", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}
	assert.Nil(t, svc.query)
}

func TestDeleteTasksByStates(t *testing.T) {
	svc := &fakeAPI{}
	ts := newTestServer(t, svc)

	resp := do(t, http.MethodDelete, ts.URL+"/api/v1/tasks?states=COMPLETED&states=FAILED", "u1", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []structs.State{structs.COMPLETED, structs.FAILED}, svc.states)
	out := &common.UpdateResponse{}
	require.Nil(t, json.NewDecoder(resp.Body).Decode(out))
	assert.Equal(t, int64(3), out.Updated)

	resp = do(t, http.MethodDelete, ts.URL+"/api/v1/tasks", "u1", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCancelAndDeleteTask(t *testing.T) {
	id := utils.NewRandomID()
	cases := []struct {
		Name   string
		Method string
		Path   string
		Err    error
		Code   int
	}{
		{"Cancel", http.MethodPost, "/api/v1/tasks/" + id + "/cancel", nil, http.StatusOK},
		{"CancelFinished", http.MethodPost, "/api/v1/tasks/" + id + "/cancel", pe.ErrInvalidStateForCancel, http.StatusConflict},
		{"CancelMissing", http.MethodPost, "/api/v1/tasks/" + id + "/cancel", pe.ErrTaskNotFound, http.StatusNotFound},
		{"Delete", http.MethodDelete, "/api/v1/tasks/" + id, nil, http.StatusOK},
		{"DeleteRunning", http.MethodDelete, "/api/v1/tasks/" + id, pe.ErrInvalidStateForDelete, http.StatusConflict},
		{"BadID", http.MethodDelete, "/api/v1/tasks/nope", nil, http.StatusBadRequest},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			svc := &fakeAPI{err: c.Err}
			ts := newTestServer(t, svc)

			resp := do(t, c.Method, ts.URL+c.Path, "u1", nil)

			assert.Equal(t, c.Code, resp.StatusCode)
			if c.Code != http.StatusBadRequest {
				assert.Equal(t, id, svc.taskID)
				assert.Equal(t, "u1", svc.user)
			}
		})
	}
}

func TestCallbackAndHealth(t *testing.T) {
	ts := newTestServer(t, &fakeAPI{})

	resp := do(t, http.MethodPost, ts.URL+"/callbacks", "", map[string]interface{}{
		"task_id":  "t1",
		"state":    "FAILED",
		"error":    "boom",
		"document": map[string]interface{}{"a": 1},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/healthz", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/metrics", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
