package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidshard/pipewright/pkg/api/http/common"
	"github.com/voidshard/pipewright/pkg/structs"
)

func TestCreateTask(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/pipelines/p%201/tasks", r.URL.EscapedPath())
		assert.Equal(t, "u1", r.Header.Get(common.HEADER_USER_ID))

		doc := structs.NewDocument()
		assert.Nil(t, json.NewDecoder(r.Body).Decode(doc))
		json.NewEncoder(w).Encode(structs.NewTask("u1", "p 1", []string{"n1"}, doc))
	}))
	defer ts.Close()

	c, err := New(ts.URL, "u1")
	require.Nil(t, err)

	task, err := c.CreateTask(context.Background(), "p 1", structs.DocumentFromMap(map[string]interface{}{"text": "hi"}))

	require.Nil(t, err)
	assert.Equal(t, "p 1", task.PipeID)
	v, _ := task.Document.Get("text")
	assert.Equal(t, "hi", v)
}

func TestTasksQueryString(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "10", q.Get("limit"))
		assert.Equal(t, []string{"RUNNING", "FAILED"}, q["states"])
		assert.Equal(t, []string{"p1"}, q["pipe_ids"])
		assert.False(t, q.Has("offset"))
		json.NewEncoder(w).Encode([]*structs.Task{{ID: "t1"}})
	}))
	defer ts.Close()

	c, _ := New(ts.URL, "u1")

	out, err := c.Tasks(context.Background(), &structs.Query{
		Limit:   10,
		PipeIDs: []string{"p1"},
		States:  []structs.State{structs.RUNNING, structs.FAILED},
	})

	require.Nil(t, err)
	assert.Len(t, out, 1)
}

func TestDeleteTasksByStates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, []string{"COMPLETED"}, r.URL.Query()["states"])
		json.NewEncoder(w).Encode(&common.UpdateResponse{Updated: 7})
	}))
	defer ts.Close()

	c, _ := New(ts.URL, "u1")

	count, err := c.DeleteTasksByStates(context.Background(), []structs.State{structs.COMPLETED})

	assert.Nil(t, err)
	assert.Equal(t, int64(7), count)
}

func TestStatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/tasks/t1/cancel", r.URL.Path)
		http.Error(w, "task is COMPLETED", http.StatusConflict)
	}))
	defer ts.Close()

	c, _ := New(ts.URL, "u1")

	_, err := c.CancelTask(context.Background(), "t1")

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusConflict, se.Code)
	assert.Equal(t, "task is COMPLETED", se.Msg)
}
