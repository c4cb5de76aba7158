package processor_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/voidshard/pipewright/internal/mocks/pkg/processor_mock"
	pe "github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/processor"
	"github.com/voidshard/pipewright/pkg/structs"
)

// boxServer is a httptest server standing in for a worker box
func boxServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *structs.Box, int) {
	srv := httptest.NewServer(handler)
	host, port, err := net.SplitHostPort(srv.Listener.Addr().String())
	require.Nil(t, err)
	p, err := strconv.Atoi(port)
	require.Nil(t, err)
	return srv, &structs.Box{ID: "box-1", Kind: "t4", IPAddress: host, Status: structs.BoxRunning}, p
}

func TestEmbeddingOnBox(t *testing.T) {
	var got map[string]interface{}
	srv, box, port := boxServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embed", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"embeddings": [[1, 2], [3, 4]]}`))
	})
	defer srv.Close()

	boxes := processor_mock.NewMockAllocator(gomock.NewController(t))
	boxes.EXPECT().Allocate(gomock.Any(), "t4").Return(false, box, nil)
	boxes.EXPECT().Port().Return(port)

	in := openaiInvocation(map[string]interface{}{"texts": []interface{}{"x", "y"}, "box_kind": "t4", "model": "instructor"})

	result, err := processor.NewEmbedding(nil, boxes).Process(context.Background(), in)

	require.Nil(t, err)
	vecs, _ := result.Document.Get("embeddings")
	assert.Equal(t, []interface{}{
		[]interface{}{float64(1), float64(2)},
		[]interface{}{float64(3), float64(4)},
	}, vecs)
	assert.Equal(t, "instructor", got["model"])
	assert.Equal(t, []interface{}{"x", "y"}, got["texts"])
}

func TestEmbeddingOnBoxNotReady(t *testing.T) {
	cases := []struct {
		Name       string
		NeedsStart bool
		Box        *structs.Box
		AllocErr   error
		Empty      *bool
		Kind       error
		Retriable  bool
	}{
		{"JustStarted", true, &structs.Box{ID: "b"}, nil, nil, pe.ErrRetriable, true},
		{"Starting", true, nil, nil, boolPtr(false), pe.ErrRetriable, true},
		{"NoCapacity", true, nil, nil, boolPtr(true), pe.ErrNoCapacity, false},
		{"InventoryDown", true, nil, fmt.Errorf("db down"), nil, pe.ErrRetriable, true},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			boxes := processor_mock.NewMockAllocator(gomock.NewController(t))
			boxes.EXPECT().Allocate(gomock.Any(), "t4").Return(c.NeedsStart, c.Box, c.AllocErr)
			if c.Empty != nil {
				boxes.EXPECT().Empty(gomock.Any(), "t4").Return(*c.Empty, nil)
			}

			in := openaiInvocation(map[string]interface{}{"texts": []interface{}{"x"}, "box_kind": "t4"})

			_, err := processor.NewEmbedding(nil, boxes).Process(context.Background(), in)

			assert.ErrorIs(t, err, c.Kind)
			assert.Equal(t, c.Retriable, pe.IsRetriable(err))
		})
	}
}

func TestEmbeddingOnBoxMismatch(t *testing.T) {
	srv, box, port := boxServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"embeddings": [[1, 2]]}`))
	})
	defer srv.Close()

	boxes := processor_mock.NewMockAllocator(gomock.NewController(t))
	boxes.EXPECT().Allocate(gomock.Any(), "t4").Return(false, box, nil)
	boxes.EXPECT().Port().Return(port)

	in := openaiInvocation(map[string]interface{}{"texts": []interface{}{"x", "y"}, "box_kind": "t4"})

	_, err := processor.NewEmbedding(nil, boxes).Process(context.Background(), in)

	assert.ErrorIs(t, err, pe.ErrNonRetriable)
}

func boolPtr(b bool) *bool {
	return &b
}
