package allocator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidshard/pipewright/pkg/structs"
)

const instanceList = `[
	{
		"name": "gpu-t4-0001",
		"zone": "https://www.googleapis.com/compute/v1/projects/p/zones/us-central1-a",
		"status": "RUNNING",
		"networkInterfaces": [{"accessConfigs": [{"natIP": "34.1.2.3"}]}]
	},
	{
		"name": "gpu-a100-0002",
		"zone": "https://www.googleapis.com/compute/v1/projects/p/zones/us-east1-b",
		"status": "TERMINATED",
		"networkInterfaces": [{"accessConfigs": [{}]}]
	},
	{
		"name": "webserver",
		"zone": "https://www.googleapis.com/compute/v1/projects/p/zones/us-east1-b",
		"status": "RUNNING",
		"networkInterfaces": []
	}
]`

func TestControllerList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "ctl", user)
		assert.Equal(t, "tok", pass)
		assert.Equal(t, "/api/instance/list", r.URL.Path)
		assert.Equal(t, "tok", r.URL.Query().Get("token"))
		w.Write([]byte(instanceList))
	}))
	defer srv.Close()

	c := NewController(&ControllerOptions{URL: srv.URL, Username: "ctl", Token: "tok", NamePrefix: "gpu-"})

	boxes, err := c.List(context.Background())

	require.Nil(t, err)
	assert.Equal(t, []*structs.Box{
		{ID: "gpu-t4-0001", Kind: "t4", IPAddress: "34.1.2.3", Zone: "us-central1-a", Status: structs.BoxRunning},
		{ID: "gpu-a100-0002", Kind: "a100", IPAddress: "", Zone: "us-east1-b", Status: structs.BoxTerminated},
	}, boxes)
}

func TestControllerStart(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewController(&ControllerOptions{URL: srv.URL + "/", Token: "tok"})

	err := c.Start(context.Background(), &structs.Box{ID: "gpu-t4-0001", Zone: "us-central1-a"})

	assert.Nil(t, err)
	assert.Equal(t, "/api/instance/us-central1-a/gpu-t4-0001/start", path)
}

func TestControllerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewController(&ControllerOptions{URL: srv.URL})

	_, err := c.List(context.Background())

	assert.NotNil(t, err)
}

func TestKindFromName(t *testing.T) {
	cases := []struct {
		Name   string
		Prefix string
		In     string
		Kind   string
		Ok     bool
	}{
		{"Match", "gpu-", "gpu-t4-01", "t4", true},
		{"NoSuffix", "gpu-", "gpu-t4", "t4", true},
		{"OtherPrefix", "gpu-", "cpu-t4-01", "", false},
		{"OnlyPrefix", "gpu-", "gpu-", "", false},
		{"NoPrefix", "", "t4-01", "t4", true},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			kind, ok := kindFromName(c.Prefix, c.In)
			assert.Equal(t, c.Ok, ok)
			assert.Equal(t, c.Kind, kind)
		})
	}
}

func TestZoneFromURL(t *testing.T) {
	assert.Equal(t, "us-central1-a", zoneFromURL("https://x/projects/p/zones/us-central1-a"))
	assert.Equal(t, "europe-west1-b", zoneFromURL("europe-west1-b"))
}
