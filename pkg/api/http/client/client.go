package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/voidshard/pipewright/pkg/api/http/common"
	"github.com/voidshard/pipewright/pkg/structs"
)

// Client talks to the pipewright API on behalf of a single user.
type Client struct {
	url  *url.URL
	user string
	http *http.Client
}

func New(address, user string) (*Client, error) {
	u, err := url.Parse(address)
	return &Client{url: u, user: user, http: &http.Client{}}, err
}

func (c *Client) CreateTask(ctx context.Context, pipeID string, doc *structs.Document) (*structs.Task, error) {
	addr := c.addr(route(common.API_PIPELINE_TASKS, "pipe_id", pipeID))
	var out structs.Task
	return &out, c.do(ctx, http.MethodPost, addr, doc, &out)
}

func (c *Client) Tasks(ctx context.Context, q *structs.Query) ([]*structs.Task, error) {
	addr := c.addr(common.API_TASKS)
	setQueryString(addr, q)
	var out []*structs.Task
	return out, c.do(ctx, http.MethodGet, addr, nil, &out)
}

func (c *Client) CancelTask(ctx context.Context, id string) (*structs.Task, error) {
	addr := c.addr(route(common.API_TASK_CANCEL, "id", id))
	var out structs.Task
	return &out, c.do(ctx, http.MethodPost, addr, nil, &out)
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	addr := c.addr(route(common.API_TASK, "id", id))
	var out common.UpdateResponse
	return c.do(ctx, http.MethodDelete, addr, nil, &out)
}

func (c *Client) DeleteTasksByStates(ctx context.Context, states []structs.State) (int64, error) {
	addr := c.addr(common.API_TASKS)
	setQueryString(addr, &structs.Query{States: states})
	var out common.UpdateResponse
	return out.Updated, c.do(ctx, http.MethodDelete, addr, nil, &out)
}

func (c *Client) addr(path string) *url.URL {
	return &url.URL{Scheme: c.url.Scheme, Host: c.url.Host, Path: path}
}

// route fills in a {name} placeholder of a route
func route(tmpl, name, value string) string {
	return strings.Replace(tmpl, "{"+name+"}", value, 1)
}
