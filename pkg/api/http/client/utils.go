package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/voidshard/pipewright/pkg/api/http/common"
	"github.com/voidshard/pipewright/pkg/structs"
)

// do sends in (if any) as JSON to the given URL and unmarshals the response into out
func (c *Client) do(ctx context.Context, method string, addr *url.URL, in interface{}, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, addr.String(), body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(common.HEADER_USER_ID, c.user)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	} else if resp.Body == nil {
		return fmt.Errorf("no response body with status code %d", resp.StatusCode)
	}

	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 { // some error code, assume message is error message
		return &StatusError{Code: resp.StatusCode, Msg: string(bytes.TrimSpace(data))}
	}

	return json.Unmarshal(data, out)
}

// StatusError is returned when the server answers with an error code
type StatusError struct {
	Code int
	Msg  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bad status code %d, returned %s", e.Code, e.Msg)
}

// setQueryString sets the query string of a URL based on the given query object.
func setQueryString(u *url.URL, q *structs.Query) {
	values := u.Query()

	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		values.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.TaskIDs != nil {
		values["task_ids"] = q.TaskIDs
	}
	if q.PipeIDs != nil {
		values["pipe_ids"] = q.PipeIDs
	}
	if q.States != nil {
		ss := []string{}
		for _, s := range q.States {
			ss = append(ss, string(s))
		}
		values["states"] = ss
	}

	u.RawQuery = values.Encode()
}
