package allocator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/structs"
)

const (
	defControllerTimeout = 10 * time.Second
)

type ControllerOptions struct {
	// URL of the controller (ie. http://controller:8787)
	URL string

	// Username & Token authenticate us to the controller
	Username string
	Token    string

	// NamePrefix marks the instances we manage; boxes are named <prefix><kind>-<suffix>
	NamePrefix string

	Timeout time.Duration
}

// Controller talks to the instance controller that owns our boxes.
type Controller struct {
	opts *ControllerOptions
	http *http.Client
}

// instance is a compute instance as the controller reports it
type instance struct {
	Name              string `json:"name"`
	Zone              string `json:"zone"`
	Status            string `json:"status"`
	NetworkInterfaces []struct {
		AccessConfigs []struct {
			NatIP string `json:"natIP"`
		} `json:"accessConfigs"`
	} `json:"networkInterfaces"`
}

func NewController(opts *ControllerOptions) *Controller {
	if opts.Timeout <= 0 {
		opts.Timeout = defControllerTimeout
	}
	return &Controller{opts: opts, http: &http.Client{Timeout: opts.Timeout}}
}

// Start requests the given box be started.
func (c *Controller) Start(ctx context.Context, box *structs.Box) error {
	_, err := c.get(ctx, fmt.Sprintf("/api/instance/%s/%s/start", url.PathEscape(box.Zone), url.PathEscape(box.ID)))
	return err
}

// List returns all boxes the controller knows of that carry our name prefix.
func (c *Controller) List(ctx context.Context) ([]*structs.Box, error) {
	data, err := c.get(ctx, "/api/instance/list")
	if err != nil {
		return nil, err
	}
	found := []*instance{}
	err = json.Unmarshal(data, &found)
	if err != nil {
		return nil, fmt.Errorf("decoding instance list: %w", err)
	}

	boxes := []*structs.Box{}
	for _, in := range found {
		kind, ok := kindFromName(c.opts.NamePrefix, in.Name)
		if !ok {
			continue
		}
		boxes = append(boxes, &structs.Box{
			ID:        in.Name,
			Kind:      kind,
			IPAddress: in.natIP(),
			Zone:      zoneFromURL(in.Zone),
			Status:    structs.ToBoxStatus(in.Status),
		})
	}
	return boxes, nil
}

func (c *Controller) get(ctx context.Context, path string) ([]byte, error) {
	u, err := url.Parse(strings.TrimSuffix(c.opts.URL, "/") + path)
	if err != nil {
		return nil, fmt.Errorf("%w controller url: %v", errors.ErrInvalidArg, err)
	}
	q := u.Query()
	q.Set("token", c.opts.Token)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.opts.Username, c.opts.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("controller %s returned %d", path, resp.StatusCode)
	}
	return data, nil
}

func (i *instance) natIP() string {
	for _, iface := range i.NetworkInterfaces {
		for _, ac := range iface.AccessConfigs {
			if ac.NatIP != "" {
				return ac.NatIP
			}
		}
	}
	return ""
}

// zoneFromURL returns the last path element of .../zones/<zone>
func zoneFromURL(in string) string {
	idx := strings.LastIndex(in, "/zones/")
	if idx < 0 {
		return in
	}
	return strings.Trim(in[idx+len("/zones/"):], "/")
}

// kindFromName returns "t4" for prefix "gpu-" & name "gpu-t4-0a1b"
func kindFromName(prefix, name string) (string, bool) {
	if !strings.HasPrefix(name, prefix) {
		return "", false
	}
	rest := strings.TrimPrefix(name, prefix)
	kind, _, _ := strings.Cut(rest, "-")
	return kind, kind != ""
}
