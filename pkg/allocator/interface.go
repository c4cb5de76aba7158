package allocator

import (
	"context"

	"github.com/voidshard/pipewright/pkg/structs"
)

// Inventory is the allocator's view of known boxes. Apart from marking a box
// we've started, it is read only.
type Inventory interface {
	Boxes(ctx context.Context, kind string) ([]*structs.Box, error)
	SetBoxStatus(ctx context.Context, id string, status structs.BoxStatus) error
}

// Starter issues start commands for halted boxes.
type Starter interface {
	Start(ctx context.Context, box *structs.Box) error
}

// Prober checks if a box is actually up.
type Prober interface {
	// Reachable reports if the address answers a ping
	Reachable(ctx context.Context, ip string) bool

	// Accepts reports if the address accepts connections on the given port
	Accepts(ctx context.Context, ip string, port int) bool
}
