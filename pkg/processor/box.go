package processor

import (
	"context"
	"fmt"
	"log/slog"

	pe "github.com/voidshard/pipewright/pkg/errors"
)

// boxURL returns the base URL of a box of the given kind that is ready to serve.
// If none are ready yet a retriable error is returned; if there are no boxes of
// this kind at all the error is not retriable.
func boxURL(ctx context.Context, boxes Allocator, kind string) (string, error) {
	needsStart, box, err := boxes.Allocate(ctx, kind)
	if err != nil {
		return "", pe.RetriableWrap(err, "allocating box")
	}
	if !needsStart && box != nil {
		return fmt.Sprintf("http://%s:%d", box.IPAddress, boxes.Port()), nil
	}
	if box != nil {
		slog.Info("waiting on started box", "component", "processor", "kind", kind, "box", box.ID)
		return "", pe.Retriable("started %s box %s", kind, box.ID)
	}

	empty, err := boxes.Empty(ctx, kind)
	if err != nil {
		return "", pe.RetriableWrap(err, "checking boxes")
	}
	if empty {
		return "", pe.NonRetriableKind(pe.ErrNoCapacity, "no %s boxes", kind)
	}
	return "", pe.Retriable("%s box is starting", kind)
}
