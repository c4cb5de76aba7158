package core

import (
	"context"
	"fmt"

	pe "github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/structs"
)

// BoxLister reports the worker boxes that currently exist
type BoxLister interface {
	List(ctx context.Context) ([]*structs.Box, error)
}

// RefreshBoxes replaces our box inventory with what the controller reports.
// Boxes of a managed kind that the controller no longer reports are removed.
func (s *Service) RefreshBoxes(ctx context.Context) (int, error) {
	if s.boxes == nil {
		return 0, fmt.Errorf("%w no box controller configured", pe.ErrNotSupported)
	}

	found, err := s.boxes.List(ctx)
	if err != nil {
		return 0, err
	}

	now := timeNow().Unix()
	byKind := map[string][]string{}
	for _, kind := range s.opts.BoxKinds {
		byKind[kind] = []string{}
	}
	counts := map[[2]string]int{}
	for _, b := range found {
		b.UpdatedAt = now
		byKind[b.Kind] = append(byKind[b.Kind], b.ID)
		counts[[2]string{b.Kind, string(b.Status)}]++
	}

	if len(found) > 0 {
		err = s.db.UpsertBoxes(ctx, found)
		if err != nil {
			return 0, err
		}
	}
	for kind, keep := range byKind {
		n, err := s.db.DeleteBoxesExcept(ctx, kind, keep)
		if err != nil {
			return 0, err
		}
		if n > 0 {
			s.log.Info("purged stale boxes", "kind", kind, "count", n)
		}
	}

	metricBoxes.Reset()
	for k, n := range counts {
		metricBoxes.WithLabelValues(k[0], k[1]).Set(float64(n))
	}
	s.log.Debug("refreshed boxes", "count", len(found))
	return len(found), nil
}
