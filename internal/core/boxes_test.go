package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	pe "github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/structs"
)

type fakeLister struct {
	boxes []*structs.Box
	err   error
}

func (f *fakeLister) List(ctx context.Context) ([]*structs.Box, error) {
	return f.boxes, f.err
}

func TestRefreshBoxes(t *testing.T) {
	f := newFixture(t)
	f.svc.opts.BoxKinds = []string{"gpu-t4", "gpu-l4"}
	f.svc.boxes = &fakeLister{boxes: []*structs.Box{
		{ID: "gpu-t4-0001", Kind: "gpu-t4", Status: structs.BoxRunning, IPAddress: "10.0.0.1"},
		{ID: "gpu-t4-0002", Kind: "gpu-t4", Status: structs.BoxTerminated},
		{ID: "gpu-a100-0001", Kind: "gpu-a100", Status: structs.BoxRunning},
	}}

	f.db.EXPECT().UpsertBoxes(gomock.Any(), gomock.Len(3)).Return(nil)
	f.db.EXPECT().DeleteBoxesExcept(gomock.Any(), "gpu-t4", []string{"gpu-t4-0001", "gpu-t4-0002"}).Return(int64(1), nil)
	f.db.EXPECT().DeleteBoxesExcept(gomock.Any(), "gpu-a100", []string{"gpu-a100-0001"}).Return(int64(0), nil)
	f.db.EXPECT().DeleteBoxesExcept(gomock.Any(), "gpu-l4", []string{}).Return(int64(2), nil)

	count, err := f.svc.RefreshBoxes(context.Background())

	assert.Nil(t, err)
	assert.Equal(t, 3, count)
}

func TestRefreshBoxesErrors(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.RefreshBoxes(context.Background())
	assert.True(t, errors.Is(err, pe.ErrNotSupported))

	f.svc.boxes = &fakeLister{err: fmt.Errorf("controller down")}
	_, err = f.svc.RefreshBoxes(context.Background())
	assert.NotNil(t, err)
}
