package allocator

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/voidshard/pipewright/internal/mocks/pkg/allocator_mock"
	"github.com/voidshard/pipewright/pkg/structs"
)

const testKind = "t4"

type fixture struct {
	inv     *allocator_mock.MockInventory
	starter *allocator_mock.MockStarter
	prober  *allocator_mock.MockProber
	alloc   *Allocator
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		inv:     allocator_mock.NewMockInventory(ctrl),
		starter: allocator_mock.NewMockStarter(ctrl),
		prober:  allocator_mock.NewMockProber(ctrl),
	}
	f.alloc = New(f.inv, f.starter, f.prober, &Options{Port: 9898})
	return f
}

func box(id string, st structs.BoxStatus, ip string) *structs.Box {
	return &structs.Box{ID: id, Kind: testKind, Status: st, IPAddress: ip, Zone: "us-central1-a"}
}

func TestAllocateActive(t *testing.T) {
	f := newFixture(t)
	active := box("b0", structs.BoxRunning, "10.0.0.1")
	boxes := []*structs.Box{
		active,
		box("b1", structs.BoxTerminated, ""),
		box("b2", structs.BoxTerminated, ""),
	}

	f.inv.EXPECT().Boxes(gomock.Any(), testKind).Return(boxes, nil).Times(10)
	f.prober.EXPECT().Reachable(gomock.Any(), "10.0.0.1").Return(true).Times(10)
	f.prober.EXPECT().Accepts(gomock.Any(), "10.0.0.1", 9898).Return(true).Times(10)
	// no Start or SetBoxStatus expected

	for i := 0; i < 10; i++ {
		needsStart, result, err := f.alloc.Allocate(context.Background(), testKind)

		assert.Nil(t, err)
		assert.False(t, needsStart)
		assert.Equal(t, active, result)
	}
}

func TestAllocateStartsOneHalted(t *testing.T) {
	f := newFixture(t)
	halted := []*structs.Box{
		box("b1", structs.BoxTerminated, ""),
		box("b2", structs.BoxTerminated, ""),
	}

	f.inv.EXPECT().Boxes(gomock.Any(), testKind).Return(halted, nil)
	f.starter.EXPECT().Start(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	f.inv.EXPECT().SetBoxStatus(gomock.Any(), gomock.Any(), structs.BoxStart).Return(nil).Times(1)

	needsStart, result, err := f.alloc.Allocate(context.Background(), testKind)

	assert.Nil(t, err)
	assert.True(t, needsStart)
	assert.NotNil(t, result)
	assert.Contains(t, []string{"b1", "b2"}, result.ID)
	assert.Equal(t, structs.BoxStart, result.Status)
}

func TestAllocateStartsOnePerKind(t *testing.T) {
	f := newFixture(t)
	halted := map[string][]*structs.Box{}
	for _, kind := range []string{"t4", "a100"} {
		for _, id := range []string{"b1", "b2"} {
			b := box(kind+"-"+id, structs.BoxTerminated, "")
			b.Kind = kind
			halted[kind] = append(halted[kind], b)
		}
		f.inv.EXPECT().Boxes(gomock.Any(), kind).Return(halted[kind], nil)
	}
	f.starter.EXPECT().Start(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	f.inv.EXPECT().SetBoxStatus(gomock.Any(), gomock.Any(), structs.BoxStart).Return(nil).Times(2)

	for _, kind := range []string{"t4", "a100"} {
		needsStart, result, err := f.alloc.Allocate(context.Background(), kind)

		assert.Nil(t, err)
		assert.True(t, needsStart)
		if assert.NotNil(t, result, kind) {
			assert.Equal(t, kind, result.Kind)
		}
	}
}

func TestAllocateStarting(t *testing.T) {
	cases := []struct {
		Name  string
		Boxes []*structs.Box
	}{
		{"Start", []*structs.Box{box("b1", structs.BoxStart, ""), box("b2", structs.BoxTerminated, "")}},
		{"Provisioning", []*structs.Box{box("b1", structs.BoxProvisioning, "")}},
		{"Staging", []*structs.Box{box("b1", structs.BoxStaging, ""), box("b2", structs.BoxTerminated, "")}},
		{"RunningNoIP", []*structs.Box{box("b1", structs.BoxRunning, ""), box("b2", structs.BoxTerminated, "")}},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			f := newFixture(t)
			f.inv.EXPECT().Boxes(gomock.Any(), testKind).Return(c.Boxes, nil)

			needsStart, result, err := f.alloc.Allocate(context.Background(), testKind)

			assert.Nil(t, err)
			assert.True(t, needsStart)
			assert.Nil(t, result)
		})
	}
}

func TestAllocateRunningButUnresponsive(t *testing.T) {
	cases := []struct {
		Name      string
		Reachable bool
		Accepts   bool
	}{
		{"NoPing", false, true},
		{"NoPort", true, false},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			f := newFixture(t)
			f.inv.EXPECT().Boxes(gomock.Any(), testKind).Return([]*structs.Box{
				box("b1", structs.BoxRunning, "10.0.0.1"),
				box("b2", structs.BoxTerminated, ""),
			}, nil)
			f.prober.EXPECT().Reachable(gomock.Any(), "10.0.0.1").Return(c.Reachable)
			f.prober.EXPECT().Accepts(gomock.Any(), "10.0.0.1", 9898).Return(c.Accepts).AnyTimes()

			needsStart, result, err := f.alloc.Allocate(context.Background(), testKind)

			assert.Nil(t, err)
			assert.True(t, needsStart)
			assert.Nil(t, result)
		})
	}
}

func TestAllocateNoBoxes(t *testing.T) {
	f := newFixture(t)
	f.inv.EXPECT().Boxes(gomock.Any(), testKind).Return([]*structs.Box{
		box("b1", structs.BoxStopping, ""),
	}, nil)

	needsStart, result, err := f.alloc.Allocate(context.Background(), testKind)

	assert.Nil(t, err)
	assert.True(t, needsStart)
	assert.Nil(t, result)
}

func TestAllocateStartRateLimited(t *testing.T) {
	f := newFixture(t)
	halted := []*structs.Box{box("b1", structs.BoxTerminated, "")}

	f.inv.EXPECT().Boxes(gomock.Any(), testKind).Return(halted, nil).Times(2)
	f.starter.EXPECT().Start(gomock.Any(), halted[0]).Return(nil).Times(1)
	f.inv.EXPECT().SetBoxStatus(gomock.Any(), "b1", structs.BoxStart).Return(nil).Times(1)

	first, firstBox, err1 := f.alloc.Allocate(context.Background(), testKind)
	halted[0].Status = structs.BoxTerminated // inventory refresh hasn't happened
	second, secondBox, err2 := f.alloc.Allocate(context.Background(), testKind)

	assert.Nil(t, err1)
	assert.Nil(t, err2)
	assert.True(t, first)
	assert.True(t, second)
	assert.NotNil(t, firstBox)
	assert.Nil(t, secondBox)
}

func TestAllocateErrors(t *testing.T) {
	t.Run("Inventory", func(t *testing.T) {
		f := newFixture(t)
		f.inv.EXPECT().Boxes(gomock.Any(), testKind).Return(nil, fmt.Errorf("db down"))

		_, result, err := f.alloc.Allocate(context.Background(), testKind)

		assert.NotNil(t, err)
		assert.Nil(t, result)
	})

	t.Run("Start", func(t *testing.T) {
		f := newFixture(t)
		f.inv.EXPECT().Boxes(gomock.Any(), testKind).Return([]*structs.Box{box("b1", structs.BoxTerminated, "")}, nil)
		f.starter.EXPECT().Start(gomock.Any(), gomock.Any()).Return(fmt.Errorf("controller down"))

		_, result, err := f.alloc.Allocate(context.Background(), testKind)

		assert.NotNil(t, err)
		assert.Nil(t, result)
	})
}

func TestEmpty(t *testing.T) {
	f := newFixture(t)
	f.inv.EXPECT().Boxes(gomock.Any(), "a100").Return([]*structs.Box{}, nil)
	f.inv.EXPECT().Boxes(gomock.Any(), testKind).Return([]*structs.Box{box("b1", structs.BoxStart, "")}, nil)

	none, err1 := f.alloc.Empty(context.Background(), "a100")
	some, err2 := f.alloc.Empty(context.Background(), testKind)

	assert.Nil(t, err1)
	assert.Nil(t, err2)
	assert.True(t, none)
	assert.False(t, some)
}
