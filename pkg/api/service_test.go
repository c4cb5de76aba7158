package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/voidshard/pipewright/internal/core"
	"github.com/voidshard/pipewright/internal/mocks/pkg/database_mock"
	"github.com/voidshard/pipewright/internal/mocks/pkg/queue_mock"
	pe "github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/processor"
	"github.com/voidshard/pipewright/pkg/structs"
)

func testOptions() *Options {
	// no sweeper
	return &Options{Core: &core.Options{TaskTTL: -1, SweepFrequency: -1}}
}

func TestNewAPIRequiresStores(t *testing.T) {
	_, err := NewAPI(nil, nil, nil, nil)

	assert.True(t, errors.Is(err, pe.ErrInvalidArg))
}

func TestNewAPIRegistersBuiltins(t *testing.T) {
	cases := []struct {
		Name      string
		Processor string
		Deps      *processor.Dependencies
		Err       error
	}{
		{Name: "Split", Processor: processor.NameSplit},
		{Name: "Template", Processor: processor.NameTemplate},
		{Name: "InfoFileUsesBlobs", Processor: processor.NameInfoFile},
		{Name: "ChatNeedsOpenAI", Processor: processor.NameChat, Err: pe.ErrUnknownProcessor},
		{Name: "Chat", Processor: processor.NameChat, Deps: &processor.Dependencies{OpenAI: &processor.OpenAIOptions{Token: "sk"}}},
		{Name: "RemoteJobNeedsBoxes", Processor: processor.NameRemoteJob, Err: pe.ErrUnknownProcessor},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			db := database_mock.NewMockDatabase(gomock.NewController(t))
			qu := queue_mock.NewMockQueue(gomock.NewController(t))
			opts := testOptions()
			opts.Processors = c.Deps

			svc, err := NewAPI(db, qu, nil, opts)
			require.Nil(t, err)
			defer svc.Close()

			db.EXPECT().Pipeline(gomock.Any(), "p1").Return(&structs.Pipeline{ID: "p1", UserID: "u1", NodeIDs: []string{"n1"}}, nil)
			db.EXPECT().Node(gomock.Any(), "n1").Return(&structs.Node{ID: "n1", Processor: c.Processor}, nil)
			if c.Err == nil {
				db.EXPECT().InsertTask(gomock.Any(), gomock.Any()).Return(nil)
				qu.EXPECT().Enqueue(gomock.Any(), gomock.Any(), time.Duration(0)).Return(nil)
			}

			task, err := svc.CreatePipelineTask(context.Background(), "u1", "p1", structs.NewDocument())

			if c.Err == nil {
				assert.Nil(t, err)
				assert.NotNil(t, task)
			} else {
				assert.True(t, errors.Is(err, c.Err), err)
			}
		})
	}
}

func TestRefreshBoxesWithoutController(t *testing.T) {
	db := database_mock.NewMockDatabase(gomock.NewController(t))
	qu := queue_mock.NewMockQueue(gomock.NewController(t))

	svc, err := NewAPI(db, qu, nil, testOptions())
	require.Nil(t, err)
	defer svc.Close()

	_, err = svc.RefreshBoxes(context.Background())

	assert.True(t, errors.Is(err, pe.ErrNotSupported))
}
