package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pe "github.com/voidshard/pipewright/pkg/errors"
)

func TestObjectName(t *testing.T) {
	cases := []struct {
		Name   string
		Prefix string
		Key    string
		Expect string
	}{
		{"NoPrefix", "", "tasks/a.json", "tasks/a.json"},
		{"Prefix", "prod", "tasks/a.json", "prod/tasks/a.json"},
		{"TrailingSlash", "prod/", "tasks/a.json", "prod/tasks/a.json"},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.Expect, objectName(c.Prefix, c.Key))
		})
	}
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.Nil(t, m.Put(ctx, "k", []byte("data"), "text/plain"))

	data, err := m.Get(ctx, "k")
	require.Nil(t, err)
	assert.Equal(t, []byte("data"), data)

	info, err := m.Attrs(ctx, "k")
	require.Nil(t, err)
	assert.Equal(t, int64(4), info.Size)
	assert.Equal(t, "text/plain", info.ContentType)

	require.Nil(t, m.Delete(ctx, "k"))

	_, err = m.Get(ctx, "k")
	assert.True(t, errors.Is(err, pe.ErrNotFound))
	_, err = m.Attrs(ctx, "k")
	assert.True(t, errors.Is(err, pe.ErrNotFound))
}
