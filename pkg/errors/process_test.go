package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRetriable(t *testing.T) {
	cases := []struct {
		Name   string
		In     error
		Expect bool
	}{
		{"Nil", nil, false},
		{"Plain", fmt.Errorf("boom"), false},
		{"Retriable", Retriable("box %s warming", "b1"), true},
		{"RetriableWrap", RetriableWrap(fmt.Errorf("timeout"), "calling box"), true},
		{"WrappedRetriable", fmt.Errorf("outer: %w", Retriable("x")), true},
		{"NonRetriable", NonRetriable("bad"), false},
		{"Kind", NonRetriableKind(ErrMissingInputField, "prompt"), false},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.Expect, IsRetriable(c.In))
		})
	}
}

func TestProcessErrorKind(t *testing.T) {
	err := NonRetriableKind(ErrMissingInputField, "field %q", "prompt")

	assert.True(t, errors.Is(err, ErrMissingInputField))
	assert.True(t, errors.Is(err, ErrNonRetriable))
	assert.False(t, errors.Is(err, ErrMissingOutputField))
	assert.Equal(t, `missing input field: field "prompt"`, err.Error())
}

func TestProcessErrorCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")

	err := RetriableWrap(cause, "posting")

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "posting: connection refused", err.Error())
}

func TestAsNonRetriable(t *testing.T) {
	plain := fmt.Errorf("nil pointer somewhere")
	retriable := Retriable("again")

	assert.Nil(t, AsNonRetriable(nil))
	assert.True(t, errors.Is(AsNonRetriable(plain), ErrNonRetriable))
	assert.True(t, errors.Is(AsNonRetriable(plain), plain))
	assert.Equal(t, retriable, AsNonRetriable(retriable))
}
