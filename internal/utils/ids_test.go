package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRandomID(t *testing.T) {
	a := NewRandomID()
	b := NewRandomID()

	assert.NotEqual(t, a, b)
	assert.True(t, IsValidID(a))
	assert.True(t, IsValidID(b))
}

func TestIsValidID(t *testing.T) {
	cases := []struct {
		Name   string
		In     string
		Expect bool
	}{
		{"Valid", "0b7e5f8c-9a3d-4c1e-8f2a-1d2c3b4a5e6f", true},
		{"Empty", "", false},
		{"Garbage", "not-an-id", false},
		{"Injection", "'; DROP TABLE tasks; --", false},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.Expect, IsValidID(c.In))
		})
	}
}
