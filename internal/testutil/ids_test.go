package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequentialIDGenerator(t *testing.T) {
	gen := NewSequentialIDGenerator("")
	assert.Equal(t, "rec-0001", gen.Generate())
	assert.Equal(t, "rec-0002", gen.Generate())

	gen.Reset()
	assert.Equal(t, "rec-0001", gen.Generate())

	assert.Equal(t, "cart-0001", NewSequentialIDGenerator("cart").Generate())
}

func TestFixedIDGenerator(t *testing.T) {
	gen := NewFixedIDGenerator("a", "b")
	assert.Equal(t, "a", gen.Generate())
	assert.Equal(t, "b", gen.Generate())
	assert.Panics(t, func() { gen.Generate() })
}
