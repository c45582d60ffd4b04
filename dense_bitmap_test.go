package bloom2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDenseBitmap_SetGet(t *testing.T) {
	b := NewDenseBitmap(256)

	assert.False(t, b.Get(0))
	b.Set(0, true)
	b.Set(7, true)
	b.Set(255, true)
	assert.True(t, b.Get(0))
	assert.True(t, b.Get(7))
	assert.True(t, b.Get(255))
	assert.False(t, b.Get(8))
	assert.Equal(t, uint64(3), b.PopCount())

	b.Set(7, false)
	assert.False(t, b.Get(7))
	assert.Equal(t, uint64(2), b.PopCount())
}

func TestDenseBitmap_OutOfRange(t *testing.T) {
	b := NewDenseBitmap(64)

	// Writes beyond capacity are dropped, reads report unset.
	b.Set(64, true)
	b.Set(1<<40, true)
	assert.False(t, b.Get(64))
	assert.False(t, b.Get(1<<40))
	assert.Equal(t, uint64(0), b.PopCount())
	assert.Equal(t, uint64(64), b.Capacity())
}

func TestDenseBitmap_OddCapacity(t *testing.T) {
	b := NewDenseBitmap(13)
	for i := uint64(0); i < 13; i++ {
		b.Set(i, true)
	}
	assert.Equal(t, uint64(13), b.PopCount())
	assert.False(t, b.Get(13))
}
