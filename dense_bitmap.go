package bloom2

import (
	"math/bits"
)

// DenseBitmap implements IBitmap with a flat, pre-allocated byte slice.
// It is the better choice for small address spaces (KeyBytes1, KeyBytes2)
// where allocating every bit up front costs at most a few KiB and makes
// Set and Get constant time.
//
// Bit numbering is LSB0: bit 0 is the least significant bit of byte 0.
//
// Indexes at or beyond the capacity are ignored on Set and report false on
// Get, so a correctly sized bitmap never observes them.
type DenseBitmap struct {
	data  []byte
	nbits uint64
}

// NewDenseBitmap returns a zeroed bitmap holding nbits bits.
func NewDenseBitmap(nbits uint64) *DenseBitmap {
	return &DenseBitmap{
		data:  make([]byte, (nbits+7)/8),
		nbits: nbits,
	}
}

func (b *DenseBitmap) Set(index uint64, value bool) {
	if index >= b.nbits {
		return
	}
	if value {
		b.data[index>>3] |= 1 << (index & 7)
	} else {
		b.data[index>>3] &^= 1 << (index & 7)
	}
}

func (b *DenseBitmap) Get(index uint64) bool {
	if index >= b.nbits {
		return false
	}
	return b.data[index>>3]&(1<<(index&7)) != 0
}

// PopCount returns the number of set bits.
func (b *DenseBitmap) PopCount() uint64 {
	var n uint64
	for _, by := range b.data {
		n += uint64(bits.OnesCount8(by))
	}
	return n
}

// Capacity returns the number of addressable bits.
func (b *DenseBitmap) Capacity() uint64 {
	return b.nbits
}

var _ IBitmap = (*DenseBitmap)(nil)
