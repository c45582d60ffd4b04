package bloom2

import (
	"errors"
	"math"
)

const (
	// digestBytes is the width of the digest produced by an IHasher.
	digestBytes = 8
)

// FilterSize selects the byte width used to carve sub-indexes out of a key
// digest. A size of k bytes addresses 2^(8k) distinct bit positions and
// yields ceil(8/k) sub-indexes per key.
//
// Larger sizes lower the collision rate between unrelated keys at the cost
// of a larger address space, which is only affordable when the backing
// bitmap stays sub-linear in the address space (see CompressedBitmap).
type FilterSize uint8

const (
	// KeyBytes1 addresses 256 positions with 8 sub-indexes per key.
	KeyBytes1 FilterSize = 1
	// KeyBytes2 addresses 65,536 positions with 4 sub-indexes per key.
	KeyBytes2 FilterSize = 2
	// KeyBytes3 addresses ~16.7M positions with 3 sub-indexes per key,
	// the last confined to 2 bytes.
	KeyBytes3 FilterSize = 3
	// KeyBytes4 addresses ~4.2B positions with 2 sub-indexes per key.
	KeyBytes4 FilterSize = 4
	// KeyBytes5 addresses 2^40 positions with 2 sub-indexes per key,
	// the last confined to 3 bytes.
	KeyBytes5 FilterSize = 5
	// KeyBytes6 addresses 2^48 positions with 2 sub-indexes per key,
	// the last confined to 2 bytes.
	KeyBytes6 FilterSize = 6
	// KeyBytes7 addresses 2^56 positions with 2 sub-indexes per key,
	// the last confined to 1 byte.
	KeyBytes7 FilterSize = 7
	// KeyBytes8 addresses the full 2^64 positions with 1 sub-index per key.
	KeyBytes8 FilterSize = 8
)

// Valid reports whether s is a known filter size.
func (s FilterSize) Valid() bool {
	return s >= KeyBytes1 && s <= KeyBytes8
}

// SubIndexCount returns the number of sub-indexes derived per key,
// ceil(digestBytes/s). The final sub-index may be carved from fewer than s
// bytes when s does not divide the digest width evenly.
func (s FilterSize) SubIndexCount() int {
	return (digestBytes + int(s) - 1) / int(s)
}

// MaxIndex returns the largest bit position a sub-index of this size can
// address, 2^(8s)-1.
func (s FilterSize) MaxIndex() uint64 {
	if s >= KeyBytes8 {
		return math.MaxUint64
	}
	return 1<<(8*uint64(s)) - 1
}

// HashAlgorithm identifies an IHasher implementation so serialized filters
// can be restored with the hasher they were built with.
type HashAlgorithm uint8

const (
	// SipHash is keyed SipHash-2-4, the default algorithm.
	SipHash HashAlgorithm = iota
	// XXH3 is seeded xxh3.
	XXH3
	// Murmur3 is unkeyed 64 bit murmur3.
	Murmur3
)

var (
	ErrBadFilterSize  = errors.New("bloom2: invalid filter size")
	ErrBitmapTooSmall = errors.New("bloom2: bitmap capacity below filter address space")
	ErrNotCompressed  = errors.New("bloom2: operation requires a CompressedBitmap backed filter")
	ErrMismatched     = errors.New("bloom2: filters differ in size or hasher configuration")

	ErrBadMagic       = errors.New("bloom2: header magic invalid")
	ErrBadVersion     = errors.New("bloom2: header version unsupported")
	ErrBadAlgorithm   = errors.New("bloom2: unknown hash algorithm")
	ErrBadCompression = errors.New("bloom2: unknown compression type")
	ErrCorruptPayload = errors.New("bloom2: corrupt run payload")
)

var (
	defaultFilterSize  = KeyBytes2
	defaultCompression = SnappyCompression
)
