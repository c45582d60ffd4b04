package bloom2

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Filter is a memory efficient bloom filter. It multiplexes one 64 bit key
// digest into several smaller sub-indexes and records one bit per
// sub-index in its bitmap, so the whole filter costs a single hash
// invocation per operation.
//
// A key that was inserted is always reported present; a key that was never
// inserted is reported present with a probability governed by the filter
// size and the number of keys inserted so far. There is no way to remove a
// key.
//
// A Filter exclusively owns its bitmap and performs no locking; callers
// that share an instance across goroutines must serialize access.
type Filter struct {
	hasher      IHasher
	bitmap      IBitmap
	size        FilterSize
	compression CompressionType
}

// Insert places key into the filter. Any subsequent Contains call for the
// same key returns true.
func (f *Filter) Insert(key []byte) {
	digest := f.digest(key)
	for start := 0; start < digestBytes; start += int(f.size) {
		f.bitmap.Set(subIndex(digest[start:min(start+int(f.size), digestBytes)]), true)
	}
}

// Contains checks whether key is in the filter. A true result means key
// has probably been inserted; a false result means it definitely has not.
//
// Every sub-index derived from the key must be set for the key to be
// reported present, so the false positive rate stays the product of the
// per-sub-index collision probabilities.
func (f *Filter) Contains(key []byte) bool {
	digest := f.digest(key)
	for start := 0; start < digestBytes; start += int(f.size) {
		if !f.bitmap.Get(subIndex(digest[start:min(start+int(f.size), digestBytes)])) {
			return false
		}
	}
	return true
}

// Merge folds every key inserted into other into f, the bitwise OR of the
// two filters. Both must use the same size and interchangeable hashers,
// and both must be backed by a CompressedBitmap; otherwise the receiver is
// left untouched and an error is returned.
func (f *Filter) Merge(other *Filter) error {
	if f.size != other.size {
		return fmt.Errorf("%w: sizes %d and %d", ErrMismatched, f.size, other.size)
	}
	if f.hasher.Algorithm() != other.hasher.Algorithm() ||
		!bytes.Equal(f.hasher.KeyMaterial(), other.hasher.KeyMaterial()) {
		return fmt.Errorf("%w: hashers are not interchangeable", ErrMismatched)
	}
	dst, ok := f.bitmap.(*CompressedBitmap)
	if !ok {
		return fmt.Errorf("%w: merge destination", ErrNotCompressed)
	}
	src, ok := other.bitmap.(*CompressedBitmap)
	if !ok {
		return fmt.Errorf("%w: merge source", ErrNotCompressed)
	}
	dst.Union(src)
	return nil
}

// Size returns the configured filter size.
func (f *Filter) Size() FilterSize {
	return f.size
}

// Bitmap returns the backing bit storage. Mutating it directly voids the
// filter's guarantees.
func (f *Filter) Bitmap() IBitmap {
	return f.bitmap
}

// Hasher returns the configured hasher.
func (f *Filter) Hasher() IHasher {
	return f.hasher
}

// digest hashes key once and lays the result out big-endian, the byte
// order the sub-index chunking is defined over.
func (f *Filter) digest(key []byte) [digestBytes]byte {
	var d [digestBytes]byte
	binary.BigEndian.PutUint64(d[:], f.hasher.Sum64(key))
	return d
}

// subIndex interprets chunk as a big-endian unsigned integer. Chunks are
// at most 8 bytes.
func subIndex(chunk []byte) uint64 {
	var v uint64
	for _, b := range chunk {
		v <<= 8
		v |= uint64(b)
	}
	return v
}
