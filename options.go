package bloom2

import (
	"fmt"
)

// OptionFn configures a Filter under construction.
type OptionFn func(f *Filter)

// WithHasher sets the hash algorithm. The default is a SipHasher with a
// fresh random key.
func WithHasher(h IHasher) OptionFn {
	return func(f *Filter) {
		f.hasher = h
	}
}

// WithBitmap sets the bit storage. The default is an empty
// CompressedBitmap. Passing a non-empty bitmap restores the state of a
// previously built filter; pair it with the hasher that filter used, or
// the restored bits will never match.
func WithBitmap(b IBitmap) OptionFn {
	return func(f *Filter) {
		f.bitmap = b
	}
}

// WithFilterSize controls the address space and the number of sub-indexes
// per key, and with them the memory use and false positive probability of
// the filter. The default is KeyBytes2.
func WithFilterSize(s FilterSize) OptionFn {
	return func(f *Filter) {
		f.size = s
	}
}

// WithCompression selects the codec MarshalBinary passes the run payload
// through. The default is SnappyCompression.
func WithCompression(ct CompressionType) OptionFn {
	return func(f *Filter) {
		f.compression = ct
	}
}

// New builds a Filter. With no options it uses a keyed SipHash hasher, a
// CompressedBitmap, and a 2 byte filter size, a configuration that holds
// any mix of keys in memory proportional to the bits actually set.
func New(opts ...OptionFn) (*Filter, error) {
	f := &Filter{
		size:        defaultFilterSize,
		compression: defaultCompression,
	}
	for _, opt := range opts {
		opt(f)
	}

	if !f.size.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrBadFilterSize, f.size)
	}
	if _, err := newCompressor(f.compression); err != nil {
		return nil, err
	}
	if f.hasher == nil {
		f.hasher = NewSipHasher()
	}
	if f.bitmap == nil {
		f.bitmap = NewCompressedBitmap()
	}

	// A capacity-bound bitmap must cover the whole address space implied
	// by the filter size, or inserts would silently drop bits.
	if db, ok := f.bitmap.(*DenseBitmap); ok {
		if db.Capacity() == 0 || db.Capacity()-1 < f.size.MaxIndex() {
			return nil, fmt.Errorf("%w: %d bits for filter size %d", ErrBitmapTooSmall, db.Capacity(), f.size)
		}
	}

	return f, nil
}
