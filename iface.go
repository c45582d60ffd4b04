package bloom2

// IBitmap abstracts bit storage for a Filter. The filter derives bit
// positions from a key hash and delegates all reads and writes to this
// interface, so any strategy that can record single bits can back a filter.
//
// Implementations are not required to be safe for concurrent use; the
// filter that owns a bitmap is the only writer.
type IBitmap interface {
	// Set unconditionally records the bit at index as value.
	Set(index uint64, value bool)
	// Get returns the last recorded value for index, or false if the index
	// was never set.
	Get(index uint64) bool
	// PopCount returns the number of bits currently set.
	PopCount() uint64
}

// IHasher produces one 64 bit digest per key. The same key must always
// produce the same digest for a given hasher instance, otherwise the
// filter loses its no-false-negative guarantee.
type IHasher interface {
	// Algorithm identifies the hash algorithm, used to frame serialized
	// filters and to reject merges across incompatible filters.
	Algorithm() HashAlgorithm
	// Sum64 hashes key to a 64 bit digest.
	Sum64(key []byte) uint64
	// KeyMaterial returns the serialized hasher configuration (seed or
	// keys), or nil for unkeyed algorithms. Two hashers with the same
	// algorithm and key material are interchangeable.
	KeyMaterial() []byte
}
