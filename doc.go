// Package bloom2 implements a sparse, memory efficient bloom filter.
//
// A Filter answers "was this key possibly inserted?" without storing the
// keys themselves. Instead of k independent hash functions it hashes each
// key once and splits the 64 bit digest into big-endian chunks of a
// configurable width (FilterSize); each chunk addresses one bit in the
// backing bitmap. A reported miss is definitive, a reported hit is
// probabilistic.
//
// The default bit storage, CompressedBitmap, keeps a sorted list of runs
// of set bits, so memory grows with the number of distinct runs rather
// than the address space. That makes the wide filter sizes (up to the full
// 2^64 positions of KeyBytes8) practical without pre-allocating the
// bitmap. DenseBitmap is the flat alternative for the small sizes.
//
//	filter, err := bloom2.New()
//	if err != nil {
//		// only reachable with invalid options
//	}
//	filter.Insert([]byte("hello"))
//	filter.Contains([]byte("hello")) // true
//	filter.Contains([]byte("bye"))   // false (almost certainly)
//
// Filters are single-owner: no operation takes a lock, callers sharing an
// instance across goroutines must serialize access themselves.
package bloom2
