package bloom2

import (
	"slices"
	"sort"
)

// bitRange is a maximal run of set bits, closed on both ends.
type bitRange struct {
	start uint64
	end   uint64
}

// contains reports whether index falls inside the run.
func (r bitRange) contains(index uint64) bool {
	return r.start <= index && index <= r.end
}

// length returns the number of bits covered by the run. A run spanning the
// full uint64 domain overflows to 0 and is handled by PopCount.
func (r bitRange) length() uint64 {
	return r.end - r.start + 1
}

// CompressedBitmap implements IBitmap with memory proportional to the
// number of maximal runs of set bits rather than the address space, so a
// single instance can back filters addressing up to 2^64 positions.
//
// Internally it keeps a slice of disjoint runs sorted by start position.
// No two runs touch: a set that would make two runs adjacent merges them
// into one. Set and Get are O(log r) in the number of runs.
//
// A CompressedBitmap is not safe for concurrent use.
type CompressedBitmap struct {
	runs []bitRange
}

// NewCompressedBitmap returns an empty bitmap.
func NewCompressedBitmap() *CompressedBitmap {
	return &CompressedBitmap{}
}

func (b *CompressedBitmap) Set(index uint64, value bool) {
	if value {
		b.setBit(index)
	} else {
		b.clearBit(index)
	}
}

func (b *CompressedBitmap) Get(index uint64) bool {
	i := b.search(index)
	return i < len(b.runs) && b.runs[i].contains(index)
}

// PopCount returns the number of set bits.
func (b *CompressedBitmap) PopCount() uint64 {
	var n uint64
	for _, r := range b.runs {
		l := r.length()
		if l == 0 {
			// A run covering the entire domain wraps length to 0; report
			// the closest representable count.
			return ^uint64(0)
		}
		n += l
	}
	return n
}

// RunCount returns the number of distinct runs of set bits.
func (b *CompressedBitmap) RunCount() int {
	return len(b.runs)
}

// search returns the position of the first run whose end is >= index.
// Every run before that position lies strictly left of index.
func (b *CompressedBitmap) search(index uint64) int {
	return sort.Search(len(b.runs), func(i int) bool {
		return b.runs[i].end >= index
	})
}

func (b *CompressedBitmap) setBit(index uint64) {
	i := b.search(index)

	// Already covered.
	if i < len(b.runs) && b.runs[i].contains(index) {
		return
	}

	// runs[i-1], when present, ends strictly left of index and runs[i],
	// when present, starts strictly right of it, so neither neighbor
	// adjacency check can overflow.
	leftAdjacent := i > 0 && b.runs[i-1].end+1 == index
	rightAdjacent := i < len(b.runs) && index+1 == b.runs[i].start

	switch {
	case leftAdjacent && rightAdjacent:
		// The bit fills a single-position gap, fusing both neighbors.
		b.runs[i-1].end = b.runs[i].end
		b.runs = slices.Delete(b.runs, i, i+1)
	case leftAdjacent:
		b.runs[i-1].end = index
	case rightAdjacent:
		b.runs[i].start = index
	default:
		b.runs = slices.Insert(b.runs, i, bitRange{start: index, end: index})
	}
}

func (b *CompressedBitmap) clearBit(index uint64) {
	i := b.search(index)
	if i == len(b.runs) || !b.runs[i].contains(index) {
		return
	}

	r := b.runs[i]
	switch {
	case r.start == r.end:
		b.runs = slices.Delete(b.runs, i, i+1)
	case index == r.start:
		b.runs[i].start = index + 1
	case index == r.end:
		b.runs[i].end = index - 1
	default:
		// Interior bit, split the run in two.
		b.runs[i].end = index - 1
		b.runs = slices.Insert(b.runs, i+1, bitRange{start: index + 1, end: r.end})
	}
}

// Union folds every set bit of other into b. Runs that overlap or become
// adjacent across the two inputs coalesce, so the result keeps the run
// invariants. other is left untouched.
func (b *CompressedBitmap) Union(other *CompressedBitmap) {
	if len(other.runs) == 0 {
		return
	}
	if len(b.runs) == 0 {
		b.runs = slices.Clone(other.runs)
		return
	}

	merged := make([]bitRange, 0, len(b.runs)+len(other.runs))
	i, j := 0, 0
	for i < len(b.runs) || j < len(other.runs) {
		var next bitRange
		if j == len(other.runs) || (i < len(b.runs) && b.runs[i].start <= other.runs[j].start) {
			next = b.runs[i]
			i++
		} else {
			next = other.runs[j]
			j++
		}

		// Coalesce with the previous output run when next overlaps or
		// touches it. When the previous run ends at the top of the domain
		// the overlap branch already fires, so the +1 cannot wrap into a
		// false adjacency.
		if n := len(merged); n > 0 && (next.start <= merged[n-1].end || next.start == merged[n-1].end+1) {
			if next.end > merged[n-1].end {
				merged[n-1].end = next.end
			}
		} else {
			merged = append(merged, next)
		}
	}
	b.runs = merged
}

// Intersect keeps only the bits set in both b and other.
func (b *CompressedBitmap) Intersect(other *CompressedBitmap) {
	if len(b.runs) == 0 || len(other.runs) == 0 {
		b.runs = nil
		return
	}

	out := make([]bitRange, 0, min(len(b.runs), len(other.runs)))
	i, j := 0, 0
	for i < len(b.runs) && j < len(other.runs) {
		lo := max(b.runs[i].start, other.runs[j].start)
		hi := min(b.runs[i].end, other.runs[j].end)
		if lo <= hi {
			out = append(out, bitRange{start: lo, end: hi})
		}
		// Advance whichever run ends first.
		if b.runs[i].end < other.runs[j].end {
			i++
		} else {
			j++
		}
	}
	b.runs = out
}

// clone returns a deep copy.
func (b *CompressedBitmap) clone() *CompressedBitmap {
	return &CompressedBitmap{runs: slices.Clone(b.runs)}
}

var _ IBitmap = (*CompressedBitmap)(nil)
