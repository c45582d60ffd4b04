package bloom2

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"go.uber.org/zap"
)

// Serialized filter layout:
//
//	+-----------------------+
//	| magic "BLF2"      (4) |
//	| version           (1) |
//	| filter size       (1) |
//	| hash algorithm    (1) |
//	| compression       (1) |
//	| key material len  (uvarint)
//	| key material          |
//	+-----------------------+
//	| compressed run payload|
//	+-----------------------+
//
// The run payload is, before compression, a uvarint run count followed by
// one (gap, span) uvarint pair per run: gap is the distance from the
// previous run's end (the absolute start for the first run), span is
// end-start. Runs are non-adjacent, so every gap after the first is >= 2,
// which a decoder verifies to reject corrupt input.

const (
	magic   = "BLF2"
	version = uint8(1)
)

// MarshalBinary serializes the filter's full state: size, hasher
// configuration, compression choice, and every run of set bits. Only
// filters backed by a CompressedBitmap can be serialized.
func (f *Filter) MarshalBinary() ([]byte, error) {
	cb, ok := f.bitmap.(*CompressedBitmap)
	if !ok {
		return nil, fmt.Errorf("%w: marshal", ErrNotCompressed)
	}
	comp, err := newCompressor(f.compression)
	if err != nil {
		return nil, err
	}

	payload := appendRuns(nil, cb.runs)
	blob, err := comp.compress(payload)
	if err != nil {
		return nil, err
	}

	km := f.hasher.KeyMaterial()
	out := make([]byte, 0, len(magic)+4+binary.MaxVarintLen64+len(km)+len(blob))
	out = append(out, magic...)
	out = append(out, version, uint8(f.size), uint8(f.hasher.Algorithm()), uint8(f.compression))
	out = binary.AppendUvarint(out, uint64(len(km)))
	out = append(out, km...)
	out = append(out, blob...)
	return out, nil
}

// UnmarshalFilter restores a filter serialized by MarshalBinary, including
// its hasher, so the restored instance reports every previously inserted
// key as present.
func UnmarshalFilter(data []byte) (*Filter, error) {
	f, err := unmarshalFilter(data)
	if err != nil {
		zap.L().Error("Failed to restore filter", zap.Error(err))
		return nil, err
	}
	return f, nil
}

func unmarshalFilter(data []byte) (*Filter, error) {
	if len(data) < len(magic)+4 {
		return nil, fmt.Errorf("%w: %d header bytes", ErrCorruptPayload, len(data))
	}
	if !bytes.Equal(data[:len(magic)], []byte(magic)) {
		return nil, ErrBadMagic
	}
	if data[4] != version {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, data[4])
	}
	size := FilterSize(data[5])
	if !size.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrBadFilterSize, size)
	}
	algo := HashAlgorithm(data[6])
	compression := CompressionType(data[7])
	comp, err := newCompressor(compression)
	if err != nil {
		return nil, err
	}

	rest := data[8:]
	kmLen, n := binary.Uvarint(rest)
	if n <= 0 || kmLen > uint64(len(rest)-n) {
		return nil, fmt.Errorf("%w: key material length", ErrCorruptPayload)
	}
	rest = rest[n:]
	hasher, err := newHasherFromState(algo, rest[:kmLen])
	if err != nil {
		return nil, err
	}

	payload, err := comp.decompress(rest[kmLen:])
	if err != nil {
		return nil, err
	}
	runs, err := decodeRuns(payload)
	if err != nil {
		return nil, err
	}

	return &Filter{
		hasher:      hasher,
		bitmap:      &CompressedBitmap{runs: runs},
		size:        size,
		compression: compression,
	}, nil
}

func appendRuns(dst []byte, runs []bitRange) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(runs)))
	var prevEnd uint64
	for i, r := range runs {
		gap := r.start
		if i > 0 {
			gap = r.start - prevEnd
		}
		dst = binary.AppendUvarint(dst, gap)
		dst = binary.AppendUvarint(dst, r.end-r.start)
		prevEnd = r.end
	}
	return dst
}

func decodeRuns(payload []byte) ([]bitRange, error) {
	count, n := binary.Uvarint(payload)
	if n <= 0 {
		return nil, fmt.Errorf("%w: run count", ErrCorruptPayload)
	}
	payload = payload[n:]
	if count == 0 {
		return nil, nil
	}
	if count > uint64(len(payload)) {
		// Each run needs at least two payload bytes.
		return nil, fmt.Errorf("%w: %d runs in %d bytes", ErrCorruptPayload, count, len(payload))
	}

	runs := make([]bitRange, 0, count)
	var prevEnd uint64
	for i := uint64(0); i < count; i++ {
		gap, n := binary.Uvarint(payload)
		if n <= 0 {
			return nil, fmt.Errorf("%w: run %d gap", ErrCorruptPayload, i)
		}
		payload = payload[n:]
		span, n := binary.Uvarint(payload)
		if n <= 0 {
			return nil, fmt.Errorf("%w: run %d span", ErrCorruptPayload, i)
		}
		payload = payload[n:]

		start := gap
		if i > 0 {
			// Non-adjacent sorted runs leave a gap of at least 2.
			if gap < 2 || gap > math.MaxUint64-prevEnd {
				return nil, fmt.Errorf("%w: run %d gap %d", ErrCorruptPayload, i, gap)
			}
			start = prevEnd + gap
		}
		if span > math.MaxUint64-start {
			return nil, fmt.Errorf("%w: run %d span %d", ErrCorruptPayload, i, span)
		}
		runs = append(runs, bitRange{start: start, end: start + span})
		prevEnd = start + span
	}
	if len(payload) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorruptPayload, len(payload))
	}
	return runs, nil
}
