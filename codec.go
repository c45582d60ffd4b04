package bloom2

import (
	"encoding/binary"
	"fmt"

	"github.com/DataDog/zstd"
	"github.com/golang/snappy"
)

// CompressionType is the codec applied to the serialized run payload.
type CompressionType uint8

// The available compression types.
const (
	NoCompression CompressionType = iota
	SnappyCompression
	ZstdCompression
)

const (
	defaultZstdLevel = 3

	// maxPayloadBytes bounds the decompressed payload a decoder will
	// allocate for, so a corrupt length prefix cannot demand the moon.
	maxPayloadBytes = 1 << 31
)

type iCompression interface {
	compress(src []byte) ([]byte, error)
	decompress(src []byte) ([]byte, error)
}

func newCompressor(ct CompressionType) (iCompression, error) {
	switch ct {
	case NoCompression:
		return &noopCompressor{}, nil
	case SnappyCompression:
		return &snappyCompressor{}, nil
	case ZstdCompression:
		return &zstdCompressor{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrBadCompression, ct)
	}
}

type noopCompressor struct{}

func (n *noopCompressor) compress(src []byte) ([]byte, error) {
	return src, nil
}

func (n *noopCompressor) decompress(src []byte) ([]byte, error) {
	return src, nil
}

type snappyCompressor struct{}

func (s *snappyCompressor) compress(src []byte) ([]byte, error) {
	return snappy.Encode(nil, src), nil
}

func (s *snappyCompressor) decompress(src []byte) ([]byte, error) {
	declen, err := snappy.DecodedLen(src)
	if err != nil {
		return nil, fmt.Errorf("%w: snappy: %v", ErrCorruptPayload, err)
	}
	if declen > maxPayloadBytes {
		return nil, fmt.Errorf("%w: snappy payload claims %d bytes", ErrCorruptPayload, declen)
	}
	res, err := snappy.Decode(nil, src)
	if err != nil {
		return nil, fmt.Errorf("%w: snappy: %v", ErrCorruptPayload, err)
	}
	return res, nil
}

type zstdCompressor struct{}

func (z *zstdCompressor) compress(src []byte) ([]byte, error) {
	// Prefix with a uvarint encoding of len(src) so decompression can
	// allocate an exactly sized buffer.
	bound := zstd.CompressBound(len(src))
	dst := make([]byte, binary.MaxVarintLen64+bound)
	varIntLen := binary.PutUvarint(dst, uint64(len(src)))

	zCtx := zstd.NewCtx()
	result, err := zCtx.CompressLevel(dst[varIntLen:varIntLen+bound], src, defaultZstdLevel)
	if err != nil {
		return nil, fmt.Errorf("bloom2: zstd compress: %w", err)
	}
	return dst[:varIntLen+len(result)], nil
}

func (z *zstdCompressor) decompress(src []byte) ([]byte, error) {
	declen, varIntLen := binary.Uvarint(src)
	if varIntLen <= 0 {
		return nil, fmt.Errorf("%w: missing zstd length prefix", ErrCorruptPayload)
	}
	if declen > maxPayloadBytes {
		return nil, fmt.Errorf("%w: zstd payload claims %d bytes", ErrCorruptPayload, declen)
	}
	if declen == 0 {
		return nil, nil
	}

	buf := make([]byte, declen)
	zCtx := zstd.NewCtx()
	if _, err := zCtx.DecompressInto(buf, src[varIntLen:]); err != nil {
		return nil, fmt.Errorf("%w: zstd: %v", ErrCorruptPayload, err)
	}
	return buf, nil
}

var _ iCompression = (*noopCompressor)(nil)
var _ iCompression = (*snappyCompressor)(nil)
var _ iCompression = (*zstdCompressor)(nil)
