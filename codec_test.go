package bloom2

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressors_RoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"empty":    {},
		"small":    {0x01, 0x02, 0x03, 0xff},
		"text":     []byte("the quick brown fox jumps over the lazy dog"),
		"repeated": bytes.Repeat([]byte("run"), 2048),
	}

	for _, ct := range []CompressionType{NoCompression, SnappyCompression, ZstdCompression} {
		comp, err := newCompressor(ct)
		require.NoError(t, err)

		for name, src := range payloads {
			t.Run(name, func(t *testing.T) {
				compressed, err := comp.compress(src)
				require.NoError(t, err)

				decompressed, err := comp.decompress(compressed)
				require.NoError(t, err)
				assert.Equal(t, src, decompressed)
			})
		}
	}
}

func TestSnappyCompressor_ShrinksRepetitivePayloads(t *testing.T) {
	comp, err := newCompressor(SnappyCompression)
	require.NoError(t, err)

	src := bytes.Repeat([]byte{0xaa}, 4096)
	compressed, err := comp.compress(src)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(src))
}

func TestCompressors_CorruptInput(t *testing.T) {
	garbage := []byte{0xff, 0xfe, 0xfd, 0xfc}

	snappyComp, err := newCompressor(SnappyCompression)
	require.NoError(t, err)
	_, err = snappyComp.decompress(garbage)
	assert.ErrorIs(t, err, ErrCorruptPayload)

	zstdComp, err := newCompressor(ZstdCompression)
	require.NoError(t, err)
	_, err = zstdComp.decompress([]byte{})
	assert.ErrorIs(t, err, ErrCorruptPayload)
}

func TestNewCompressor_Unknown(t *testing.T) {
	_, err := newCompressor(CompressionType(42))
	assert.ErrorIs(t, err, ErrBadCompression)
}
