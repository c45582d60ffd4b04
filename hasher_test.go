package bloom2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSipHasher_Deterministic(t *testing.T) {
	h := NewSipHasherFromKeys(0x0706050403020100, 0x0f0e0d0c0b0a0908)
	assert.Equal(t, h.Sum64([]byte("hello")), h.Sum64([]byte("hello")))
	assert.NotEqual(t, h.Sum64([]byte("hello")), h.Sum64([]byte("world")))

	// Same keys, interchangeable instance.
	h2 := NewSipHasherFromKeys(0x0706050403020100, 0x0f0e0d0c0b0a0908)
	assert.Equal(t, h.Sum64([]byte("hello")), h2.Sum64([]byte("hello")))

	// Fresh random keys produce an unrelated digest stream.
	h3 := NewSipHasher()
	h4 := NewSipHasher()
	assert.NotEqual(t, h3.KeyMaterial(), h4.KeyMaterial())
}

func TestXXH3Hasher_SeedMatters(t *testing.T) {
	h1 := NewXXH3HasherFromSeed(1)
	h2 := NewXXH3HasherFromSeed(2)
	assert.Equal(t, h1.Sum64([]byte("hello")), h1.Sum64([]byte("hello")))
	assert.NotEqual(t, h1.Sum64([]byte("hello")), h2.Sum64([]byte("hello")))
}

func TestMurmur3Hasher_Deterministic(t *testing.T) {
	h1 := NewMurmur3Hasher()
	h2 := NewMurmur3Hasher()
	assert.Equal(t, h1.Sum64([]byte("hello")), h2.Sum64([]byte("hello")))
	assert.Nil(t, h1.KeyMaterial())
}

func TestNewHasherFromState_RoundTrip(t *testing.T) {
	hashers := []IHasher{
		NewSipHasherFromKeys(7, 9),
		NewXXH3HasherFromSeed(42),
		NewMurmur3Hasher(),
	}
	for _, h := range hashers {
		restored, err := newHasherFromState(h.Algorithm(), h.KeyMaterial())
		require.NoError(t, err)
		assert.Equal(t, h.Algorithm(), restored.Algorithm())
		assert.Equal(t, h.Sum64([]byte("round trip")), restored.Sum64([]byte("round trip")))
	}
}

func TestNewHasherFromState_Invalid(t *testing.T) {
	_, err := newHasherFromState(HashAlgorithm(250), nil)
	assert.ErrorIs(t, err, ErrBadAlgorithm)

	_, err = newHasherFromState(SipHash, []byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrCorruptPayload)

	_, err = newHasherFromState(XXH3, nil)
	assert.ErrorIs(t, err, ErrCorruptPayload)

	_, err = newHasherFromState(Murmur3, []byte{1})
	assert.ErrorIs(t, err, ErrCorruptPayload)
}
