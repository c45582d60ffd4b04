package bloom2

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/dchest/siphash"
	"github.com/twmb/murmur3"
	"github.com/zeebo/xxh3"
)

// SipHasher hashes keys with keyed SipHash-2-4. It is the default hasher:
// the 128 bit key makes the bit positions produced by a filter unpredictable
// to parties that cannot observe the key, so false positives cannot be
// ground offline.
type SipHasher struct {
	k0, k1 uint64
}

// NewSipHasher returns a SipHasher with a fresh random key.
func NewSipHasher() *SipHasher {
	// The key only has to differ between filter instances; rand.Read does
	// not fail on supported platforms.
	var seed [16]byte
	_, _ = rand.Read(seed[:])
	return &SipHasher{
		k0: binary.BigEndian.Uint64(seed[0:8]),
		k1: binary.BigEndian.Uint64(seed[8:16]),
	}
}

// NewSipHasherFromKeys returns a SipHasher with an explicit key, used to
// restore a persisted filter or to build mergeable filters that share key
// material.
func NewSipHasherFromKeys(k0, k1 uint64) *SipHasher {
	return &SipHasher{k0: k0, k1: k1}
}

func (h *SipHasher) Algorithm() HashAlgorithm {
	return SipHash
}

func (h *SipHasher) Sum64(key []byte) uint64 {
	return siphash.Hash(h.k0, h.k1, key)
}

func (h *SipHasher) KeyMaterial() []byte {
	var km [16]byte
	binary.BigEndian.PutUint64(km[0:8], h.k0)
	binary.BigEndian.PutUint64(km[8:16], h.k1)
	return km[:]
}

// XXH3Hasher hashes keys with seeded xxh3. Faster than SipHash but the
// seed offers no resistance against deliberately colliding keys.
type XXH3Hasher struct {
	seed uint64
}

// NewXXH3Hasher returns an XXH3Hasher with a fresh random seed.
func NewXXH3Hasher() *XXH3Hasher {
	var seed [8]byte
	_, _ = rand.Read(seed[:])
	return &XXH3Hasher{seed: binary.BigEndian.Uint64(seed[:])}
}

// NewXXH3HasherFromSeed returns an XXH3Hasher with an explicit seed.
func NewXXH3HasherFromSeed(seed uint64) *XXH3Hasher {
	return &XXH3Hasher{seed: seed}
}

func (h *XXH3Hasher) Algorithm() HashAlgorithm {
	return XXH3
}

func (h *XXH3Hasher) Sum64(key []byte) uint64 {
	return xxh3.HashSeed(key, h.seed)
}

func (h *XXH3Hasher) KeyMaterial() []byte {
	var km [8]byte
	binary.BigEndian.PutUint64(km[:], h.seed)
	return km[:]
}

// Murmur3Hasher hashes keys with unkeyed 64 bit murmur3. Deterministic
// across instances, which makes any two Murmur3 filters of the same size
// mergeable, at the cost of a stable false positive set.
type Murmur3Hasher struct{}

// NewMurmur3Hasher returns a Murmur3Hasher.
func NewMurmur3Hasher() *Murmur3Hasher {
	return &Murmur3Hasher{}
}

func (h *Murmur3Hasher) Algorithm() HashAlgorithm {
	return Murmur3
}

func (h *Murmur3Hasher) Sum64(key []byte) uint64 {
	mh := murmur3.New64()
	_, _ = mh.Write(key)
	return mh.Sum64()
}

func (h *Murmur3Hasher) KeyMaterial() []byte {
	return nil
}

// newHasherFromState rebuilds a hasher from its serialized algorithm tag
// and key material.
func newHasherFromState(algo HashAlgorithm, keyMaterial []byte) (IHasher, error) {
	switch algo {
	case SipHash:
		if len(keyMaterial) != 16 {
			return nil, fmt.Errorf("%w: siphash wants 16 key bytes, got %d", ErrCorruptPayload, len(keyMaterial))
		}
		return NewSipHasherFromKeys(
			binary.BigEndian.Uint64(keyMaterial[0:8]),
			binary.BigEndian.Uint64(keyMaterial[8:16]),
		), nil
	case XXH3:
		if len(keyMaterial) != 8 {
			return nil, fmt.Errorf("%w: xxh3 wants 8 seed bytes, got %d", ErrCorruptPayload, len(keyMaterial))
		}
		return NewXXH3HasherFromSeed(binary.BigEndian.Uint64(keyMaterial)), nil
	case Murmur3:
		if len(keyMaterial) != 0 {
			return nil, fmt.Errorf("%w: murmur3 carries no key material", ErrCorruptPayload)
		}
		return NewMurmur3Hasher(), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrBadAlgorithm, algo)
	}
}

var _ IHasher = (*SipHasher)(nil)
var _ IHasher = (*XXH3Hasher)(nil)
var _ IHasher = (*Murmur3Hasher)(nil)
