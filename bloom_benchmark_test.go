package bloom2

import (
	"encoding/binary"
	"testing"
)

func benchKeys(n int) [][]byte {
	keys := make([][]byte, n)
	for i := range keys {
		keys[i] = make([]byte, 8)
		binary.BigEndian.PutUint64(keys[i], uint64(i)*0x9e3779b97f4a7c15)
	}
	return keys
}

func Benchmark_Filter_Insert(b *testing.B) {
	f, err := New(WithHasher(NewSipHasherFromKeys(7, 9)))
	if err != nil {
		b.Fatal(err)
	}
	keys := benchKeys(1 << 16)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Insert(keys[i&(1<<16-1)])
	}
}

func Benchmark_Filter_Contains(b *testing.B) {
	f, err := New(WithHasher(NewSipHasherFromKeys(7, 9)))
	if err != nil {
		b.Fatal(err)
	}
	keys := benchKeys(1 << 16)
	for _, key := range keys {
		f.Insert(key)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Contains(keys[i&(1<<16-1)])
	}
}

func Benchmark_CompressedBitmap_Set(b *testing.B) {
	bm := NewCompressedBitmap()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bm.Set(uint64(i)*0x9e3779b97f4a7c15%(1<<20), true)
	}
}

func Benchmark_DenseBitmap_Set(b *testing.B) {
	bm := NewDenseBitmap(1 << 20)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bm.Set(uint64(i)*0x9e3779b97f4a7c15%(1<<20), true)
	}
}
