// Package fuzz fills structured values from a byte blob, so that payload
// validation can be exercised with arbitrary inputs.
package fuzz

import (
	"encoding/binary"
	"math/rand"

	gofuzz "github.com/google/gofuzz"
)

var _ rand.Source64 = (*Source)(nil)

// Source is a randomness source for the standard random generator that
// replays a byte blob. Once the blob is exhausted it falls back to a
// pseudo random sequence seeded from the blob length.
type Source struct {
	Backing   []byte
	Exhausted int

	pos      int
	fallback rand.Source64
}

func (s *Source) Int63() int64 {
	return int64(s.Uint64() & ((1 << 63) - 1))
}

func (s *Source) Seed(_ int64) {
	// Nothing to do here.
}

func (s *Source) Uint64() uint64 {
	if s.pos+8 > len(s.Backing) {
		s.Exhausted += 8
		return s.fallback.Uint64()
	}

	s.pos += 8
	return binary.BigEndian.Uint64(s.Backing[s.pos-8 : s.pos])
}

// NewRandSource returns a new random source with the given backing array.
func NewRandSource(backing []byte) *Source {
	return &Source{
		Backing:  backing,
		fallback: rand.NewSource(int64(len(backing))).(rand.Source64),
	}
}

// Filler fills values from a byte blob.
type Filler struct {
	source *Source
	fuzzer *gofuzz.Fuzzer
}

// NewFiller returns a filler that draws from data. Optional fields are left
// unset with probability nilChance and collections have up to maxElements
// entries.
func NewFiller(data []byte, nilChance float64, maxElements int) *Filler {
	source := NewRandSource(data)
	return &Filler{
		source: source,
		fuzzer: gofuzz.New().
			RandSource(source).
			NilChance(nilChance).
			NumElements(0, maxElements),
	}
}

// Fill fills obj, which must be a pointer. It returns false if the blob was
// too short to determine every value.
func (f *Filler) Fill(obj interface{}) bool {
	f.fuzzer.Fuzz(obj)
	return f.source.Exhausted == 0
}
