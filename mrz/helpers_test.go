package mrz

import (
	"math/rand/v2"
	"testing"
)

// scriptedSource replays fixed draws so tests can pin every sampled value.
type scriptedSource struct {
	t      *testing.T
	ints   []int
	floats []float64
}

func (s *scriptedSource) IntN(n int) int {
	s.t.Helper()
	if len(s.ints) == 0 {
		s.t.Fatalf("scripted source ran out of ints (IntN(%d))", n)
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v < 0 || v >= n {
		s.t.Fatalf("scripted int %d out of range for IntN(%d)", v, n)
	}
	return v
}

func (s *scriptedSource) Float64() float64 {
	s.t.Helper()
	if len(s.floats) == 0 {
		s.t.Fatalf("scripted source ran out of floats")
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedSource) requireDrained() {
	s.t.Helper()
	if len(s.ints) != 0 || len(s.floats) != 0 {
		s.t.Fatalf("scripted source has unused draws: ints=%v floats=%v", s.ints, s.floats)
	}
}

func newSeededSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

var testVocabulary = Vocabulary{
	GivenNames:    []string{"ANNA", "MARIA", "OSCAR", "JAN PIETER", "EDWARD"},
	Surnames:      []string{"ERIKSSON", "SANDERSON", "DE VRIES", "NGUYEN"},
	Nationalities: []string{"UTO", "NLD", "GBR", "D<<"},
}
