// Package random provides the injectable randomness used by generators.
// Nothing in the generators reads global random state, so a fixed seed (or a
// Script) reproduces a layout exactly.
package random

import (
	"math/rand"
	"time"
)

// Service is the source of randomness consumed by generation code
type Service interface {
	// Range returns a uniform integer in [minInclusive, maxExclusive).
	// It returns minInclusive when the range is empty.
	Range(minInclusive, maxExclusive int) int
	// Chance returns true with probability p
	Chance(p float64) bool
}

// Source is a Service backed by a seeded math/rand generator
type Source struct {
	seed int64
	rng  *rand.Rand
}

// New creates a Source seeded with seed
func New(seed int64) *Source {
	return &Source{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// NewFromTime creates a Source seeded from the current time
func NewFromTime() *Source {
	return New(time.Now().UnixNano())
}

// Seed returns the seed this source was created with
func (s *Source) Seed() int64 {
	return s.seed
}

// Range returns a uniform integer in [minInclusive, maxExclusive)
func (s *Source) Range(minInclusive, maxExclusive int) int {
	if maxExclusive <= minInclusive {
		return minInclusive
	}
	return minInclusive + s.rng.Intn(maxExclusive-minInclusive)
}

// Chance returns true with probability p
func (s *Source) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.rng.Float64() < p
}
