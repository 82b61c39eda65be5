// Package rng provides the explicit, counter-based random source threaded
// through sampler entry points. The core never reaches for a process-global
// generator: every call site that needs randomness takes a *Stream and
// mutates it, so replays are deterministic given a seed and a rank.
package rng

import "math/rand/v2"

// Stream wraps a PCG generator, which is a counter-based family: two chains
// seeded from the same base with different ranks get statistically
// independent streams, as the concurrency model in SPEC_FULL.md §5 requires.
type Stream struct {
	r *rand.Rand
}

// New builds a Stream for the given chain rank, mixing rank into the PCG
// seed so distinct ranks never share a stream.
func New(seed uint64, rank int) *Stream {
	hi := seed ^ (uint64(rank) * 0x9E3779B97F4A7C15)
	lo := seed + uint64(rank)
	return &Stream{r: rand.New(rand.NewPCG(hi, lo))}
}

// Float64 returns a uniform variate in [0, 1), matching the source's urand().
func (s *Stream) Float64() float64 {
	return s.r.Float64()
}

// IntN returns a uniform integer in [0, n), matching the source's int_urand().
func (s *Stream) IntN(n int) int {
	return s.r.IntN(n)
}

// Bool returns true with probability 0.5.
func (s *Stream) Bool() bool {
	return s.r.Float64() < 0.5
}

// Uint64 exposes the raw PCG output, used only to adapt a Stream to
// third-party generators (gonum/stat/distuv) that want a Uint64-only
// source rather than a direct dependency on this package's API.
func (s *Stream) Uint64() uint64 {
	return s.r.Uint64()
}
