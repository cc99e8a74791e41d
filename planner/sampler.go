package planner

import "math/rand/v2"

// Sampler draws the target point of each expansion.
type Sampler interface {
	// Sample returns a point with x in [0, width] and y in [0, height].
	Sample(height, width int) Point
}

// SamplerFunc adapts a function to the Sampler interface.
type SamplerFunc func(height, width int) Point

// Sample calls f.
func (f SamplerFunc) Sample(height, width int) Point {
	return f(height, width)
}

// RandomSampler draws x and y independently from uniform integer
// distributions over the grid bounds.
type RandomSampler struct {
	rng *rand.Rand
}

// NewRandomSampler returns a sampler with a reproducible sequence for seed.
func NewRandomSampler(seed uint64) *RandomSampler {
	return &RandomSampler{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewEntropySampler returns a sampler seeded from the runtime's entropy source.
func NewEntropySampler() *RandomSampler {
	return &RandomSampler{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// Sample implements Sampler. Bounds must not exceed MaxGridSize.
func (s *RandomSampler) Sample(height, width int) Point {
	return Point{
		X: s.rng.IntN(width + 1),
		Y: s.rng.IntN(height + 1),
	}
}
