package planner

// DefaultMaxIterations bounds a search when WithMaxIterations is not given.
const DefaultMaxIterations = 100000

// Option configures a Planner.
type Option func(*Planner)

// WithSampler replaces the entropy-seeded sampler.
func WithSampler(s Sampler) Option {
	return func(p *Planner) {
		p.sampler = s
	}
}

// WithSeed makes sampling reproducible.
func WithSeed(seed uint64) Option {
	return WithSampler(NewRandomSampler(seed))
}

// WithMaxIterations sets how many samples a search may draw before it gives
// up with a no-path-found error.
func WithMaxIterations(n int) Option {
	return func(p *Planner) {
		p.maxIterations = n
	}
}

// WithNearest selects the nearest-neighbor strategy, NearestLinear or
// NearestRTree.
func WithNearest(kind string) Option {
	return func(p *Planner) {
		p.nearestKind = kind
	}
}
