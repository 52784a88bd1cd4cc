// Package topofixture provides internal configuration types and functional
// options for topology constructors. It centralizes RNG, vertex ID scheme,
// and the optional single-host attachment used by every Constructor.
package topofixture

import "math/rand"

// BuilderOption customizes a Constructor's behavior by mutating a topoConfig
// before the fixture is built. Later options override earlier ones.
type BuilderOption func(cfg *topoConfig)

// topoConfig holds the configurable parameters shared by all constructors.
// Not safe for concurrent mutation; each BuildTopology call resolves its own.
type topoConfig struct {
	rng  *rand.Rand // optional RNG; nil means deterministic/unavailable
	idFn IDFn        // index -> switch ID

	hostAttach string // switch ID to attach a single host to; "" = none
	hostID     string
	hostMAC    string
}

// newTopoConfig returns a topoConfig initialized with defaults (DefaultIDFn,
// no RNG, no host), then applies each BuilderOption in order.
func newTopoConfig(opts ...BuilderOption) *topoConfig {
	cfg := &topoConfig{idFn: DefaultIDFn}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithIDScheme injects a custom IDFn. A nil idFn is a no-op.
func WithIDScheme(idFn IDFn) BuilderOption {
	return func(cfg *topoConfig) {
		if idFn != nil {
			cfg.idFn = idFn
		}
	}
}

// WithRand sets an explicit RNG source. A nil rng is a no-op.
func WithRand(rng *rand.Rand) BuilderOption {
	return func(cfg *topoConfig) {
		if rng != nil {
			cfg.rng = rng
		}
	}
}

// WithSeed seeds a fresh RNG for reproducible RandomSparse/RandomRegular
// fixtures.
func WithSeed(seed int64) BuilderOption {
	return func(cfg *topoConfig) {
		cfg.rng = rand.New(rand.NewSource(seed))
	}
}

// WithHost attaches a single host node hostID (hardware address mac) to
// switch attachTo once the shape's switches have been built.
func WithHost(attachTo, hostID, mac string) BuilderOption {
	return func(cfg *topoConfig) {
		cfg.hostAttach = attachTo
		cfg.hostID = hostID
		cfg.hostMAC = mac
	}
}
