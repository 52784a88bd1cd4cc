// Package topofixture provides deterministic, functional-options-style
// constructors for topology.Graph test fixtures: Path, Cycle, Complete,
// RandomSparse, RandomRegular, and Star shapes of switches, with an optional
// single host attached to a designated switch.
//
// The package offers:
//
//   - Configuration primitives: BuilderOption mutating a topoConfig (RNG,
//     vertex ID scheme, optional host attachment).
//   - Vertex-ID schemes (IDFn implementations): DefaultIDFn, SymbolNumberIDFn.
//   - Validation helpers: validateMin, validateProbability.
//   - Shared constants: minimum node counts per shape, probability bounds.
//
// BuildTopology(opts, cons...) is the single entry point: it creates an
// empty topology.Graph, resolves a topoConfig from opts, and applies each
// Constructor in order.
package topofixture
