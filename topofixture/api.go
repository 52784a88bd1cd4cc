// Package topofixture — api.go provides the single public entry point for
// assembling topology.Graph fixtures.
package topofixture

import (
	"fmt"

	"github.com/mcastlab/resilmcast/topology"
)

// Constructor applies a deterministic mutation to g using the resolved
// topoConfig. Constructors validate parameters early and return sentinel
// errors; they never panic.
type Constructor func(g *topology.Graph, cfg *topoConfig) error

// BuildTopology creates a new topology.Graph, resolves a topoConfig from
// opts, and applies every constructor in order. A constructor error is
// wrapped with "BuildTopology: %w" and returned immediately.
func BuildTopology(opts []BuilderOption, cons ...Constructor) (*topology.Graph, error) {
	g := topology.NewGraph()
	cfg := newTopoConfig(opts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildTopology: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return nil, fmt.Errorf("BuildTopology: %w", err)
		}
	}

	return g, nil
}
