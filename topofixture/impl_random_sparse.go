// Package topofixture — impl_random_sparse.go implements the
// RandomSparse(n, p) constructor.
package topofixture

import (
	"fmt"

	"github.com/mcastlab/resilmcast/topology"
)

// RandomSparse builds an Erdos-Renyi-like switch mesh over n switches,
// including each unordered pair independently with probability p. RNG is
// required whenever 0 < p < 1; deterministic edge sets are produced outright
// for p == 0 or p == 1.
func RandomSparse(n int, p float64) Constructor {
	return func(g *topology.Graph, cfg *topoConfig) error {
		if err := validateMin(MethodRandomSparse, n, 1); err != nil {
			return err
		}
		if err := validateProbability(MethodRandomSparse, p); err != nil {
			return err
		}
		if cfg.rng == nil && p > 0 && p < 1 {
			return fmt.Errorf("%s: rng is required: %w", MethodRandomSparse, ErrNeedRandSource)
		}

		ids, err := addSwitches(g, n, cfg.idFn)
		if err != nil {
			return err
		}

		ports := make(portCounter)
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				include := p == 1 || (cfg.rng != nil && cfg.rng.Float64() <= p)
				if !include {
					continue
				}
				if err := link(g, ports, ids[i], ids[j]); err != nil {
					return err
				}
			}
		}
		return attachConfiguredHost(g, ports, cfg)
	}
}
