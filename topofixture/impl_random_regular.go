// Package topofixture — impl_random_regular.go implements the
// RandomRegular(n, d) constructor.
package topofixture

import (
	"fmt"

	"github.com/mcastlab/resilmcast/topology"
)

// RandomRegular builds an undirected d-regular switch mesh over n switches
// via stub-matching with bounded reshuffle retries (n*d must be even,
// 0 <= d < n; rng required).
func RandomRegular(n, d int) Constructor {
	return func(g *topology.Graph, cfg *topoConfig) error {
		if err := validateMin(MethodRandomRegular, n, MinRandomRegularNodes); err != nil {
			return err
		}
		if d < 0 || d >= n {
			return fmt.Errorf("%s: degree must be in [0,%d), got %d: %w", MethodRandomRegular, n, d, ErrTooFewVertices)
		}
		if (n*d)%2 != 0 {
			return fmt.Errorf("%s: n*d must be even (n=%d, d=%d): %w", MethodRandomRegular, n, d, ErrTooFewVertices)
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: rng is required: %w", MethodRandomRegular, ErrNeedRandSource)
		}

		ids, err := addSwitches(g, n, cfg.idFn)
		if err != nil {
			return err
		}

		stubCount := n * d
		if stubCount == 0 {
			return attachConfiguredHost(g, make(portCounter), cfg)
		}
		stubs := make([]int, stubCount)
		for i, pos := 0, 0; i < n; i++ {
			for k := 0; k < d; k++ {
				stubs[pos] = i
				pos++
			}
		}

		for attempt := 1; attempt <= maxStubMatchingAttempts; attempt++ {
			cfg.rng.Shuffle(stubCount, func(i, j int) { stubs[i], stubs[j] = stubs[j], stubs[i] })

			seen := make(map[[2]int]struct{}, stubCount/2)
			valid := true
			for i := 0; i < stubCount; i += 2 {
				u, v := stubs[i], stubs[i+1]
				if u == v {
					valid = false
					break
				}
				if u > v {
					u, v = v, u
				}
				key := [2]int{u, v}
				if _, dup := seen[key]; dup {
					valid = false
					break
				}
				seen[key] = struct{}{}
			}
			if !valid {
				continue
			}

			ports := make(portCounter)
			for i := 0; i < stubCount; i += 2 {
				if err := link(g, ports, ids[stubs[i]], ids[stubs[i+1]]); err != nil {
					return err
				}
			}
			return attachConfiguredHost(g, ports, cfg)
		}

		return fmt.Errorf("%s: failed to construct after %d attempts: %w", MethodRandomRegular, maxStubMatchingAttempts, ErrConstructFailed)
	}
}
