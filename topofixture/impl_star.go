// Package topofixture — impl_star.go implements the Star(n) constructor.
package topofixture

import "github.com/mcastlab/resilmcast/topology"

// Star builds a hub-and-spoke fixture: a fixed-ID "Center" switch plus n-1
// leaves (n >= MinStarNodes). Useful for exercising many subscribers
// attached behind the same switch.
func Star(n int) Constructor {
	return func(g *topology.Graph, cfg *topoConfig) error {
		if err := validateMin(MethodStar, n, MinStarNodes); err != nil {
			return err
		}
		if err := g.AddNode(&topology.Node{ID: CenterVertexID, Kind: topology.Switch, DatapathID: 1}); err != nil {
			return err
		}

		ports := make(portCounter)
		for i := 1; i < n; i++ {
			leafID := cfg.idFn(i)
			if err := g.AddNode(&topology.Node{ID: leafID, Kind: topology.Switch, DatapathID: uint64(i + 1)}); err != nil {
				return err
			}
			if err := link(g, ports, CenterVertexID, leafID); err != nil {
				return err
			}
		}
		return attachConfiguredHost(g, ports, cfg)
	}
}
