// Package topofixture — impl_cycle.go implements the Cycle(n) constructor.
package topofixture

import "github.com/mcastlab/resilmcast/topology"

// Cycle builds an n-switch ring C_n (n >= MinCycleNodes): the diamond/
// parallel-path shape the Per-Link Protector's backup joins rely on having
// somewhere to land.
func Cycle(n int) Constructor {
	return func(g *topology.Graph, cfg *topoConfig) error {
		if err := validateMin(MethodCycle, n, MinCycleNodes); err != nil {
			return err
		}
		ids, err := addSwitches(g, n, cfg.idFn)
		if err != nil {
			return err
		}

		ports := make(portCounter)
		for i := 0; i < len(ids); i++ {
			if err := link(g, ports, ids[i], ids[(i+1)%len(ids)]); err != nil {
				return err
			}
		}
		return attachConfiguredHost(g, ports, cfg)
	}
}
