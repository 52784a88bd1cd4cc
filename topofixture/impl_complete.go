// Package topofixture — impl_complete.go implements the Complete(n)
// constructor.
package topofixture

import "github.com/mcastlab/resilmcast/topology"

// Complete builds the complete switch mesh K_n (n >= MinCompleteNodes): a
// stress fixture with many redundant paths between every pair of switches.
func Complete(n int) Constructor {
	return func(g *topology.Graph, cfg *topoConfig) error {
		if err := validateMin(MethodComplete, n, MinCompleteNodes); err != nil {
			return err
		}
		ids, err := addSwitches(g, n, cfg.idFn)
		if err != nil {
			return err
		}

		ports := make(portCounter)
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				if err := link(g, ports, ids[i], ids[j]); err != nil {
					return err
				}
			}
		}
		return attachConfiguredHost(g, ports, cfg)
	}
}
