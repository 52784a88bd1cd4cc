// Package topofixture — impl_path.go implements the Path(n) constructor.
package topofixture

import "github.com/mcastlab/resilmcast/topology"

// Path builds a simple switch chain P_n (n >= MinPathNodes), optionally
// attaching a single host via WithHost.
func Path(n int) Constructor {
	return func(g *topology.Graph, cfg *topoConfig) error {
		if err := validateMin(MethodPath, n, MinPathNodes); err != nil {
			return err
		}
		ids, err := addSwitches(g, n, cfg.idFn)
		if err != nil {
			return err
		}

		ports := make(portCounter)
		for i := 0; i+1 < len(ids); i++ {
			if err := link(g, ports, ids[i], ids[i+1]); err != nil {
				return err
			}
		}
		return attachConfiguredHost(g, ports, cfg)
	}
}
