// Package topofixture — helpers.go provides shared node/edge emission
// helpers used by the shape constructors.
package topofixture

import (
	"fmt"

	"github.com/mcastlab/resilmcast/topology"
)

// portCounter assigns sequentially increasing port numbers per switch as
// links are added, starting at 1 (port 0 is never issued).
type portCounter map[string]int

func (p portCounter) next(id string) int {
	p[id]++
	return p[id]
}

// addSwitches inserts n switch nodes with IDs from idFn(0..n-1), returning
// the IDs in the same order.
func addSwitches(g *topology.Graph, n int, idFn IDFn) ([]string, error) {
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		id := idFn(i)
		if err := g.AddNode(&topology.Node{ID: id, Kind: topology.Switch, DatapathID: uint64(i + 1)}); err != nil {
			return nil, fmt.Errorf("addSwitches: AddNode(%s): %w", id, err)
		}
		ids[i] = id
	}
	return ids, nil
}

// link installs a live bidirectional switch-switch edge between a and b,
// assigning the next free port on each side.
func link(g *topology.Graph, ports portCounter, a, b string) error {
	pa, pb := ports.next(a), ports.next(b)
	if err := g.AddEdge(a, b, pa, pb, true); err != nil {
		return fmt.Errorf("link(%s->%s): %w", a, b, err)
	}
	if err := g.AddEdge(b, a, pb, pa, true); err != nil {
		return fmt.Errorf("link(%s->%s): %w", b, a, err)
	}
	return nil
}

// attachHost adds a host node and a single switch->host edge, carrying the
// switch's next free port and topology.PortLocal on the host side.
func attachHost(g *topology.Graph, ports portCounter, swID, hostID, mac string) error {
	if err := g.AddNode(&topology.Node{ID: hostID, Kind: topology.Host, MAC: mac}); err != nil {
		return fmt.Errorf("attachHost: AddNode(%s): %w", hostID, err)
	}
	p := ports.next(swID)
	if err := g.AddEdge(swID, hostID, p, topology.PortLocal, true); err != nil {
		return fmt.Errorf("attachHost: AddEdge(%s->%s): %w", swID, hostID, err)
	}
	return nil
}

// attachConfiguredHost attaches cfg's WithHost target, if any, using the
// same port bookkeeping the shape constructor used for its own links.
func attachConfiguredHost(g *topology.Graph, ports portCounter, cfg *topoConfig) error {
	if cfg.hostAttach == "" {
		return nil
	}
	if !g.HasNode(cfg.hostAttach) {
		return fmt.Errorf("attachConfiguredHost: switch %q not in fixture: %w", cfg.hostAttach, ErrConstructFailed)
	}
	return attachHost(g, ports, cfg.hostAttach, cfg.hostID, cfg.hostMAC)
}
