package pathjoin

import (
	"github.com/mcastlab/resilmcast/topology"
)

// DST is the Steiner-tree-approximating join strategy: multi-source
// unit-weight Dijkstra from every node currently in the tree, targeting v.
// The nearest tree node w it attaches through becomes the entry point; the
// unique root-to-w path read from the tree is prepended to yield the full
// [root, …, w, …, v] path the Tree Builder installs.
type DST struct{}

// Join implements Strategy.
func (DST) Join(net *topology.Graph, exclude EdgeSet, t TreeView, v string) []string {
	if t.HasNode(v) {
		return nil
	}

	nodes := t.Nodes()
	if len(nodes) == 0 {
		return nil
	}

	weight := func(from, to string) (float64, bool) {
		if !admissible(net, t, exclude, from, to) {
			return 0, false
		}
		return 1.0, true
	}

	prev, dist := runDijkstra(net, nodes, weight)
	if _, reached := dist[v]; !reached {
		return nil
	}

	sources := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		sources[n] = struct{}{}
	}

	fromEntry := reconstructPath(prev, sources, v)
	if len(fromEntry) == 0 {
		return nil
	}
	entry := fromEntry[0]

	// PathFromRoot always includes entry itself as its last element, even
	// when entry is the root (a single-element [root]); fromEntry[1:]
	// drops the duplicate.
	rootToEntry := t.PathFromRoot(entry)
	if len(rootToEntry) == 0 {
		return nil
	}

	full := make([]string, 0, len(rootToEntry)+len(fromEntry)-1)
	full = append(full, rootToEntry...)
	full = append(full, fromEntry[1:]...)
	return full
}
