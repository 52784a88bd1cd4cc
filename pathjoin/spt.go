package pathjoin

import (
	"github.com/mcastlab/resilmcast/topology"
)

// SPT is the shortest-path-tree join strategy: single-source Dijkstra from
// the tree's root, with edges already in the tree weighted 1.0-epsilon so
// the path rides the existing tree wherever that does not lengthen it.
// epsilon is 1/(|E(T)|+1), small enough that it never outweighs a single
// hop over a non-tree edge.
type SPT struct{}

// Join implements Strategy.
func (SPT) Join(net *topology.Graph, exclude EdgeSet, t TreeView, v string) []string {
	if t.HasNode(v) {
		return nil
	}

	epsilon := 1.0 / float64(t.EdgeCount()+1)
	weight := func(from, to string) (float64, bool) {
		if !admissible(net, t, exclude, from, to) {
			return 0, false
		}
		if t.HasEdge(from, to) {
			return 1.0 - epsilon, true
		}
		return 1.0, true
	}

	root := t.Root()
	prev, dist := runDijkstra(net, []string{root}, weight)
	if _, reached := dist[v]; !reached {
		return nil
	}

	sources := map[string]struct{}{root: {}}
	return reconstructPath(prev, sources, v)
}
