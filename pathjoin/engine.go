package pathjoin

import (
	"container/heap"

	"github.com/mcastlab/resilmcast/topology"
)

// weightFunc returns the edge weight of (from,to) and whether the edge is
// admissible at all. An inadmissible edge is never relaxed.
type weightFunc func(from, to string) (w float64, ok bool)

// admissible implements the Path Strategy contract's edge-admissibility
// rule: live, not excluded, and either already in T or the endpoint is not
// yet in T (preserving the tree property).
func admissible(net *topology.Graph, t TreeView, exclude EdgeSet, from, to string) bool {
	if exclude.Contains(from, to) {
		return false
	}
	e, err := net.Edge(from, to)
	if err != nil || !e.Live {
		return false
	}
	if t.HasEdge(from, to) {
		return true
	}
	return !t.HasNode(to)
}

// runDijkstra runs a (possibly multi-source) lazy-decrease-key Dijkstra over
// net, returning distance and predecessor maps. sources are seeded at
// distance 0 simultaneously: the classic multi-source construction DST
// relies on, and a one-element degenerate case for SPT.
func runDijkstra(net *topology.Graph, sources []string, weight weightFunc) (prev map[string]string, dist map[string]float64) {
	dist = make(map[string]float64)
	prev = make(map[string]string)
	visited := make(map[string]bool)

	pq := make(nodePQ, 0, len(sources))
	heap.Init(&pq)
	for _, s := range sources {
		dist[s] = 0
		prev[s] = ""
		heap.Push(&pq, &nodeItem{id: s, dist: 0, source: s})
	}

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*nodeItem)
		u := item.id
		if visited[u] {
			continue
		}
		if d, ok := dist[u]; ok && item.dist > d {
			continue
		}
		visited[u] = true

		for _, e := range net.Edges(u) {
			v := e.To
			if visited[v] {
				continue
			}
			w, ok := weight(u, v)
			if !ok {
				continue
			}
			newDist := item.dist + w
			if cur, seen := dist[v]; seen && newDist >= cur {
				continue
			}
			dist[v] = newDist
			prev[v] = u
			heap.Push(&pq, &nodeItem{id: v, dist: newDist, source: item.source})
		}
	}

	return prev, dist
}

// reconstructPath walks prev from target back to whichever source reached
// it, returning the path in source→…→target order. Returns nil if target
// was never reached.
func reconstructPath(prev map[string]string, sources map[string]struct{}, target string) []string {
	if _, ok := prev[target]; !ok {
		if _, isSource := sources[target]; !isSource {
			return nil
		}
	}
	var rev []string
	cur := target
	for {
		rev = append(rev, cur)
		if _, isSource := sources[cur]; isSource {
			break
		}
		p, ok := prev[cur]
		if !ok || p == "" {
			if _, isSource := sources[cur]; !isSource {
				return nil
			}
			break
		}
		cur = p
	}
	path := make([]string, len(rev))
	for i, id := range rev {
		path[len(rev)-1-i] = id
	}
	return path
}
