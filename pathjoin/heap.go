package pathjoin

// nodeItem represents a node and its current distance from the source(s).
// Stored in the priority queue, ordered by increasing distance.
type nodeItem struct {
	id     string
	dist   float64
	source string // the source this distance currently traces back to
}

// nodePQ is a min-heap of *nodeItem ordered by dist ascending. relax pushes
// duplicate entries onto the heap rather than decreasing a key in place
// ("lazy decrease-key"); stale entries are skipped at pop time via a
// visited set.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
