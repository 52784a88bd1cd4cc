// Package pathjoin implements the two join strategies Path Computation
// exposes to the Tree Builder: SPT (shortest-path-tree, single-source,
// epsilon-biased toward existing tree edges) and DST (a greedy Steiner-tree
// approximation via multi-source shortest path from every tree node).
//
// Both are lazy-decrease-key Dijkstra over a small induced subgraph, built
// with container/heap.
//
// pathjoin depends only on topology; it deliberately does not import
// package tree, defining its own minimal TreeView interface instead so that
// tree can hold a pathjoin.Strategy without an import cycle.
package pathjoin
