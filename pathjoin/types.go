package pathjoin

import (
	"errors"

	"github.com/mcastlab/resilmcast/topology"
)

// ErrNoPath is returned by nothing directly — strategies signal "no
// admissible path" by returning an empty slice, not an error. No package in
// this module uses it; the Tree Builder reports an empty result with its own
// tree.ErrNoPath.
var ErrNoPath = errors.New("pathjoin: no admissible path")

// TreeView is the minimal read-only view a join strategy needs of a tree.
// Package tree's *Tree satisfies this structurally; pathjoin never imports
// package tree.
type TreeView interface {
	// Root returns the tree's root node ID.
	Root() string

	// HasNode reports whether id is a node of the tree.
	HasNode(id string) bool

	// HasEdge reports whether (from,to) is an edge of the tree.
	HasEdge(from, to string) bool

	// EdgeCount returns the number of edges currently in the tree, used to
	// size SPT's epsilon.
	EdgeCount() int

	// Nodes returns every node ID currently in the tree.
	Nodes() []string

	// PathFromRoot returns the unique root-to-node path [root, …, node],
	// or nil if node is not in the tree. Used by DST to prepend the
	// root-to-entry-point segment ahead of the multi-source shortest path.
	PathFromRoot(node string) []string
}

// EdgeSet is an exclusion set of directed (from,to) pairs. Contains checks
// only the given direction; WithUndirected records both directions, per the
// Join algorithm's L = downSet ∪ {(x,y),(y,x)} construction.
type EdgeSet map[edgeKey]struct{}

type edgeKey struct{ From, To string }

// NewEdgeSet builds an EdgeSet from zero or more directed pairs.
func NewEdgeSet(pairs ...[2]string) EdgeSet {
	s := make(EdgeSet, len(pairs))
	for _, p := range pairs {
		s[edgeKey{p[0], p[1]}] = struct{}{}
	}
	return s
}

// Contains reports whether (from,to) is excluded.
func (s EdgeSet) Contains(from, to string) bool {
	_, ok := s[edgeKey{from, to}]
	return ok
}

// WithUndirected returns a new EdgeSet equal to s plus both (from,to) and
// (to,from) — the "treated as down, both directions" construction the Join
// algorithm applies at each recursion level.
func (s EdgeSet) WithUndirected(from, to string) EdgeSet {
	out := make(EdgeSet, len(s)+2)
	for k := range s {
		out[k] = struct{}{}
	}
	out[edgeKey{from, to}] = struct{}{}
	out[edgeKey{to, from}] = struct{}{}
	return out
}

// Len returns the number of directed pairs recorded (counting both
// directions of an undirected exclusion separately, matching the Join
// algorithm's |L|/2 link count convention when divided by two by the
// caller).
func (s EdgeSet) Len() int { return len(s) }

// Strategy computes how a new destination v attaches to an existing tree.
type Strategy interface {
	// Join returns a path [root, …, w, …, v] that starts at t's root,
	// follows t's own edges as far as the entry node w, and continues
	// outside t to v; or an empty slice if v is already in t or no
	// admissible path exists.
	Join(net *topology.Graph, exclude EdgeSet, t TreeView, v string) []string
}
