// Package topofixture defines shared constants used by topology builders,
// ensuring consistent defaults and validation across all constructors.
package topofixture

// Canonical constructor names, used to prefix errors with the constructor
// name for context.
const (
	MethodPath          = "Path"
	MethodCycle         = "Cycle"
	MethodStar          = "Star"
	MethodComplete      = "Complete"
	MethodRandomSparse  = "RandomSparse"
	MethodRandomRegular = "RandomRegular"
)

// CenterVertexID is the switch ID of a Star fixture's hub.
const CenterVertexID = "Center"

// Minimum node counts per topology shape.
const (
	// MinPathNodes is the smallest meaningful size for a simple path.
	MinPathNodes = 2
	// MinCycleNodes is the smallest size that forms a valid ring.
	MinCycleNodes = 3
	// MinStarNodes is one hub plus at least one leaf.
	MinStarNodes = 2
	// MinCompleteNodes is the smallest size for K_n.
	MinCompleteNodes = 1
	// MinRandomRegularNodes mirrors MinCompleteNodes; kept distinct for
	// independent tuning if the two diverge later.
	MinRandomRegularNodes = 1
)

// Probability bounds for RandomSparse.
const (
	MinProbability = 0.0
	MaxProbability = 1.0
)

// maxStubMatchingAttempts bounds RandomRegular's reshuffle retries.
const maxStubMatchingAttempts = 100
