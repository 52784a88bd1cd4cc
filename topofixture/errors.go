// errors.go — sentinel errors for the topofixture package.
//
// Only sentinel variables are exposed; callers branch with errors.Is, never
// by matching message strings.
package topofixture

import (
	"errors"
	"fmt"
)

// ErrTooFewVertices indicates a size parameter (n, d, ...) is smaller than
// the constructor's minimum.
var ErrTooFewVertices = errors.New("topofixture: parameter too small")

// ErrInvalidProbability indicates a probability value outside [0,1].
var ErrInvalidProbability = errors.New("topofixture: probability out of range")

// ErrNeedRandSource indicates a stochastic constructor requires a non-nil
// *rand.Rand in the resolved topoConfig (set via WithSeed/WithRand).
var ErrNeedRandSource = errors.New("topofixture: rng is required")

// ErrConstructFailed indicates the builder exhausted its retry budget (or
// was called with a nil constructor / an unattachable host) and could not
// produce a valid fixture.
var ErrConstructFailed = errors.New("topofixture: construction failed")

// builderErrorf wraps an inner error message with the given method context,
// producing "<Method>: <message>".
func builderErrorf(method, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s", method, fmt.Sprintf(format, args...))
}
