// Package topofixture — id_fn.go provides deterministic vertex ID schemes
// for topology constructors.
package topofixture

import (
	"fmt"
	"strconv"
)

// IDFn generates a switch ID from its zero-based index. It must be pure and
// deterministic: given the same idx, it always returns the same string.
type IDFn func(idx int) string

// DefaultIDFn returns the decimal string of idx, e.g. 0->"0", 42->"42".
func DefaultIDFn(idx int) string {
	return strconv.Itoa(idx)
}

// SymbolNumberIDFn returns an IDFn producing prefix+decimal index, e.g.
// SymbolNumberIDFn("s") -> "s0", "s1", ....
func SymbolNumberIDFn(prefix string) IDFn {
	return func(idx int) string {
		if idx < 0 {
			panic(fmt.Sprintf("SymbolNumberIDFn: idx must be >= 0, got %d", idx))
		}
		return prefix + strconv.Itoa(idx)
	}
}

// WithSymbNumb sets the ID scheme to SymbolNumberIDFn(prefix).
func WithSymbNumb(prefix string) BuilderOption {
	return WithIDScheme(SymbolNumberIDFn(prefix))
}
