// Package blockerr holds the sentinel error values shared across the
// catalog expander, the single- and multi-block optimizers, and the CLI.
package blockerr

import "errors"

var (
	// ErrInvalidCatalog is returned when a catalog definition is malformed:
	// negative sizes or incomes, or an unparsable storage shape.
	ErrInvalidCatalog = errors.New("invalid catalog")

	// ErrInvalidArgument is returned for caller errors that do not depend on
	// the catalog: bad option values, N < 1, and the like.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoSolution is returned when the beam search never reached a
	// terminal state satisfying the mandatory-mask requirement, or when a
	// multi-block subcall failed.
	ErrNoSolution = errors.New("no solution")
)
