// Package errs holds the sentinel errors shared by the ambient stack
// (config, I/O, numerical conditions) from SPEC_FULL.md §10.3/§7.
// Domain-specific sentinels (graph invariants, bad graph input) live
// next to the code that raises them instead, per graph.ErrInvariant and
// graph.ErrInput.
package errs

import "errors"

var (
	// ErrConfig covers SPEC_FULL.md §7's configuration error kind:
	// unknown key, missing required key, contradictory sampler flags,
	// unknown statistic name.
	ErrConfig = errors.New("ergm: configuration error")

	// ErrIO covers output failures (kind 5 in SPEC_FULL.md §7).
	ErrIO = errors.New("ergm: I/O error")

	// ErrNumerical covers non-finite conditions other than the
	// documented accept/reject edge cases (kind 4 in SPEC_FULL.md §7).
	ErrNumerical = errors.New("ergm: numerical error")
)
