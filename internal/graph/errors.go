package graph

import "errors"

// Sentinel error kinds, per SPEC_FULL.md §10.3 / §7. Callers wrap one of
// these with fmt.Errorf("...: %w", ErrX) so errors.Is still resolves to the
// kind while the message carries the offending detail.
var (
	ErrInvariant = errors.New("graph: invariant violation")
	ErrInput     = errors.New("graph: invalid input")
)
