// Package graph holds the directed-graph representation described in
// SPEC_FULL.md §3/§4.1: node out/in adjacency, a flat arc list with O(1)
// swap-remove, and a reverse index from (tail, head) to arc-list position.
// The change-statistic library only ever borrows a Digraph immutably;
// sampler kernels are the sole mutators (SPEC_FULL.md §4.1).
package graph

import "fmt"

// DebugChecks gates the expensive O(M) consistency checks in InsertArc and
// RemoveArc, set from the CLI's -debug flag rather than a Go build tag
// (SPEC_FULL.md §10.3) so the same binary serves both development and
// release runs.
var DebugChecks bool

// Arc is a single directed edge, tail -> head.
type Arc struct {
	Tail int32
	Head int32
}

// Digraph is the mutable directed-graph store. N is fixed at construction;
// M (len(Arcs)) changes as arcs are toggled.
type Digraph struct {
	n    int32
	out  [][]int32 // out[i] = heads of arcs i -> *
	in   [][]int32 // in[j]  = tails of arcs * -> j
	arcs []Arc     // flat arc list, arcs[pos] valid for pos in [0, len(arcs))

	// index maps a packed (tail,head) pair to its position in arcs.
	// Presence of the key is the authoritative is-arc test.
	index map[uint64]int32

	Attrs *Attributes // nil if no attribute tables were loaded
	Zones *ZoneInfo   // nil unless conditional estimation is in effect
}

func pack(i, j int32) uint64 {
	return uint64(uint32(i))<<32 | uint64(uint32(j))
}

// New creates an empty digraph on n nodes (no self-loops, no arcs).
func New(n int) *Digraph {
	g := &Digraph{
		n:     int32(n),
		out:   make([][]int32, n),
		in:    make([][]int32, n),
		arcs:  make([]Arc, 0),
		index: make(map[uint64]int32),
	}
	return g
}

// N returns the fixed node count.
func (g *Digraph) N() int { return int(g.n) }

// M returns the current arc count.
func (g *Digraph) M() int { return len(g.arcs) }

// IsArc reports whether the arc i->j is present. Expected O(1).
func (g *Digraph) IsArc(i, j int32) bool {
	_, ok := g.index[pack(i, j)]
	return ok
}

// arcPosition returns the current flat-list position of arc i->j, or -1.
func (g *Digraph) arcPosition(i, j int32) int32 {
	if pos, ok := g.index[pack(i, j)]; ok {
		return pos
	}
	return -1
}

// ArcPosition is the exported counterpart of arcPosition, used by callers
// (samplers, tests) that need the flat-list position to pass to RemoveArc.
func (g *Digraph) ArcPosition(i, j int32) int32 { return g.arcPosition(i, j) }

// OutDegree and InDegree report adjacency-list lengths.
func (g *Digraph) OutDegree(i int32) int { return len(g.out[i]) }
func (g *Digraph) InDegree(i int32) int  { return len(g.in[i]) }

// OutNeighbors and InNeighbors expose the raw adjacency slices. Callers must
// not mutate the returned slice.
func (g *Digraph) OutNeighbors(i int32) []int32 { return g.out[i] }
func (g *Digraph) InNeighbors(i int32) []int32  { return g.in[i] }

// Arcs returns the flat arc list in current (unordered, toggle-dependent)
// order. Callers must not mutate the returned slice.
func (g *Digraph) Arcs() []Arc { return g.arcs }

// InsertArc requires ¬IsArc(i,j) and i != j; see SPEC_FULL.md §4.1.
func (g *Digraph) InsertArc(i, j int32) error {
	if i == j {
		return fmt.Errorf("graph: self-loop %d->%d rejected: %w", i, j, ErrInvariant)
	}
	if g.IsArc(i, j) {
		return fmt.Errorf("graph: arc %d->%d already present: %w", i, j, ErrInvariant)
	}
	pos := int32(len(g.arcs))
	g.arcs = append(g.arcs, Arc{Tail: i, Head: j})
	g.index[pack(i, j)] = pos
	g.out[i] = append(g.out[i], j)
	g.in[j] = append(g.in[j], i)
	if DebugChecks {
		return g.checkConsistency()
	}
	return nil
}

// RemoveArc requires IsArc(i,j); pos is the arc's current flat-list
// position, normally obtained from a preceding uniform draw over Arcs().
// Removal is O(1) via swap-with-last.
func (g *Digraph) RemoveArc(i, j int32, pos int32) error {
	if got := g.arcPosition(i, j); got < 0 {
		return fmt.Errorf("graph: arc %d->%d not present: %w", i, j, ErrInvariant)
	} else if got != pos {
		return fmt.Errorf("graph: stale position %d for arc %d->%d (actual %d): %w", pos, i, j, got, ErrInvariant)
	}

	last := int32(len(g.arcs) - 1)
	if pos != last {
		moved := g.arcs[last]
		g.arcs[pos] = moved
		g.index[pack(moved.Tail, moved.Head)] = pos
	}
	g.arcs = g.arcs[:last]
	delete(g.index, pack(i, j))

	removeFromAdj(&g.out[i], j)
	removeFromAdj(&g.in[j], i)
	if DebugChecks {
		return g.checkConsistency()
	}
	return nil
}

// checkConsistency re-derives the arc count from the adjacency lists and
// compares it against the flat arc list and the (tail,head) index, each in
// O(M). Only run when DebugChecks is set.
func (g *Digraph) checkConsistency() error {
	if len(g.index) != len(g.arcs) {
		return fmt.Errorf("graph: index has %d entries, arc list has %d: %w", len(g.index), len(g.arcs), ErrInvariant)
	}
	fromOut := 0
	for i := range g.out {
		fromOut += len(g.out[i])
	}
	if fromOut != len(g.arcs) {
		return fmt.Errorf("graph: out-adjacency totals %d arcs, arc list has %d: %w", fromOut, len(g.arcs), ErrInvariant)
	}
	for _, arc := range g.arcs {
		if pos, ok := g.index[pack(arc.Tail, arc.Head)]; !ok || g.arcs[pos] != arc {
			return fmt.Errorf("graph: arc %d->%d missing or misplaced in index: %w", arc.Tail, arc.Head, ErrInvariant)
		}
	}
	return nil
}

// removeFromAdj deletes the first occurrence of v from *list by
// swap-with-last, mirroring the O(1) removal discipline used on the flat
// arc list.
func removeFromAdj(list *[]int32, v int32) {
	s := *list
	for idx, x := range s {
		if x == v {
			last := len(s) - 1
			s[idx] = s[last]
			*list = s[:last]
			return
		}
	}
}
