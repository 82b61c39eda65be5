package graph

import "fmt"

// ZoneInfo is the optional snowball-wave metadata described in
// SPEC_FULL.md §3. It is built once at load time and never mutated
// thereafter except through InsertInnerArc/RemoveInnerArc, which keep
// AllInnerArcs and PrevWaveDegree in step with the underlying Digraph.
type ZoneInfo struct {
	Zone    []int32 // zone[i], for every node
	MaxZone int32

	InnerNodes []int32 // nodes with zone < MaxZone

	AllInnerArcs []Arc // arcs with both endpoints at zone < MaxZone
	arcIndex     map[uint64]int32

	// PrevWaveDegree[v] counts neighbors of v (either direction) whose
	// zone is exactly one less than v's own zone.
	PrevWaveDegree []int32
}

// NewZoneInfo derives InnerNodes from a zone assignment. AllInnerArcs and
// PrevWaveDegree are populated by the caller as arcs are loaded, via
// InsertInnerArc, so the two stay consistent with the digraph from the
// start rather than being rebuilt separately.
func NewZoneInfo(zone []int32, maxZone int32) *ZoneInfo {
	z := &ZoneInfo{
		Zone:           zone,
		MaxZone:        maxZone,
		arcIndex:       make(map[uint64]int32),
		PrevWaveDegree: make([]int32, len(zone)),
	}
	for i, zi := range zone {
		if zi < maxZone {
			z.InnerNodes = append(z.InnerNodes, int32(i))
		}
	}
	return z
}

// BuildZoneInfo derives a ZoneInfo for a graph whose arcs are already
// loaded, scanning g.Arcs() once to populate AllInnerArcs, arcIndex, and
// PrevWaveDegree together so later InsertInnerArc/RemoveInnerArc calls
// stay consistent. Use this instead of NewZoneInfo when attaching zones
// to a graph built from an existing arc list (SPEC_FULL.md §6's zoneFile
// loading path); NewZoneInfo alone only derives InnerNodes.
func BuildZoneInfo(g *Digraph, zone []int32, maxZone int32) *ZoneInfo {
	z := NewZoneInfo(zone, maxZone)
	for _, arc := range g.Arcs() {
		if zone[arc.Tail] >= maxZone || zone[arc.Head] >= maxZone {
			continue
		}
		pos := int32(len(z.AllInnerArcs))
		z.AllInnerArcs = append(z.AllInnerArcs, arc)
		z.arcIndex[pack(arc.Tail, arc.Head)] = pos
		if zone[arc.Head] == zone[arc.Tail]+1 {
			z.PrevWaveDegree[arc.Head]++
		}
		if zone[arc.Tail] == zone[arc.Head]+1 {
			z.PrevWaveDegree[arc.Tail]++
		}
	}
	return z
}

// NumInnerNodes and NumInnerArcs mirror the source's num_inner_nodes /
// num_inner_arcs counters.
func (z *ZoneInfo) NumInnerNodes() int { return len(z.InnerNodes) }
func (z *ZoneInfo) NumInnerArcs() int  { return len(z.AllInnerArcs) }

// InsertInnerArc additionally maintains AllInnerArcs and PrevWaveDegree,
// per SPEC_FULL.md §4.1's parallel insert_inner_arc. Call only for arcs
// with both endpoints inner.
func (g *Digraph) InsertInnerArc(i, j int32) error {
	if err := g.InsertArc(i, j); err != nil {
		return err
	}
	z := g.Zones
	pos := int32(len(z.AllInnerArcs))
	z.AllInnerArcs = append(z.AllInnerArcs, Arc{Tail: i, Head: j})
	z.arcIndex[pack(i, j)] = pos
	if z.Zone[j] == z.Zone[i]+1 {
		z.PrevWaveDegree[j]++
	}
	if z.Zone[i] == z.Zone[j]+1 {
		z.PrevWaveDegree[i]++
	}
	return nil
}

// RemoveInnerArc is the inner-arc counterpart of RemoveArc; pos indexes
// AllInnerArcs, not the full Arcs() list.
func (g *Digraph) RemoveInnerArc(i, j int32, pos int32) error {
	z := g.Zones
	got, ok := z.arcIndex[pack(i, j)]
	if !ok || got != pos {
		return fmt.Errorf("graph: stale inner-arc position for %d->%d: %w", i, j, ErrInvariant)
	}

	fullPos := g.arcPosition(i, j)
	if err := g.RemoveArc(i, j, fullPos); err != nil {
		return err
	}

	last := int32(len(z.AllInnerArcs) - 1)
	if pos != last {
		moved := z.AllInnerArcs[last]
		z.AllInnerArcs[pos] = moved
		z.arcIndex[pack(moved.Tail, moved.Head)] = pos
	}
	z.AllInnerArcs = z.AllInnerArcs[:last]
	delete(z.arcIndex, pack(i, j))

	if z.Zone[j] == z.Zone[i]+1 {
		z.PrevWaveDegree[j]--
	}
	if z.Zone[i] == z.Zone[j]+1 {
		z.PrevWaveDegree[i]--
	}
	return nil
}

// CanDeleteInnerArc reports whether deleting i->j would be forbidden
// because it is the last remaining tie connecting the deeper-zone endpoint
// to the preceding wave (SPEC_FULL.md §12.5: the boundary is
// PrevWaveDegree == 1, checked on whichever endpoint is in the deeper
// zone).
func (z *ZoneInfo) CanDeleteInnerArc(i, j int32) bool {
	if z.Zone[i] > z.Zone[j] && z.PrevWaveDegree[i] == 1 {
		return false
	}
	if z.Zone[j] > z.Zone[i] && z.PrevWaveDegree[j] == 1 {
		return false
	}
	return true
}

// InnerArcPosition returns i->j's position in AllInnerArcs, or -1.
func (z *ZoneInfo) InnerArcPosition(i, j int32) int32 {
	if pos, ok := z.arcIndex[pack(i, j)]; ok {
		return pos
	}
	return -1
}

// CanAddInnerArc reports whether an add move between two inner nodes
// satisfies the |zone(i)-zone(j)| <= 1 adjacency constraint.
func (z *ZoneInfo) CanAddInnerArc(i, j int32) bool {
	d := z.Zone[i] - z.Zone[j]
	return d >= -1 && d <= 1
}
