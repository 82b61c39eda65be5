package sampler

import (
	"fmt"
	"math"

	"github.com/gilchrisn/ergm-estimnet/internal/changestat"
	"github.com/gilchrisn/ergm-estimnet/internal/graph"
	"github.com/gilchrisn/ergm-estimnet/internal/rng"
)

var errConditionalForbidsReciprocity = fmt.Errorf("sampler: forbidReciprocity is not implemented together with conditional estimation")

// TNT runs m proposals of the tie-no-tie sampler from SPEC_FULL.md §4.4,
// grounded directly on the source's tntSampler: each proposal is an add or
// a delete move with equal probability, independent of current density,
// except that an empty graph always gets an add and a complete graph
// always gets a delete.
// Delete moves draw uniformly from the existing arc list (or, under
// conditional estimation, from the inner-arc list with a retry loop that
// respects PrevWaveDegree); add moves draw uniformly over non-adjacent
// node pairs, retrying until the pair is free (and, under conditional
// estimation, within one zone of each other).
func TNT(g *graph.Digraph, ctx *changestat.Context, theta []float64, sel changestat.Selection, m int, flags Flags, rs *rng.Stream) (Result, error) {
	if flags.UseConditionalEstimation {
		if g.Zones == nil {
			return Result{}, errNoZones
		}
		if flags.ForbidReciprocity {
			return Result{}, errConditionalForbidsReciprocity
		}
	}

	out := make([]float64, len(sel))
	res := Result{
		AddChangeStats: make([]float64, len(sel)),
		DelChangeStats: make([]float64, len(sel)),
	}
	accepted := 0

	for step := 0; step < m; step++ {
		isDelete := rs.Bool()

		// Boundary cases from SPEC_FULL.md §8: an empty graph has no arc
		// to delete, and a complete graph has no free dyad to add, so the
		// coin flip falls back to whichever move is still possible.
		if flags.UseConditionalEstimation {
			if isDelete && g.Zones.NumInnerArcs() == 0 {
				isDelete = false
			} else if !isDelete && !hasFreeInnerDyad(g) {
				isDelete = true
			}
		} else {
			if isDelete && g.M() == 0 {
				isDelete = false
			} else if !isDelete && !hasFreeDyad(g) {
				isDelete = true
			}
		}

		var i, j, pos int32
		if flags.UseConditionalEstimation {
			i, j, pos = proposeConditional(g, isDelete, rs)
		} else {
			i, j, pos = proposeUnconditional(g, isDelete, flags.ForbidReciprocity, rs)
		}

		// The change statistics are computed as if arc i->j were being
		// added, so a delete move removes it first (possibly temporarily)
		// and the aggregator negates the result.
		mBefore := g.M()
		if isDelete {
			if err := removeDyad(g, ctx.TwoPath, i, j, pos, flags.UseConditionalEstimation); err != nil {
				return res, err
			}
		}

		total := changestat.CalcChangeStats(sel, ctx, theta, i, j, isDelete, out)

		if flags.TNTHastingsCorrection && !flags.UseConditionalEstimation {
			total += hastingsCorrection(g, mBefore, isDelete)
		}

		if acceptProposal(total, rs) {
			accepted++
			switch {
			case !isDelete && flags.PerformMove:
				if err := insertDyad(g, ctx.TwoPath, i, j, flags.UseConditionalEstimation); err != nil {
					return res, err
				}
			case isDelete && !flags.PerformMove:
				if err := insertDyad(g, ctx.TwoPath, i, j, flags.UseConditionalEstimation); err != nil {
					return res, err
				}
			}
			if isDelete {
				addInPlace(res.DelChangeStats, out)
			} else {
				addInPlace(res.AddChangeStats, out)
			}
		} else if isDelete {
			if err := insertDyad(g, ctx.TwoPath, i, j, flags.UseConditionalEstimation); err != nil {
				return res, err
			}
		}
	}

	if m > 0 {
		res.AcceptanceRate = float64(accepted) / float64(m)
	}
	return res, nil
}

// hastingsCorrection computes the log proposal-ratio term from
// SPEC_FULL.md §13.3, added to the log acceptance ratio when
// tntHastingsCorrection is enabled: the add and delete branches of TNT
// draw from different-sized candidate sets (free dyads vs. existing
// arcs), and this term corrects for that asymmetry. mBefore is the arc
// count before this proposal's (possibly already-applied) removal.
func hastingsCorrection(g *graph.Digraph, mBefore int, isDelete bool) float64 {
	n := float64(g.N())
	maxArcs := n * (n - 1)
	if isDelete {
		// Proposing this delete drew uniformly from mBefore arcs; the
		// reverse add would draw uniformly from the free dyads after the
		// delete, i.e. maxArcs - (mBefore - 1).
		freeAfter := maxArcs - float64(mBefore-1)
		return math.Log(float64(mBefore)) - math.Log(freeAfter)
	}
	// Proposing this add drew uniformly from the free dyads before the
	// add, i.e. maxArcs - mBefore; the reverse delete would draw
	// uniformly from mBefore+1 arcs.
	freeBefore := maxArcs - float64(mBefore)
	return math.Log(freeBefore) - math.Log(float64(mBefore+1))
}

// proposeUnconditional draws the (i, j, pos) triple for an unconditional
// TNT move. pos is only meaningful for delete moves.
func proposeUnconditional(g *graph.Digraph, isDelete, forbidReciprocity bool, rs *rng.Stream) (i, j, pos int32) {
	if isDelete {
		pos = int32(rs.IntN(g.M()))
		arc := g.Arcs()[pos]
		return arc.Tail, arc.Head, pos
	}
	for {
		i, j = drawDistinct(int32(g.N()), rs)
		if g.IsArc(i, j) {
			continue
		}
		if forbidReciprocity && g.IsArc(j, i) {
			continue
		}
		return i, j, -1
	}
}

// proposeConditional is the conditional-estimation counterpart, grounded
// on tntSampler.c's two do/while loops: delete moves draw from the
// inner-arc list and retry while the candidate is the deeper-zone
// endpoint's last remaining tie to the preceding wave; add moves draw
// from the inner-node list and retry while the pair is already an arc or
// spans more than one zone.
func proposeConditional(g *graph.Digraph, isDelete bool, rs *rng.Stream) (i, j, pos int32) {
	z := g.Zones
	if isDelete {
		for {
			idx := int32(rs.IntN(z.NumInnerArcs()))
			arc := z.AllInnerArcs[idx]
			i, j = arc.Tail, arc.Head
			if z.CanDeleteInnerArc(i, j) {
				return i, j, idx
			}
		}
	}
	for {
		i = z.InnerNodes[rs.IntN(len(z.InnerNodes))]
		for {
			j = z.InnerNodes[rs.IntN(len(z.InnerNodes))]
			if j != i {
				break
			}
		}
		if g.IsArc(i, j) {
			continue
		}
		if !z.CanAddInnerArc(i, j) {
			continue
		}
		return i, j, -1
	}
}
