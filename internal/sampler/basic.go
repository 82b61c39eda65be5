package sampler

import (
	"github.com/gilchrisn/ergm-estimnet/internal/changestat"
	"github.com/gilchrisn/ergm-estimnet/internal/graph"
	"github.com/gilchrisn/ergm-estimnet/internal/rng"
)

// Basic runs m proposals of the uniform-dyad Metropolis kernel from
// SPEC_FULL.md §4.4. Each proposal draws i != j uniformly over all nodes,
// toggles whichever of add/delete applies to the current state of (i,j),
// and accepts with probability min(1, exp(Delta)).
func Basic(g *graph.Digraph, ctx *changestat.Context, theta []float64, sel changestat.Selection, m int, flags Flags, rs *rng.Stream) (Result, error) {
	if flags.UseConditionalEstimation && g.Zones == nil {
		return Result{}, errNoZones
	}

	out := make([]float64, len(sel))
	res := Result{
		AddChangeStats: make([]float64, len(sel)),
		DelChangeStats: make([]float64, len(sel)),
	}
	accepted := 0

	for step := 0; step < m; step++ {
		i, j := drawDistinct(int32(g.N()), rs)

		if flags.UseConditionalEstimation {
			if g.Zones.Zone[i] >= g.Zones.MaxZone || g.Zones.Zone[j] >= g.Zones.MaxZone {
				continue
			}
			if !g.IsArc(i, j) && !g.Zones.CanAddInnerArc(i, j) {
				continue
			}
		}

		isDelete := g.IsArc(i, j)

		if isDelete && flags.UseConditionalEstimation && !g.Zones.CanDeleteInnerArc(i, j) {
			continue
		}
		if !isDelete && flags.ForbidReciprocity && g.IsArc(j, i) {
			continue
		}

		var pos int32
		if isDelete {
			if flags.UseConditionalEstimation {
				pos = g.Zones.InnerArcPosition(i, j)
			} else {
				pos = g.ArcPosition(i, j)
			}
			if err := removeDyad(g, ctx.TwoPath, i, j, pos, flags.UseConditionalEstimation); err != nil {
				return res, err
			}
		}

		total := changestat.CalcChangeStats(sel, ctx, theta, i, j, isDelete, out)

		accept := acceptProposal(total, rs)

		switch {
		case isDelete && accept:
			// Move stands; restore only if the caller asked us not to
			// actually perform it.
			if !flags.PerformMove {
				if err := insertDyad(g, ctx.TwoPath, i, j, flags.UseConditionalEstimation); err != nil {
					return res, err
				}
			}
			accepted++
			addInPlace(res.DelChangeStats, out)
		case isDelete && !accept:
			if err := insertDyad(g, ctx.TwoPath, i, j, flags.UseConditionalEstimation); err != nil {
				return res, err
			}
		case !isDelete && accept:
			if flags.PerformMove {
				if err := insertDyad(g, ctx.TwoPath, i, j, flags.UseConditionalEstimation); err != nil {
					return res, err
				}
			}
			accepted++
			addInPlace(res.AddChangeStats, out)
		default:
			// !isDelete && !accept: nothing was ever inserted.
		}
	}

	if m > 0 {
		res.AcceptanceRate = float64(accepted) / float64(m)
	}
	return res, nil
}
