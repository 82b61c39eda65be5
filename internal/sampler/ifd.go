package sampler

import (
	"math"

	"github.com/gilchrisn/ergm-estimnet/internal/changestat"
	"github.com/gilchrisn/ergm-estimnet/internal/graph"
	"github.com/gilchrisn/ergm-estimnet/internal/rng"
)

// IFDState holds the running auxiliary log-density parameter psi
// (SPEC_FULL.md §4.4). The caller owns it across successive IFD calls
// within one EE step so that psi's drift persists between proposal
// batches, the way theta does.
type IFDState struct {
	Psi float64
}

// IFD runs m proposals of the improved-fixed-density sampler. Unlike TNT's
// fixed 50/50 add/delete split, the add/delete choice is drawn from a
// logistic function of psi, and psi is nudged by ifdK after every
// proposal in the direction that counteracts the realized move - pushing
// the running add/delete balance back toward the density implied by the
// observed graph (SPEC_FULL.md §4.4, §13.4).
func IFD(g *graph.Digraph, ctx *changestat.Context, theta []float64, sel changestat.Selection, m int, ifdK float64, state *IFDState, flags Flags, rs *rng.Stream) (Result, error) {
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
		pDelete := 1.0 / (1.0 + math.Exp(-state.Psi))
		isDelete := rs.Float64() < pDelete

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

		if isDelete {
			if err := removeDyad(g, ctx.TwoPath, i, j, pos, flags.UseConditionalEstimation); err != nil {
				return res, err
			}
			state.Psi -= ifdK
		} else {
			state.Psi += ifdK
		}

		total := changestat.CalcChangeStats(sel, ctx, theta, i, j, isDelete, out)

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
