package changestat

import (
	"math"

	"github.com/gilchrisn/ergm-estimnet/internal/twopath"
)

// altValue is the closed-form geometrically-weighted count
// lambda*(1-(1-1/lambda)^t), used when a pair enters an edgewise sum for
// the first time (the triangle terms' own (i,j) pair).
func altValue(lambda float64, t int32) float64 {
	return lambda * (1 - math.Pow(1-1/lambda, float64(t)))
}

// altMarginal is the marginal increment of altValue as t goes to t+1,
// lambda*(1-(1-1/lambda)^(t+1)) - lambda*(1-(1-1/lambda)^t), which
// simplifies to (1-1/lambda)^t. Used when an already-counted term's
// argument increases by one (star degrees, and two-path cross terms).
func altMarginal(lambda float64, t int32) float64 {
	return math.Pow(1-1/lambda, float64(t))
}

// deltaArc is the trivial density/edge-count term: every add contributes 1.
func deltaArc(ctx *Context, i, j int32) float64 {
	return 1
}

// deltaReciprocity: adding i->j creates a mutual dyad iff j->i already
// exists.
func deltaReciprocity(ctx *Context, i, j int32) float64 {
	if ctx.G.IsArc(j, i) {
		return 1
	}
	return 0
}

// deltaAltKStarOut/In: the marginal increment of the alternating k-star
// statistic as node i's out-degree (or j's in-degree) increases by one.
func deltaAltKStarOut(ctx *Context, i, j int32) float64 {
	return altMarginal(ctx.Lambda, int32(ctx.G.OutDegree(i)))
}

func deltaAltKStarIn(ctx *Context, i, j int32) float64 {
	return altMarginal(ctx.Lambda, int32(ctx.G.InDegree(j)))
}

// Triangle terms use the full altValue of the relevant shared-partner
// count at (i,j), since the pair enters the statistic's edgewise sum for
// the first time when the arc is added. The four orientations correspond
// to the four ways a third node k can connect to both i and j, mapped onto
// the three two-path relations: T = In(i,j), C = Mixed(j,i),
// D = Mixed(i,j), U = Out(i,j).
func deltaAltKTriangleT(ctx *Context, i, j int32) float64 {
	return altValue(ctx.Lambda, ctx.twoPathCount(twopath.In, i, j))
}

func deltaAltKTriangleC(ctx *Context, i, j int32) float64 {
	return altValue(ctx.Lambda, ctx.twoPathCount(twopath.Mixed, j, i))
}

func deltaAltKTriangleD(ctx *Context, i, j int32) float64 {
	return altValue(ctx.Lambda, ctx.twoPathCount(twopath.Mixed, i, j))
}

func deltaAltKTriangleU(ctx *Context, i, j int32) float64 {
	return altValue(ctx.Lambda, ctx.twoPathCount(twopath.Out, i, j))
}

// Two-path (non-edgewise) alternating terms sum over every pair whose
// shared-partner count changes because of the new arc, not just (i,j)
// itself; each affected pair contributes its marginal increment. The
// neighbor sets iterated here are exactly the ones twopath.OnArcToggled
// updates, since both describe the same set of cells the new arc touches.
func deltaAltTwoPathMixed(ctx *Context, i, j int32) float64 {
	g := ctx.G
	var delta float64
	for _, a := range g.InNeighbors(i) {
		if a == j {
			continue
		}
		delta += altMarginal(ctx.Lambda, ctx.twoPathCount(twopath.Mixed, a, j))
	}
	for _, b := range g.OutNeighbors(j) {
		if b == i {
			continue
		}
		delta += altMarginal(ctx.Lambda, ctx.twoPathCount(twopath.Mixed, i, b))
	}
	return delta
}

func deltaAltTwoPathIn(ctx *Context, i, j int32) float64 {
	g := ctx.G
	var delta float64
	for _, k := range g.OutNeighbors(i) {
		if k == j {
			continue
		}
		delta += altMarginal(ctx.Lambda, ctx.twoPathCount(twopath.In, j, k))
	}
	return delta
}

func deltaAltTwoPathOut(ctx *Context, i, j int32) float64 {
	g := ctx.G
	var delta float64
	for _, k := range g.InNeighbors(j) {
		if k == i {
			continue
		}
		delta += altMarginal(ctx.Lambda, ctx.twoPathCount(twopath.Out, i, k))
	}
	return delta
}
