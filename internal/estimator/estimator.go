// Package estimator implements the two-stage Equilibrium Expectation (EE)
// stochastic approximation from SPEC_FULL.md §4.5: Algorithm S finds a
// per-component step scale D, Algorithm EE then refines theta using D and
// the Borisenko variance control.
package estimator

import (
	"fmt"
	"math"

	"github.com/gilchrisn/ergm-estimnet/internal/changestat"
	"github.com/gilchrisn/ergm-estimnet/internal/graph"
	"github.com/gilchrisn/ergm-estimnet/internal/rng"
	"github.com/gilchrisn/ergm-estimnet/internal/sampler"
)

// SamplerKind selects which proposal kernel the estimator and simulation
// driver run underneath (SPEC_FULL.md §6: useIFDsampler/useTNTsampler).
type SamplerKind int

const (
	Basic SamplerKind = iota
	TNT
	IFD
)

// Hyperparameters bundles the knobs from SPEC_FULL.md §4.5/§6. CompC,
// ACA_S and ACA_EE are step-size and variance-control multipliers; the
// *Steps fields are iteration counts at each level of the nested loop.
type Hyperparameters struct {
	Sampler SamplerKind
	Flags   sampler.Flags

	ACA_S  float64
	ACA_EE float64
	CompC  float64
	IfdK   float64

	SamplerSteps int
	SSteps       int
	EESteps      int
	EEInnerSteps int
}

// ErrNonFiniteTheta reports the fatal condition from SPEC_FULL.md §4.6:
// "non-finite theta components are fatal."
var ErrNonFiniteTheta = fmt.Errorf("estimator: non-finite theta component")

// runProposals dispatches one batch of m proposals to the configured
// sampler kernel, sharing the single IFD psi state across calls within a
// run.
func runProposals(kind SamplerKind, g *graph.Digraph, ctx *changestat.Context, theta []float64, sel changestat.Selection, m int, hp *Hyperparameters, ifdState *sampler.IFDState, rs *rng.Stream) (sampler.Result, error) {
	switch kind {
	case TNT:
		return sampler.TNT(g, ctx, theta, sel, m, hp.Flags, rs)
	case IFD:
		return sampler.IFD(g, ctx, theta, sel, m, hp.IfdK, ifdState, hp.Flags, rs)
	default:
		return sampler.Basic(g, ctx, theta, sel, m, hp.Flags, rs)
	}
}

// netChange returns add+del change stats, the signed dzA vector from
// SPEC_FULL.md §4.5: "dzA = (add_change_stats + del_change_stats) ...
// equals s(G_current) - s(G_at_start_of_step)".
func netChange(res sampler.Result) []float64 {
	dz := make([]float64, len(res.AddChangeStats))
	for k := range dz {
		dz[k] = res.AddChangeStats[k] + res.DelChangeStats[k]
	}
	return dz
}

func checkFinite(theta []float64) error {
	for _, v := range theta {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNonFiniteTheta
		}
	}
	return nil
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// densityFactor is Algorithm S's "density-adjustment factor (monotone in
// observed density; used to give sparser networks proportionally more
// work)": sparser graphs get more outer iterations, scaled by the
// reciprocal of density and clamped so a near-empty graph doesn't demand
// an unbounded multiplier.
func densityFactor(g *graph.Digraph) float64 {
	n := float64(g.N())
	maxArcs := n * (n - 1)
	if maxArcs <= 0 {
		return 1
	}
	density := float64(g.M()) / maxArcs
	if density <= 0 {
		density = 1 / maxArcs // treat an empty graph as "one possible arc" dense
	}
	factor := 1 / density
	const maxFactor = 50
	if factor > maxFactor {
		factor = maxFactor
	}
	if factor < 1 {
		factor = 1
	}
	return factor
}
