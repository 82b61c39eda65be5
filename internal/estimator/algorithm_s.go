package estimator

import (
	"math"

	"github.com/rs/zerolog/log"

	"github.com/gilchrisn/ergm-estimnet/internal/changestat"
	"github.com/gilchrisn/ergm-estimnet/internal/graph"
	"github.com/gilchrisn/ergm-estimnet/internal/rng"
	"github.com/gilchrisn/ergm-estimnet/internal/sampler"
)

// emaDecay controls how quickly D tracks recent |dzA| magnitudes. Not
// exposed in config; SPEC_FULL.md describes D only as "estimated from
// recent |dzA| magnitudes," not the exact update rule, so an exponential
// moving average is the simplest estimator consistent with that.
const emaDecay = 0.1

// ScaleRun is the result of Algorithm S: D is the per-component scale fed
// into Algorithm EE's Borisenko update, and Theta is where theta ended up
// after the scale-finding walk (Algorithm EE continues from here).
type ScaleRun struct {
	D     []float64
	Theta []float64
}

// RunAlgorithmS executes Algorithm S (SPEC_FULL.md §4.5): it runs the
// configured sampler for hp.SamplerSteps proposals per outer iteration,
// for hp.SSteps outer iterations scaled by densityFactor(g0), nudging
// theta by a fixed-magnitude, per-component-rescaled step in the
// direction that opposes the observed drift.
func RunAlgorithmS(g *graph.Digraph, ctx *changestat.Context, theta []float64, sel changestat.Selection, hp *Hyperparameters, rs *rng.Stream) (ScaleRun, error) {
	p := len(sel)
	d := make([]float64, p)
	for k := range d {
		d[k] = 1 // start with unit scale until the first |dzA| sample arrives
	}

	var ifdState *sampler.IFDState
	if hp.Sampler == IFD {
		ifdState = &sampler.IFDState{}
	}

	logger := log.With().Str("component", "estimator.algorithm_s").Logger()
	outer := int(float64(hp.SSteps) * densityFactor(g))
	for s := 0; s < outer; s++ {
		res, err := runProposals(hp.Sampler, g, ctx, theta, sel, hp.SamplerSteps, hp, ifdState, rs)
		if err != nil {
			return ScaleRun{}, err
		}
		dz := netChange(res)

		for k := range theta {
			d[k] = emaDecay*math.Abs(dz[k]) + (1-emaDecay)*d[k]
			theta[k] -= hp.ACA_S * d[k] * sign(dz[k])
		}
		if err := checkFinite(theta); err != nil {
			return ScaleRun{}, err
		}
		logger.Debug().Int("outer", s).Float64("acceptance", res.AcceptanceRate).Msg("scale step")
	}

	return ScaleRun{D: d, Theta: append([]float64{}, theta...)}, nil
}
