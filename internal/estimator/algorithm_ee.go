package estimator

import (
	"math"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"

	"github.com/gilchrisn/ergm-estimnet/internal/changestat"
	"github.com/gilchrisn/ergm-estimnet/internal/graph"
	"github.com/gilchrisn/ergm-estimnet/internal/rng"
	"github.com/gilchrisn/ergm-estimnet/internal/sampler"
)

// varianceWindow is how many recent outer-iteration theta values feed the
// Borisenko coefficient-of-variation check. SPEC_FULL.md §4.5 specifies
// the check itself but not the window length; a fixed trailing window is
// the natural way to keep "recent" from meaning "the entire trajectory."
const varianceWindow = 20

// Trajectory is the full output of Algorithm EE: one theta row and one
// dzA row per outer iteration, ready for the thetaFilePrefix/
// dzAFilePrefix writer (SPEC_FULL.md §6).
type Trajectory struct {
	Theta [][]float64
	DzA   [][]float64
	// Psi is the IFD sampler's running logit-of-delete-probability
	// parameter at each outer iteration (SPEC_FULL.md §13.4), nil unless
	// hp.Sampler == IFD.
	Psi []float64
}

// RunAlgorithmEE executes Algorithm EE (SPEC_FULL.md §4.5) starting from
// theta (typically Algorithm S's output) and scale D. Each outer
// iteration accumulates dzA over hp.EEInnerSteps sampler batches, applies
// the Borisenko update theta_k -= ACA_EE * D_k * dzA_k, and shrinks that
// update componentwise whenever the trailing coefficient of variation of
// theta_k exceeds hp.CompC.
func RunAlgorithmEE(g *graph.Digraph, ctx *changestat.Context, theta []float64, d []float64, sel changestat.Selection, hp *Hyperparameters, rs *rng.Stream) (Trajectory, error) {
	p := len(sel)
	traj := Trajectory{}

	history := make([][]float64, 0, varianceWindow)

	var ifdState *sampler.IFDState
	if hp.Sampler == IFD {
		ifdState = &sampler.IFDState{}
	}

	logger := log.With().Str("component", "estimator.algorithm_ee").Logger()
	for s := 0; s < hp.EESteps; s++ {
		dzA := make([]float64, p)
		for inner := 0; inner < hp.EEInnerSteps; inner++ {
			res, err := runProposals(hp.Sampler, g, ctx, theta, sel, hp.SamplerSteps, hp, ifdState, rs)
			if err != nil {
				return traj, err
			}
			dz := netChange(res)
			for k := range dzA {
				dzA[k] += dz[k]
			}
		}

		shrink := varianceShrink(history, theta, hp.CompC, p)
		for k := range theta {
			theta[k] -= hp.ACA_EE * d[k] * dzA[k] * shrink[k]
		}
		if err := checkFinite(theta); err != nil {
			return traj, err
		}

		history = append(history, append([]float64{}, theta...))
		if len(history) > varianceWindow {
			history = history[1:]
		}

		traj.Theta = append(traj.Theta, append([]float64{}, theta...))
		traj.DzA = append(traj.DzA, dzA)
		if ifdState != nil {
			traj.Psi = append(traj.Psi, ifdState.Psi)
		}
		logger.Debug().Int("outer", s).Interface("theta", theta).Msg("EE step")
	}

	return traj, nil
}

// varianceShrink computes, for each component, a multiplier in (0, 1]
// that shrinks the next Borisenko step whenever the trailing window's
// coefficient of variation |sd/mean| exceeds compC - SPEC_FULL.md §4.5's
// "clamps pathological drift." With fewer than two history points, or a
// near-zero mean, the check cannot be evaluated and the multiplier is 1.
func varianceShrink(history [][]float64, theta []float64, compC float64, p int) []float64 {
	shrink := make([]float64, p)
	for k := range shrink {
		shrink[k] = 1
	}
	if len(history) < 2 || compC <= 0 {
		return shrink
	}

	col := make([]float64, len(history)+1)
	for k := 0; k < p; k++ {
		for i, row := range history {
			col[i] = row[k]
		}
		col[len(history)] = theta[k]

		mean, sd := stat.MeanStdDev(col, nil)
		if math.Abs(mean) < 1e-12 {
			continue
		}
		cv := math.Abs(sd / mean)
		if cv > compC {
			shrink[k] = compC / cv
		}
	}
	return shrink
}
