// Package simulate implements the simulation driver from SPEC_FULL.md
// §4.6: given theta and a starting graph, run burnin proposals and
// discard them, then repeatedly sample at a fixed interval and emit the
// current statistics vector.
package simulate

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/gilchrisn/ergm-estimnet/internal/changestat"
	"github.com/gilchrisn/ergm-estimnet/internal/estimator"
	"github.com/gilchrisn/ergm-estimnet/internal/graph"
	"github.com/gilchrisn/ergm-estimnet/internal/rng"
	"github.com/gilchrisn/ergm-estimnet/internal/sampler"
	"github.com/gilchrisn/ergm-estimnet/internal/twopath"
)

// Config holds the simulation-only options from SPEC_FULL.md §6:
// numNodes, sampleSize, interval, burnin, outputSimulatedNetworks.
type Config struct {
	Hyperparameters estimator.Hyperparameters
	SampleSize      int
	Interval        int
	Burnin          int
	// EmitGraphs, when true, makes the driver store a deep-copied snapshot
	// of the graph in each Sample's Graph field alongside the statistics
	// row (the "outputSimulatedNetworks" flag); when false, Sample.Graph
	// is nil.
	EmitGraphs bool
}

// Sample is one row of simulation output: the statistics vector at this
// draw, and (if Config.EmitGraphs) the graph snapshot it was computed on.
type Sample struct {
	Stats []float64
	Graph *graph.Digraph
	// Psi is the IFD sampler's running logit-of-delete-probability
	// parameter at the point this sample was drawn (SPEC_FULL.md §13.4),
	// zero unless the driver is running under the IFD sampler.
	Psi float64
}

// Run drives the sampler per SPEC_FULL.md §4.6 and returns one Sample per
// sampleSize draw. theta is read-only here; the caller supplies it (the
// CLI's simulate subcommand reads it from a prior estimate run's output).
func Run(g *graph.Digraph, ctx *changestat.Context, theta []float64, sel changestat.Selection, cfg Config, rs *rng.Stream) ([]Sample, error) {
	hp := cfg.Hyperparameters
	hp.Flags.PerformMove = true

	var ifdState *sampler.IFDState
	if hp.Sampler == estimator.IFD {
		ifdState = &sampler.IFDState{}
	}

	runBatch := func(m int) (sampler.Result, error) {
		switch hp.Sampler {
		case estimator.TNT:
			return sampler.TNT(g, ctx, theta, sel, m, hp.Flags, rs)
		case estimator.IFD:
			return sampler.IFD(g, ctx, theta, sel, m, hp.IfdK, ifdState, hp.Flags, rs)
		default:
			return sampler.Basic(g, ctx, theta, sel, m, hp.Flags, rs)
		}
	}

	logger := log.With().Str("component", "simulate").Logger()

	if cfg.Burnin > 0 {
		if _, err := runBatch(cfg.Burnin); err != nil {
			return nil, err
		}
		logger.Debug().Int("burnin", cfg.Burnin).Msg("burnin complete")
	}

	samples := make([]Sample, 0, cfg.SampleSize)
	for s := 0; s < cfg.SampleSize; s++ {
		if cfg.Interval > 0 {
			if _, err := runBatch(cfg.Interval); err != nil {
				return nil, err
			}
		}

		stats, err := currentStats(g, ctx, sel)
		if err != nil {
			return nil, err
		}

		sample := Sample{Stats: stats}
		if cfg.EmitGraphs {
			sample.Graph = snapshot(g)
		}
		if ifdState != nil {
			sample.Psi = ifdState.Psi
		}
		samples = append(samples, sample)
		logger.Debug().Int("sample", s).Msg("sample drawn")
	}

	return samples, nil
}

// currentStats computes the absolute value of each selected statistic on
// the current graph from scratch, by replaying every arc as an "add" on
// an otherwise-empty shadow graph and summing the per-arc contributions.
// This mirrors how the change-statistic library is defined (deltas, not
// absolute values) without requiring a second, non-incremental
// implementation of every statistic.
func currentStats(g *graph.Digraph, ctx *changestat.Context, sel changestat.Selection) ([]float64, error) {
	shadow := graph.New(g.N())
	shadow.Attrs = g.Attrs
	shadowCtx := &changestat.Context{G: shadow, Lambda: ctx.Lambda, Covariates: ctx.Covariates}
	if ctx.TwoPath != nil {
		shadowCtx.TwoPath = twopath.NewDense(shadow.N())
	}

	totals := make([]float64, len(sel))
	out := make([]float64, len(sel))
	theta := make([]float64, len(sel)) // unused by Delta itself; CalcChangeStats needs a vector to dot against
	for k := range theta {
		theta[k] = 1
	}

	for _, arc := range g.Arcs() {
		changestat.CalcChangeStats(sel, shadowCtx, theta, arc.Tail, arc.Head, false, out)
		for k := range totals {
			totals[k] += out[k]
		}
		if err := shadow.InsertArc(arc.Tail, arc.Head); err != nil {
			return nil, err
		}
		twopath.OnArcToggled(shadowCtx.TwoPath, shadow, arc.Tail, arc.Head, 1)
	}

	return totals, nil
}

// snapshot deep-copies the arc list into a fresh graph so later mutation
// of g does not retroactively change an already-emitted sample.
func snapshot(g *graph.Digraph) *graph.Digraph {
	cp := graph.New(g.N())
	cp.Attrs = g.Attrs
	for _, arc := range g.Arcs() {
		if err := cp.InsertArc(arc.Tail, arc.Head); err != nil {
			// g.Arcs() only ever yields arcs already valid in g, so a copy
			// into a same-sized fresh graph cannot fail.
			panic(fmt.Errorf("simulate: snapshot: %w", err))
		}
	}
	return cp
}
