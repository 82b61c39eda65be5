package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gilchrisn/ergm-estimnet/internal/errs"
	"github.com/gilchrisn/ergm-estimnet/internal/estimator"
	"github.com/gilchrisn/ergm-estimnet/internal/rng"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate theta for a network's selected statistics via Algorithm S then Algorithm EE",
	RunE:  runEstimate,
}

func runEstimate(cmd *cobra.Command, args []string) error {
	cfg, err := openConfig(configPath)
	if err != nil {
		return err
	}
	if cfg.String("arclistfile") == "" {
		return fmt.Errorf("ergmctl estimate: arclistFile is required: %w", errs.ErrConfig)
	}
	logger := cfg.CreateLogger("estimate")

	nf, err := loadNetwork(cfg, 0)
	if err != nil {
		return err
	}
	nf.Flags.PerformMove = true
	logger.Info().Int("nodes", nf.G.N()).Int("arcs", nf.G.M()).Int("params", len(nf.Sel)).Msg("network loaded")

	hp := hyperparametersFromConfig(cfg, nf.Flags)
	theta := make([]float64, len(nf.Sel))
	rs := newRNG(rank)

	scale, err := estimator.RunAlgorithmS(nf.G, nf.Ctx, theta, nf.Sel, &hp, rs)
	if err != nil {
		return err
	}
	logger.Info().Floats64("theta", scale.Theta).Msg("algorithm S finished")

	traj, err := estimator.RunAlgorithmEE(nf.G, nf.Ctx, scale.Theta, scale.D, nf.Sel, &hp, rs)
	if err != nil {
		return err
	}
	logger.Info().Int("steps", hp.EESteps).Msg("algorithm EE finished")

	if err := writeTrajectoryRows(cfg.String("thetafileprefix"), traj.Theta); err != nil {
		return err
	}
	if err := writeTrajectoryRows(cfg.String("dzafileprefix"), traj.DzA); err != nil {
		return err
	}
	if traj.Psi != nil {
		rows := make([][]float64, len(traj.Psi))
		for i, v := range traj.Psi {
			rows[i] = []float64{v}
		}
		if err := writeTrajectoryRows(psiFilePrefix(cfg.String("thetafileprefix")), rows); err != nil {
			return err
		}
	}

	return nil
}

// newRNG builds this process's RNG stream, seeded from wall-clock time and
// the chain rank (SPEC_FULL.md §5: "seeded deterministically from rank +
// wall-clock").
func newRNG(rank int) *rng.Stream {
	return rng.New(uint64(time.Now().UnixNano()), rank)
}

// psiFilePrefix derives the IFD psi trace's output path from thetaFilePrefix
// since SPEC_FULL.md §6's file-key table names no separate key for it.
func psiFilePrefix(thetaPrefix string) string {
	if thetaPrefix == "" {
		return ""
	}
	return thetaPrefix + "_psi"
}

func writeTrajectoryRows(prefix string, rows [][]float64) error {
	if prefix == "" {
		return nil
	}
	path := fmt.Sprintf("%s_%d.txt", prefix, rank)
	f, err := os.Create(path)
	if err != nil {
		return fmtIOError(path, err)
	}
	defer f.Close()
	if err := estimator.WriteRows(f, rows); err != nil {
		return fmt.Errorf("ergmctl: %s: %w: %w", path, err, errs.ErrIO)
	}
	return nil
}
