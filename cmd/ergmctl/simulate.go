package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gilchrisn/ergm-estimnet/internal/errs"
	"github.com/gilchrisn/ergm-estimnet/internal/estimator"
	"github.com/gilchrisn/ergm-estimnet/internal/pajek"
	"github.com/gilchrisn/ergm-estimnet/internal/simulate"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Draw samples from the ERGM at a fixed theta",
	RunE:  runSimulate,
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := openConfig(configPath)
	if err != nil {
		return err
	}

	logger := cfg.CreateLogger("simulate")

	nf, err := loadNetwork(cfg, cfg.Int("numnodes", 0))
	if err != nil {
		return err
	}
	logger.Info().Int("nodes", nf.G.N()).Int("arcs", nf.G.M()).Msg("network loaded")

	theta, err := startingTheta(cfg.String("thetafileprefix"), len(nf.Sel))
	if err != nil {
		return err
	}

	simCfg := simulate.Config{
		Hyperparameters: hyperparametersFromConfig(cfg, nf.Flags),
		SampleSize:      cfg.Int("samplesize", 1),
		Interval:        cfg.Int("interval", 1000),
		Burnin:          cfg.Int("burnin", 10000),
		EmitGraphs:      cfg.Bool("outputsimulatednetworks"),
	}

	samples, err := simulate.Run(nf.G, nf.Ctx, theta, nf.Sel, simCfg, newRNG(rank))
	if err != nil {
		return err
	}
	logger.Info().Int("samples", len(samples)).Msg("simulation finished")

	if err := writeStats(cfg.String("statsfile"), samples); err != nil {
		return err
	}
	if simCfg.EmitGraphs {
		if err := writeSimulatedNetworks(cfg.String("simnetfileprefix"), samples); err != nil {
			return err
		}
	}
	return nil
}

// startingTheta reads the last row of thetaFilePrefix_<rank>.txt, the
// output of a prior "ergmctl estimate" run, since SPEC_FULL.md §6 names
// no separate fixed-theta key for the simulation-only path. Absent a
// thetaFilePrefix, simulation starts from the zero vector.
func startingTheta(thetaPrefix string, p int) ([]float64, error) {
	if thetaPrefix == "" {
		return make([]float64, p), nil
	}
	path := fmt.Sprintf("%s_%d.txt", thetaPrefix, rank)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmtIOError(path, err)
	}
	defer f.Close()

	var last []float64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		row := make([]float64, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("ergmctl: %s: invalid theta value %q: %w", path, field, errs.ErrConfig)
			}
			row[i] = v
		}
		last = row
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ergmctl: %s: %w", path, err)
	}
	if last == nil {
		return nil, fmt.Errorf("ergmctl: %s: no theta rows found: %w", path, errs.ErrConfig)
	}
	if len(last) != p {
		return nil, fmt.Errorf("ergmctl: %s: theta has %d components, selection has %d: %w", path, len(last), p, errs.ErrConfig)
	}
	return last, nil
}

func writeStats(path string, samples []simulate.Sample) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmtIOError(path, err)
	}
	defer f.Close()

	rows := make([][]float64, len(samples))
	for i, s := range samples {
		rows[i] = s.Stats
	}
	if err := estimator.WriteRows(f, rows); err != nil {
		return fmt.Errorf("ergmctl: %s: %w: %w", path, err, errs.ErrIO)
	}
	return nil
}

func writeSimulatedNetworks(prefix string, samples []simulate.Sample) error {
	if prefix == "" {
		return nil
	}
	for i, s := range samples {
		if s.Graph == nil {
			continue
		}
		path := fmt.Sprintf("%s_%d.net", prefix, i)
		f, err := os.Create(path)
		if err != nil {
			return fmtIOError(path, err)
		}
		err = pajek.Write(f, s.Graph, nil)
		f.Close()
		if err != nil {
			return fmt.Errorf("ergmctl: %s: %w: %w", path, err, errs.ErrIO)
		}
	}
	return nil
}
