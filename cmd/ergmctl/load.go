package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gilchrisn/ergm-estimnet/internal/attrio"
	"github.com/gilchrisn/ergm-estimnet/internal/changestat"
	"github.com/gilchrisn/ergm-estimnet/internal/config"
	"github.com/gilchrisn/ergm-estimnet/internal/errs"
	"github.com/gilchrisn/ergm-estimnet/internal/estimator"
	"github.com/gilchrisn/ergm-estimnet/internal/graph"
	"github.com/gilchrisn/ergm-estimnet/internal/pajek"
	"github.com/gilchrisn/ergm-estimnet/internal/sampler"
	"github.com/gilchrisn/ergm-estimnet/internal/twopath"
)

func isInvariantErr(err error) bool {
	return errors.Is(err, graph.ErrInvariant)
}

// openConfig opens and parses path as the key = value configuration
// format. An empty path is itself a configuration error since every
// subcommand requires --config.
func openConfig(path string) (*config.Config, error) {
	if path == "" {
		return nil, fmt.Errorf("ergmctl: --config is required: %w", errs.ErrConfig)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmtIOError(path, err)
	}
	defer f.Close()
	return config.Load(f)
}

// hyperparametersFromConfig builds the estimator's Hyperparameters from
// the SPEC_FULL.md §6 sampler/step-count keys, sharing flags (already
// derived by loadNetwork) between the estimate and simulate subcommands.
func hyperparametersFromConfig(cfg *config.Config, flags sampler.Flags) estimator.Hyperparameters {
	sk := estimator.Basic
	switch {
	case cfg.Bool("useifdsampler"):
		sk = estimator.IFD
	case cfg.Bool("usetntsampler"):
		sk = estimator.TNT
	}

	return estimator.Hyperparameters{
		Sampler:      sk,
		Flags:        flags,
		ACA_S:        cfg.Float64("aca_s", 0.1),
		ACA_EE:       cfg.Float64("aca_ee", 0.1),
		CompC:        cfg.Float64("compc", 0),
		IfdK:         cfg.Float64("ifd_k", 0.1),
		SamplerSteps: cfg.Int("samplersteps", 1000),
		SSteps:       cfg.Int("ssteps", 100),
		EESteps:      cfg.Int("eesteps", 500),
		EEInnerSteps: cfg.Int("eeinnersteps", 10),
	}
}

// network bundles everything loadNetwork assembles from the config file's
// file-path keys, ready to hand to the estimator or simulation driver.
type network struct {
	G     *graph.Digraph
	Ctx   *changestat.Context
	Sel   changestat.Selection
	Flags sampler.Flags
}

// loadNetwork reads the graph, attribute tables, and zone file named by
// cfg, builds the two-path index selected by twopathBackend, and parses
// the statistic selection. numNodes, when > 0, builds an empty starting
// graph of that size when cfg has no arclistFile (the simulation-only
// path, SPEC_FULL.md §6's "Simulation-only options").
func loadNetwork(cfg *config.Config, numNodes int) (*network, error) {
	g, err := loadGraph(cfg, numNodes)
	if err != nil {
		return nil, err
	}

	attrs := graph.NewAttributes()
	if err := loadAttrs(cfg, g.N(), attrs); err != nil {
		return nil, err
	}
	g.Attrs = attrs

	if zoneFile := cfg.String("zonefile"); zoneFile != "" {
		if err := loadZones(cfg, zoneFile, g); err != nil {
			return nil, err
		}
	}

	sel, err := config.ParseSelection(
		cfg.StringSlice("structparams"),
		cfg.StringSlice("attrparams"),
		cfg.StringSlice("dyadicparams"),
		cfg.StringSlice("attrinteractionparams"),
		attrs,
	)
	if err != nil {
		return nil, err
	}

	ctx := &changestat.Context{G: g, Lambda: cfg.Float64("lambda", 2.0)}
	switch cfg.String("twopathbackend") {
	case "sparse":
		ctx.TwoPath = twopath.NewSparse()
	case "disabled":
		// ctx.TwoPath stays nil: Context falls back to live intersection.
	default:
		ctx.TwoPath = twopath.NewDense(g.N())
	}
	if ctx.TwoPath != nil {
		// The index starts empty; replay the loaded arcs in order onto a
		// shadow graph so its counts match g before any sampler toggles.
		shadow := graph.New(g.N())
		for _, arc := range g.Arcs() {
			if err := shadow.InsertArc(arc.Tail, arc.Head); err != nil {
				return nil, err
			}
			twopath.OnArcToggled(ctx.TwoPath, shadow, arc.Tail, arc.Head, 1)
		}
	}

	flags := sampler.Flags{
		UseConditionalEstimation: cfg.Bool("useconditionalestimation") || cfg.String("zonefile") != "",
		ForbidReciprocity:        cfg.Bool("forbidreciprocity"),
		TNTHastingsCorrection:    cfg.Bool("tnthastingscorrection"),
	}

	return &network{G: g, Ctx: ctx, Sel: sel, Flags: flags}, nil
}

func loadGraph(cfg *config.Config, numNodes int) (*graph.Digraph, error) {
	path := cfg.String("arclistfile")
	if path == "" {
		n := cfg.Int("numnodes", numNodes)
		if n <= 0 {
			return nil, fmt.Errorf("ergmctl: no arclistFile and no positive numNodes: %w", errs.ErrConfig)
		}
		return graph.New(n), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmtIOError(path, err)
	}
	defer f.Close()

	pg, err := pajek.Read(f)
	if err != nil {
		return nil, err
	}
	return pg.G, nil
}

func loadAttrs(cfg *config.Config, n int, attrs *graph.Attributes) error {
	readers := []struct {
		key  string
		read func(r io.Reader, n int, attrs *graph.Attributes) error
	}{
		{"binattrfile", attrio.ReadBinary},
		{"catattrfile", attrio.ReadCategorical},
		{"contattrfile", attrio.ReadContinuous},
		{"setattrfile", attrio.ReadSetValued},
	}
	for _, r := range readers {
		path := cfg.String(r.key)
		if path == "" {
			continue
		}
		f, err := os.Open(path)
		if err != nil {
			return fmtIOError(path, err)
		}
		err = r.read(f, n, attrs)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func loadZones(cfg *config.Config, path string, g *graph.Digraph) error {
	f, err := os.Open(path)
	if err != nil {
		return fmtIOError(path, err)
	}
	defer f.Close()

	zone, maxZone, err := attrio.ReadZones(f, g.N())
	if err != nil {
		return err
	}
	g.Zones = graph.BuildZoneInfo(g, zone, maxZone)
	return nil
}

func fmtIOError(path string, err error) error {
	return fmt.Errorf("ergmctl: %s: %w: %w", path, err, errs.ErrIO)
}
