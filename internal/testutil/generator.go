// Package testutil builds synthetic digraphs for the estimator's
// convergence test and the sampler's boundary tests (SPEC_FULL.md
// §13.2). It is test infrastructure, imported only from _test.go files
// elsewhere in the module, not part of the public estimation API.
package testutil

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/gilchrisn/ergm-estimnet/internal/graph"
	"github.com/gilchrisn/ergm-estimnet/internal/rng"
)

// source adapts a *rng.Stream to the Uint64-only interface gonum's
// stat/distuv package wants its Src field to satisfy, so synthetic
// draws still come from the module's counter-based RNG rather than a
// process-global generator.
type source struct{ s *rng.Stream }

func (a source) Uint64() uint64 { return a.s.Uint64() }

// ErdosRenyi builds an n-node digraph where every ordered, non-loop
// pair is an independent arc with probability p.
func ErdosRenyi(n int, p float64, rs *rng.Stream) *graph.Digraph {
	g := graph.New(n)
	ber := distuv.Bernoulli{P: p, Src: source{rs}}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if ber.Rand() == 1 {
				_ = g.InsertArc(int32(i), int32(j))
			}
		}
	}
	return g
}

// SnowballZoned builds a zoned digraph for conditional-estimation tests:
// nodesPerZone nodes in each of numZones waves, arcs drawn independently
// with probability p but only between nodes at most one zone apart, so
// the result already satisfies the zone-adjacency invariant conditional
// estimation assumes. The outermost zone is the boundary (not inner);
// arcs with both endpoints inner are recorded via InsertInnerArc so
// AllInnerArcs/PrevWaveDegree come out consistent from the start.
func SnowballZoned(nodesPerZone, numZones int, p float64, rs *rng.Stream) *graph.Digraph {
	n := nodesPerZone * numZones
	zone := make([]int32, n)
	for i := range zone {
		zone[i] = int32(i / nodesPerZone)
	}
	maxZone := int32(numZones - 1)

	g := graph.New(n)
	g.Zones = graph.NewZoneInfo(zone, maxZone)

	ber := distuv.Bernoulli{P: p, Src: source{rs}}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			d := zone[j] - zone[i]
			if d < -1 || d > 1 {
				continue
			}
			if ber.Rand() != 1 {
				continue
			}
			if zone[i] < maxZone && zone[j] < maxZone {
				_ = g.InsertInnerArc(int32(i), int32(j))
			} else {
				_ = g.InsertArc(int32(i), int32(j))
			}
		}
	}
	return g
}
