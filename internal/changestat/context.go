// Package changestat is the catalog of change-statistic functions from
// SPEC_FULL.md §4.3/§12.1: given (g, i, j) it returns the exact change in
// a graph statistic from adding arc i->j. Dispatch is a single switch over
// a tagged Kind, never an interface hierarchy (SPEC_FULL.md §9).
package changestat

import (
	"github.com/gilchrisn/ergm-estimnet/internal/graph"
	"github.com/gilchrisn/ergm-estimnet/internal/twopath"
)

// CovariateMatrix is a dense N x N dyadic covariate table, value[i][j] for
// the arc i->j, stored row-major in one flat slice. Get returns 0 for an
// out-of-range (i, j).
type CovariateMatrix struct {
	N      int
	values []float64
}

// NewCovariateMatrix allocates an N x N matrix initialized to zero.
func NewCovariateMatrix(n int) *CovariateMatrix {
	return &CovariateMatrix{N: n, values: make([]float64, n*n)}
}

// Set stores the covariate value for arc i->j.
func (c *CovariateMatrix) Set(i, j int32, v float64) { c.values[int(i)*c.N+int(j)] = v }

// Get returns the covariate value for arc i->j, or 0 if out of range.
func (c *CovariateMatrix) Get(i, j int32) float64 {
	if int(i) >= c.N || int(j) >= c.N || i < 0 || j < 0 {
		return 0
	}
	return c.values[int(i)*c.N+int(j)]
}

// Context bundles everything a change-statistic function needs to read:
// an immutable borrow of the graph, the optional two-path accelerator
// (nil means "disabled" - fall back to live intersection), the shared
// alternating-statistic decay parameter, and named dyadic covariates.
// SPEC_FULL.md §9: "change-statistic calls take an immutable borrow of the
// graph and a mutable borrow of a scratch vector, without shared ownership."
type Context struct {
	G          *graph.Digraph
	TwoPath    twopath.Index // may be nil
	Lambda     float64
	Covariates map[string]*CovariateMatrix
}

func (c *Context) twoPathCount(rel twopath.Relation, i, j int32) int32 {
	if c.TwoPath != nil {
		return c.TwoPath.Query(rel, i, j)
	}
	return twopath.QueryLive(rel, c.G, i, j)
}
