package estimator

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gilchrisn/ergm-estimnet/internal/changestat"
	"github.com/gilchrisn/ergm-estimnet/internal/graph"
	"github.com/gilchrisn/ergm-estimnet/internal/rng"
	"github.com/gilchrisn/ergm-estimnet/internal/sampler"
	"github.com/gilchrisn/ergm-estimnet/internal/testutil"
)

func newEstimatorFixture(n int) (*graph.Digraph, *changestat.Context, changestat.Selection) {
	g := graph.New(n)
	ctx := &changestat.Context{G: g, Lambda: 2.0}
	sel := changestat.Selection{{Kind: changestat.Arc}, {Kind: changestat.Reciprocity}}
	return g, ctx, sel
}

func TestAlgorithmSProducesFiniteThetaAndScale(t *testing.T) {
	g, ctx, sel := newEstimatorFixture(10)
	theta := make([]float64, len(sel))
	hp := &Hyperparameters{
		Sampler:      TNT,
		ACA_S:        0.01,
		SamplerSteps: 20,
		SSteps:       5,
	}
	rs := rng.New(100, 0)

	res, err := RunAlgorithmS(g, ctx, theta, sel, hp, rs)
	require.NoError(t, err)
	require.Len(t, res.D, len(sel))
	require.Len(t, res.Theta, len(sel))
	require.NoError(t, checkFinite(res.Theta))
	require.NoError(t, checkFinite(res.D))
}

func TestAlgorithmEEProducesTrajectoryOfRequestedLength(t *testing.T) {
	g, ctx, sel := newEstimatorFixture(10)
	theta := make([]float64, len(sel))
	d := []float64{1, 1}
	hp := &Hyperparameters{
		Sampler:      TNT,
		ACA_EE:       0.005,
		CompC:        0.5,
		SamplerSteps: 10,
		EESteps:      8,
		EEInnerSteps: 3,
	}
	rs := rng.New(101, 0)

	traj, err := RunAlgorithmEE(g, ctx, theta, d, sel, hp, rs)
	require.NoError(t, err)
	require.Len(t, traj.Theta, hp.EESteps)
	require.Len(t, traj.DzA, hp.EESteps)
	for _, row := range traj.Theta {
		require.NoError(t, checkFinite(row))
	}
}

func TestAlgorithmEEWithIFDSampler(t *testing.T) {
	g, ctx, sel := newEstimatorFixture(8)
	theta := make([]float64, len(sel))
	d := []float64{1, 1}
	hp := &Hyperparameters{
		Sampler:      IFD,
		IfdK:         0.02,
		ACA_EE:       0.005,
		CompC:        0.5,
		SamplerSteps: 10,
		EESteps:      4,
		EEInnerSteps: 2,
	}
	rs := rng.New(102, 0)

	traj, err := RunAlgorithmEE(g, ctx, theta, d, sel, hp, rs)
	require.NoError(t, err)
	require.Len(t, traj.Theta, hp.EESteps)
	require.Len(t, traj.Psi, hp.EESteps)
}

func TestAlgorithmEEWithTNTSamplerLeavesPsiNil(t *testing.T) {
	g, ctx, sel := newEstimatorFixture(8)
	theta := make([]float64, len(sel))
	d := []float64{1, 1}
	hp := &Hyperparameters{
		Sampler:      TNT,
		ACA_EE:       0.005,
		CompC:        0.5,
		SamplerSteps: 10,
		EESteps:      3,
		EEInnerSteps: 2,
	}
	rs := rng.New(104, 0)

	traj, err := RunAlgorithmEE(g, ctx, theta, d, sel, hp, rs)
	require.NoError(t, err)
	require.Nil(t, traj.Psi)
}

func TestVarianceShrinkIsIdentityWithFewerThanTwoHistoryPoints(t *testing.T) {
	shrink := varianceShrink(nil, []float64{1, 2}, 0.1, 2)
	require.Equal(t, []float64{1, 1}, shrink)
}

func TestVarianceShrinkClampsHighCoefficientOfVariation(t *testing.T) {
	history := [][]float64{{0.1}, {10.0}, {0.1}, {10.0}}
	shrink := varianceShrink(history, []float64{10.0}, 0.01, 1)
	require.Less(t, shrink[0], 1.0)
}

func TestWriteRowsFormatsWhitespaceSeparatedColumns(t *testing.T) {
	var buf strings.Builder
	rows := [][]float64{{1.5, -2.0}, {0, 3.25}}
	require.NoError(t, WriteRows(&buf, rows))
	require.Equal(t, "1.5 -2\n0 3.25\n", buf.String())
}

func TestTwoStageEstimationConvergesOnSyntheticErdosRenyiNetwork(t *testing.T) {
	rs := rng.New(500, 0)
	g := testutil.ErdosRenyi(25, 0.15, rs)
	ctx := &changestat.Context{G: g, Lambda: 2.0}
	sel := changestat.Selection{{Kind: changestat.Arc}}
	theta := make([]float64, len(sel))

	hp := &Hyperparameters{
		Sampler:      TNT,
		Flags:        sampler.Flags{PerformMove: true},
		ACA_S:        0.05,
		ACA_EE:       0.02,
		CompC:        0.5,
		SamplerSteps: 30,
		SSteps:       10,
		EESteps:      25,
		EEInnerSteps: 5,
	}

	scale, err := RunAlgorithmS(g, ctx, theta, sel, hp, rs)
	require.NoError(t, err)
	require.NoError(t, checkFinite(scale.Theta))

	traj, err := RunAlgorithmEE(g, ctx, scale.Theta, scale.D, sel, hp, rs)
	require.NoError(t, err)
	require.Len(t, traj.Theta, hp.EESteps)

	firstHalf, secondHalf := 0.0, 0.0
	half := len(traj.DzA) / 2
	for i, row := range traj.DzA {
		mag := math.Abs(row[0])
		if i < half {
			firstHalf += mag
		} else {
			secondHalf += mag
		}
	}
	// The EE update is a stochastic-approximation walk, not a monotone
	// descent, so this only checks that theta settled rather than
	// diverging: the second half's average |dzA| should not blow up
	// relative to the first half's.
	require.Less(t, secondHalf/float64(len(traj.DzA)-half), firstHalf/float64(half)*5+1)
}

func TestRunProposalsDispatchesByKind(t *testing.T) {
	g, ctx, sel := newEstimatorFixture(6)
	theta := make([]float64, len(sel))
	rs := rng.New(103, 0)

	for _, kind := range []SamplerKind{Basic, TNT, IFD} {
		hp := &Hyperparameters{Sampler: kind, IfdK: 0.01, SamplerSteps: 5, Flags: sampler.Flags{PerformMove: true}}
		var state *sampler.IFDState
		if kind == IFD {
			state = &sampler.IFDState{}
		}
		_, err := runProposals(kind, g, ctx, theta, sel, 5, hp, state, rs)
		require.NoError(t, err)
	}
}
