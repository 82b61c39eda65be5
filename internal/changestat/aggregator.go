package changestat

// Delta dispatches a single term's change statistic. Every function here
// computes the "add" marginal as if the arc were absent from ctx.G (the
// calling convention guarantees that for both add and delete proposals -
// SPEC_FULL.md §4.3); CalcChangeStats applies the delete sign once.
func Delta(term Term, ctx *Context, i, j int32) float64 {
	switch term.Kind {
	case Arc:
		return deltaArc(ctx, i, j)
	case Reciprocity:
		return deltaReciprocity(ctx, i, j)
	case AltKStarOut:
		return deltaAltKStarOut(ctx, i, j)
	case AltKStarIn:
		return deltaAltKStarIn(ctx, i, j)
	case AltKTriangleT:
		return deltaAltKTriangleT(ctx, i, j)
	case AltKTriangleC:
		return deltaAltKTriangleC(ctx, i, j)
	case AltKTriangleD:
		return deltaAltKTriangleD(ctx, i, j)
	case AltKTriangleU:
		return deltaAltKTriangleU(ctx, i, j)
	case AltTwoPathMixed:
		return deltaAltTwoPathMixed(ctx, i, j)
	case AltTwoPathIn:
		return deltaAltTwoPathIn(ctx, i, j)
	case AltTwoPathOut:
		return deltaAltTwoPathOut(ctx, i, j)
	case Sender:
		return deltaSender(ctx, term, i, j)
	case Receiver:
		return deltaReceiver(ctx, term, i, j)
	case Matching:
		return deltaMatching(ctx, term, i, j)
	case MatchingReciprocity:
		return deltaMatchingReciprocity(ctx, term, i, j)
	case Difference:
		return deltaDifference(ctx, term, i, j)
	case DyadicCovariate:
		return deltaDyadicCovariate(ctx, term, i, j)
	case AttrInteraction:
		return deltaAttrInteraction(ctx, term, i, j)
	default:
		return 0
	}
}

// CalcChangeStats is the aggregator from SPEC_FULL.md §4.3: it fills
// out[0:len(sel)) with each term's (signed) contribution and returns
// theta . out. Delete proposals are negated exactly once, here.
func CalcChangeStats(sel Selection, ctx *Context, theta []float64, i, j int32, isDelete bool, out []float64) float64 {
	sign := 1.0
	if isDelete {
		sign = -1.0
	}
	var total float64
	for k, term := range sel {
		v := Delta(term, ctx, i, j) * sign
		out[k] = v
		total += theta[k] * v
	}
	return total
}
