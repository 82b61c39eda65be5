package changestat

import "math"

// attrValue reads a node's value from the named table, and whether it is
// present (not missing). Attribute statistics contribute zero whenever
// either endpoint's value is missing (SPEC_FULL.md §4.3).
func attrValue(ctx *Context, table AttrTable, name string, node int32) (float64, bool) {
	attrs := ctx.G.Attrs
	if attrs == nil {
		return 0, false
	}
	switch table {
	case Binary:
		if attrs.BinaryMissing(name, node) {
			return 0, false
		}
		return float64(attrs.Binary[name][node]), true
	case Categorical:
		if attrs.CategoricalMissing(name, node) {
			return 0, false
		}
		return float64(attrs.Categorical[name][node]), true
	default: // Continuous
		if attrs.ContinuousMissing(name, node) {
			return 0, false
		}
		return attrs.Continuous[name][node], true
	}
}

// deltaSender: adding i->j contributes the sender's own attribute value.
func deltaSender(ctx *Context, term Term, i, j int32) float64 {
	v, ok := attrValue(ctx, term.AttrTable, term.AttrName, i)
	if !ok {
		return 0
	}
	return v
}

// deltaReceiver: adding i->j contributes the receiver's own attribute value.
func deltaReceiver(ctx *Context, term Term, i, j int32) float64 {
	v, ok := attrValue(ctx, term.AttrTable, term.AttrName, j)
	if !ok {
		return 0
	}
	return v
}

// deltaMatching: homophily, contributes 1 iff both endpoints share the
// same (non-missing) categorical or binary value.
func deltaMatching(ctx *Context, term Term, i, j int32) float64 {
	vi, oki := attrValue(ctx, term.AttrTable, term.AttrName, i)
	vj, okj := attrValue(ctx, term.AttrTable, term.AttrName, j)
	if !oki || !okj || vi != vj {
		return 0
	}
	return 1
}

// deltaMatchingReciprocity: matching, but only when the arc would also be
// reciprocating an existing arc j->i.
func deltaMatchingReciprocity(ctx *Context, term Term, i, j int32) float64 {
	if !ctx.G.IsArc(j, i) {
		return 0
	}
	return deltaMatching(ctx, term, i, j)
}

// deltaDifference: contributes the absolute difference on a continuous
// covariate.
func deltaDifference(ctx *Context, term Term, i, j int32) float64 {
	vi, oki := attrValue(ctx, Continuous, term.AttrName, i)
	vj, okj := attrValue(ctx, Continuous, term.AttrName, j)
	if !oki || !okj {
		return 0
	}
	return math.Abs(vi - vj)
}

// deltaDyadicCovariate: contributes the (i,j) entry of a named dyadic
// covariate matrix.
func deltaDyadicCovariate(ctx *Context, term Term, i, j int32) float64 {
	m, ok := ctx.Covariates[term.CovariateName]
	if !ok {
		return 0
	}
	return m.Get(i, j)
}

// deltaAttrInteraction: contributes the product of the sender's first
// attribute and the receiver's second attribute.
func deltaAttrInteraction(ctx *Context, term Term, i, j int32) float64 {
	v1, ok1 := attrValue(ctx, term.PairTable[0], term.PairName[0], i)
	v2, ok2 := attrValue(ctx, term.PairTable[1], term.PairName[1], j)
	if !ok1 || !ok2 {
		return 0
	}
	return v1 * v2
}
