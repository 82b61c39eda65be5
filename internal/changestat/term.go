package changestat

// Kind tags each statistic variant in the registry (SPEC_FULL.md §12.1).
type Kind int

const (
	Arc                 Kind = iota // density / edge count
	Reciprocity                     // mutual-dyad count
	AltKStarOut                     // alternating out-k-star
	AltKStarIn                      // alternating in-k-star
	AltKTriangleT                   // alternating k-triangle, transitive orientation
	AltKTriangleC                   // alternating k-triangle, cyclic orientation
	AltKTriangleD                   // alternating k-triangle, "down" orientation (i->k->j)
	AltKTriangleU                   // alternating k-triangle, "up" orientation (shared out-neighbor)
	AltTwoPathMixed                 // alternating two-path, mixed orientation
	AltTwoPathIn                    // alternating two-path, in orientation
	AltTwoPathOut                   // alternating two-path, out orientation
	Sender                          // sender effect on a nodal attribute
	Receiver                        // receiver effect on a nodal attribute
	Matching                        // homophily / matching on a nodal attribute
	MatchingReciprocity             // matching conditioned on reciprocation
	Difference                      // |x_i - x_j| on a continuous covariate
	DyadicCovariate                 // named dyadic covariate lookup
	AttrInteraction                 // product of two nodal attributes (sender x receiver)
)

// AttrTable names which Attributes map a Term's AttrName is looked up in.
type AttrTable int

const (
	Binary AttrTable = iota
	Categorical
	Continuous
)

// Term is one selected statistic with whatever qualifier it needs:
// an attribute name and table for attribute terms, a covariate name for
// dyadic terms, or a pair of (table, name) for interaction terms.
// SPEC_FULL.md §6 calls these "statistic names with optional (attribute)
// qualifiers."
type Term struct {
	Kind Kind

	AttrTable AttrTable
	AttrName  string

	CovariateName string

	PairTable [2]AttrTable
	PairName  [2]string
}

// Selection is an ordered list of Terms; its order fixes the order of the
// theta vector and the changestats output vector (SPEC_FULL.md §3).
type Selection []Term
