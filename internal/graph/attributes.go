package graph

import "math"

// Missing is the sentinel value stored for a node whose attribute entry was
// read as NA. Attribute change statistics touching a missing value
// contribute zero (SPEC_FULL.md §3).
const Missing = math.MinInt32

// MissingContinuous is the float counterpart of Missing.
var MissingContinuous = math.NaN()

// Attributes holds the immutable, read-only-after-load node attribute
// tables (SPEC_FULL.md §3). Each table is indexed by node id.
type Attributes struct {
	Binary      map[string][]int32   // 0/1, or Missing
	Categorical map[string][]int32   // category code, or Missing
	Continuous  map[string][]float64 // real value, or NaN for missing
	SetValued   map[string][][]int32 // set of category codes; nil slice = missing
}

// NewAttributes returns an empty, ready-to-populate attribute table set.
func NewAttributes() *Attributes {
	return &Attributes{
		Binary:      make(map[string][]int32),
		Categorical: make(map[string][]int32),
		Continuous:  make(map[string][]float64),
		SetValued:   make(map[string][][]int32),
	}
}

// BinaryMissing reports whether node i's binary attribute a is missing.
func (a *Attributes) BinaryMissing(name string, i int32) bool {
	v := a.Binary[name]
	return i >= int32(len(v)) || v[i] == Missing
}

// CategoricalMissing reports whether node i's categorical attribute is missing.
func (a *Attributes) CategoricalMissing(name string, i int32) bool {
	v := a.Categorical[name]
	return i >= int32(len(v)) || v[i] == Missing
}

// ContinuousMissing reports whether node i's continuous attribute is missing.
func (a *Attributes) ContinuousMissing(name string, i int32) bool {
	v := a.Continuous[name]
	return i >= int32(len(v)) || math.IsNaN(v[i])
}

// SetMissing reports whether node i's set-valued attribute is missing.
func (a *Attributes) SetMissing(name string, i int32) bool {
	v := a.SetValued[name]
	return i >= int32(len(v)) || v[i] == nil
}

// SetContains reports whether value is present in node i's set-valued
// attribute, treating a missing entry as containing nothing.
func (a *Attributes) SetContains(name string, i int32, value int32) bool {
	if a.SetMissing(name, i) {
		return false
	}
	for _, v := range a.SetValued[name][i] {
		if v == value {
			return true
		}
	}
	return false
}
