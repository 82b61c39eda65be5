package twopath

// Dense is the N x N contiguous back-end from SPEC_FULL.md §3/§12.2:
// O(1) query/update, but Theta(N^2) memory per relation, so it is only
// practical for graphs up to roughly 50k nodes. NewDense does not enforce
// any size limit.
type Dense struct {
	n       int32
	mixed   []int32
	inRel   []int32
	outRel  []int32
}

// NewDense allocates the three N x N matrices up front.
func NewDense(n int) *Dense {
	return &Dense{
		n:      int32(n),
		mixed:  make([]int32, n*n),
		inRel:  make([]int32, n*n),
		outRel: make([]int32, n*n),
	}
}

func (d *Dense) cell(i, j int32) int32 { return i*d.n + j }

func (d *Dense) table(rel Relation) []int32 {
	switch rel {
	case Mixed:
		return d.mixed
	case In:
		return d.inRel
	default:
		return d.outRel
	}
}

func (d *Dense) Query(rel Relation, i, j int32) int32 {
	return d.table(rel)[d.cell(i, j)]
}

func (d *Dense) Update(rel Relation, i, j int32, delta int32) {
	d.table(rel)[d.cell(i, j)] += delta
}
