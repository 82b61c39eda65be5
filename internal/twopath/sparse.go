package twopath

// Sparse is the hash-map back-end from SPEC_FULL.md §3/§12.2: one map per
// relation keyed on a packed (i,j) pair. An absent key means count 0;
// entries are purged as soon as their count returns to 0, so memory tracks
// the number of non-zero cells rather than N^2.
type Sparse struct {
	mixed  map[uint64]int32
	inRel  map[uint64]int32
	outRel map[uint64]int32
}

// NewSparse returns an empty sparse index.
func NewSparse() *Sparse {
	return &Sparse{
		mixed:  make(map[uint64]int32),
		inRel:  make(map[uint64]int32),
		outRel: make(map[uint64]int32),
	}
}

func sparseKey(i, j int32) uint64 {
	return uint64(uint32(i))<<32 | uint64(uint32(j))
}

func (s *Sparse) table(rel Relation) map[uint64]int32 {
	switch rel {
	case Mixed:
		return s.mixed
	case In:
		return s.inRel
	default:
		return s.outRel
	}
}

func (s *Sparse) Query(rel Relation, i, j int32) int32 {
	return s.table(rel)[sparseKey(i, j)]
}

func (s *Sparse) Update(rel Relation, i, j int32, delta int32) {
	t := s.table(rel)
	k := sparseKey(i, j)
	v := t[k] + delta
	if v == 0 {
		delete(t, k)
		return
	}
	t[k] = v
}
