package block

import "fmt"

// Builder assembles a Graph one element at a time. Elements must be added
// in final index order (index 0 first, ascending) since the KLV engine's
// length-sorted invariant (spec.md §3) is a precondition, not something a
// builder can fix after the fact by sorting — the real construction
// pipeline (KGB + block closure) already produces elements in this order,
// so Builder matches that contract rather than re-deriving it.
//
// Usage:
//
//	b := block.NewBuilder(rank)
//	x0 := b.AddElement(0)
//	x1 := b.AddElement(1)
//	b.SetDescent(0, x1, block.RealTypeI)
//	b.SetCross(0, x1, x0)
//	b.SetInverseCayley(0, x1, x0, block.Undef)
//	b.SetDescent(0, x0, block.ImaginaryTypeI)
//	b.SetCayley(0, x0, x1, block.Undef)
//	g, err := b.Build()
type Builder struct {
	rank   int
	length []Length

	cross         [][]Index
	descent       [][]DescentStatus
	cayley        [][]CayleyPair
	inverseCayley [][]CayleyPair

	built bool
}

// NewBuilder returns a Builder for a block of the given semisimple rank.
func NewBuilder(rank int) *Builder {
	b := &Builder{rank: rank}
	b.cross = make([][]Index, rank)
	b.descent = make([][]DescentStatus, rank)
	b.cayley = make([][]CayleyPair, rank)
	b.inverseCayley = make([][]CayleyPair, rank)
	return b
}

// AddElement appends a new block element of the given length and returns
// its assigned Index (always len(previous elements)). Every generator's
// cross action defaults to the identity and descent status defaults to
// ComplexAscent until overridden; Cayley/InverseCayley default to undefined.
func (b *Builder) AddElement(length Length) Index {
	if b.built {
		panic("block: AddElement called after Build")
	}
	x := Index(len(b.length))
	b.length = append(b.length, length)
	for s := 0; s < b.rank; s++ {
		b.cross[s] = append(b.cross[s], x)
		b.descent[s] = append(b.descent[s], ComplexAscent)
		b.cayley[s] = append(b.cayley[s], CayleyPair{Undef, Undef})
		b.inverseCayley[s] = append(b.inverseCayley[s], CayleyPair{Undef, Undef})
	}
	return x
}

// SetCross records cross(s, x) = y.
func (b *Builder) SetCross(s Generator, x, y Index) {
	b.checkMutable()
	b.cross[s][x] = y
}

// SetDescent records the descent status of (s, x).
func (b *Builder) SetDescent(s Generator, x Index, v DescentStatus) {
	b.checkMutable()
	b.descent[s][x] = v
}

// SetCayley records the Cayley transform image(s) of (s, x). second may be
// Undef for a single-image (ImaginaryTypeI) transform.
func (b *Builder) SetCayley(s Generator, x Index, first, second Index) {
	b.checkMutable()
	b.cayley[s][x] = CayleyPair{first, second}
}

// SetInverseCayley records the Cayley preimage(s) of (s, x).
func (b *Builder) SetInverseCayley(s Generator, x Index, first, second Index) {
	b.checkMutable()
	b.inverseCayley[s][x] = CayleyPair{first, second}
}

func (b *Builder) checkMutable() {
	if b.built {
		panic("block: Builder mutated after Build")
	}
}

// Build validates the recorded data against the invariants of spec.md §3
// and returns the finished Graph.
func (b *Builder) Build() (*Graph, error) {
	if b.built {
		return nil, ErrAlreadyBuilt
	}
	size := len(b.length)
	if size == 0 {
		return nil, ErrEmptyBlock
	}

	for x := 1; x < size; x++ {
		if b.length[x] < b.length[x-1] {
			return nil, fmt.Errorf("block: element %d has length %d < length(%d)=%d: %w",
				x, b.length[x], x-1, b.length[x-1], ErrLengthOrder)
		}
	}

	for s := 0; s < b.rank; s++ {
		for x := 0; x < size; x++ {
			v := b.descent[s][x]
			cp := b.cayley[s][x]
			cx := b.cross[s][x]
			switch v {
			case ImaginaryTypeI:
				if !cp.IsDefined() || cp.IsDouble() {
					return nil, fmt.Errorf("block: generator %d element %d: ImaginaryTypeI requires exactly one Cayley image: %w", s, x, ErrInconsistentStatus)
				}
				if cx != Index(x) {
					return nil, fmt.Errorf("block: generator %d element %d: %s must have identity cross action: %w", s, x, v, ErrInconsistentStatus)
				}
			case ImaginaryTypeII:
				if !cp.IsDouble() {
					return nil, fmt.Errorf("block: generator %d element %d: ImaginaryTypeII requires two Cayley images: %w", s, x, ErrInconsistentStatus)
				}
				if cx != Index(x) {
					return nil, fmt.Errorf("block: generator %d element %d: %s must have identity cross action: %w", s, x, v, ErrInconsistentStatus)
				}
			case ImaginaryCompact, RealNonparity:
				if cx != Index(x) {
					return nil, fmt.Errorf("block: generator %d element %d: %s must have identity cross action: %w", s, x, v, ErrInconsistentStatus)
				}
			case ComplexDescent, RealTypeI, RealTypeII:
				if cx == Index(x) || b.length[cx] >= b.length[x] {
					return nil, fmt.Errorf("block: generator %d element %d: %s must have a strictly shorter cross image: %w", s, x, v, ErrInconsistentStatus)
				}
			case ComplexAscent:
				if cx != Index(x) && b.length[cx] <= b.length[x] {
					return nil, fmt.Errorf("block: generator %d element %d: ComplexAscent must have a strictly longer cross image when non-identity: %w", s, x, ErrInconsistentStatus)
				}
			}
		}
	}

	b.built = true
	g := &Graph{
		size:          size,
		rank:          b.rank,
		length:        b.length,
		cross:         b.cross,
		descent:       b.descent,
		cayley:        b.cayley,
		inverseCayley: b.inverseCayley,
	}
	return g, nil
}
