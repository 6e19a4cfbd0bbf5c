package klsupport

import (
	"fmt"
	"sort"

	"github.com/atlas-klv/klv/bitset"
	"github.com/atlas-klv/klv/block"
)

// Support holds the precomputed per-element and per-generator tables of
// spec.md §4.3: descent/good-ascent bitsets, down-sets, the length-less
// prefix table, and the extremal/primitive row constructions built on
// top of them.
type Support struct {
	b    block.Block
	rank int
	size int

	descent    []bitset.Small
	goodAscent []bitset.Small

	// downset[s] has bit x set iff cross(s,x) < x — the strict, movement-
	// based notion of descent used by ExtremalRow.
	downset []*bitset.Set
	// isDescentAt[s] has bit x set iff descentValue(s,x).IsDescent(), the
	// bitwise notion of descent (which also holds for ImaginaryCompact,
	// where cross is the identity and x therefore never appears in
	// downset[s]). PrimitiveRow is built from this set, not downset,
	// exactly matching the prose of spec.md §4.3 ("descent of x, or an
	// ImaginaryTypeII ascent of x") rather than the narrower bitmap recipe
	// sketched there, which the spec itself notes only handles the
	// ImaginaryTypeII exception and silently drops ImaginaryCompact.
	isDescentAt []*bitset.Set
	// imagTypeII[s] has bit x set iff descentValue(s,x) == ImaginaryTypeII.
	imagTypeII []*bitset.Set

	maxLen block.Length
	// ll[l] is the smallest index of length >= l; ll[maxLen+1] == size.
	ll []block.Index

	filled bool
}

// New returns an unfilled Support borrowing b.
func New(b block.Block) (*Support, error) {
	if b == nil {
		return nil, ErrNilBlock
	}
	return &Support{b: b, rank: b.Rank(), size: b.Size()}, nil
}

// Fill computes every table. It must be called exactly once before any
// other method is used.
func (s *Support) Fill() error {
	if s.filled {
		return ErrAlreadyFilled
	}

	s.descent = make([]bitset.Small, s.size)
	s.goodAscent = make([]bitset.Small, s.size)
	s.downset = make([]*bitset.Set, s.rank)
	s.isDescentAt = make([]*bitset.Set, s.rank)
	s.imagTypeII = make([]*bitset.Set, s.rank)
	for g := 0; g < s.rank; g++ {
		s.downset[g] = bitset.NewSet(s.size)
		s.isDescentAt[g] = bitset.NewSet(s.size)
		s.imagTypeII[g] = bitset.NewSet(s.size)
	}

	s.maxLen = 0
	for x := 0; x < s.size; x++ {
		if l := s.b.Length(block.Index(x)); l > s.maxLen {
			s.maxLen = l
		}
	}

	for x := 0; x < s.size; x++ {
		xi := block.Index(x)
		for g := 0; g < s.rank; g++ {
			gen := block.Generator(g)
			v := s.b.DescentValue(gen, xi)
			if v.IsDescent() {
				s.descent[x] = s.descent[x].Set(g)
			}
			if v.IsGoodAscent() {
				s.goodAscent[x] = s.goodAscent[x].Set(g)
			}
			if s.b.Cross(gen, xi) < xi {
				s.downset[g].Set(x)
			}
			if v.IsDescent() {
				s.isDescentAt[g].Set(x)
			}
			if v == block.ImaginaryTypeII {
				s.imagTypeII[g].Set(x)
			}
		}
	}

	s.ll = make([]block.Index, s.maxLen+2)
	li := 0
	for l := block.Length(0); l <= s.maxLen; l++ {
		for li < s.size && s.b.Length(block.Index(li)) < l {
			li++
		}
		s.ll[l] = block.Index(li)
	}
	s.ll[s.maxLen+1] = block.Index(s.size)

	s.filled = true
	return nil
}

func (s *Support) checkFilled() error {
	if !s.filled {
		return ErrNotFilled
	}
	return nil
}

// Rank returns r.
func (s *Support) Rank() int { return s.rank }

// Size returns N.
func (s *Support) Size() int { return s.size }

// Block returns the borrowed block.
func (s *Support) Block() block.Block { return s.b }

// DescentSet returns the descent bitset of x over generators.
func (s *Support) DescentSet(x block.Index) (bitset.Small, error) {
	if err := s.checkFilled(); err != nil {
		return 0, err
	}
	return s.descent[x], nil
}

// GoodAscentSet returns the good-ascent bitset of x over generators.
func (s *Support) GoodAscentSet(x block.Index) (bitset.Small, error) {
	if err := s.checkFilled(); err != nil {
		return 0, err
	}
	return s.goodAscent[x], nil
}

// LengthLess returns the smallest index of length >= l (spec.md §3's
// ll[l]); LengthLess(maxLen+1) == Size().
func (s *Support) LengthLess(l block.Length) (block.Index, error) {
	if err := s.checkFilled(); err != nil {
		return 0, err
	}
	if l < 0 {
		l = 0
	}
	if int(l) >= len(s.ll) {
		return block.Index(s.size), nil
	}
	return s.ll[l], nil
}

// MaxLength returns the maximal length occurring in the block.
func (s *Support) MaxLength() (block.Length, error) {
	if err := s.checkFilled(); err != nil {
		return 0, err
	}
	return s.maxLen, nil
}

// Primitivize applies element primitivisation (spec.md §4.3): while there
// is a generator s in D that is a good ascent of x, replace x with the
// element one step up along that ascent, and repeat. The result does not
// depend on the order generators are tried.
//
// "One step up" means cross(s,x) for a ComplexAscent (cross genuinely
// moves between two elements of differing length for complex generators)
// and cayley(s,x).First for an ImaginaryTypeI ascent (cross is the
// identity there; the Cayley transform is the only length-changing move).
// RealNonparity is classified as a good ascent by the bitwise predicate
// of spec.md §4.2 but has no length-changing move at all (cross is the
// identity and Cayley is undefined for real generators); Primitivize
// therefore only follows ComplexAscent/ImaginaryTypeI moves and stops
// once a full pass over D makes no further progress, which keeps the
// documented fixed-point property (spec.md §8) without looping forever
// on a RealNonparity generator that can never move x.
func (s *Support) Primitivize(x block.Index, d bitset.Small) (block.Index, error) {
	if err := s.checkFilled(); err != nil {
		return 0, err
	}
	for {
		moved := false
		for _, g := range d.Generators() {
			gen := block.Generator(g)
			switch s.b.DescentValue(gen, x) {
			case block.ComplexAscent:
				x = s.b.Cross(gen, x)
				moved = true
			case block.ImaginaryTypeI:
				x = s.b.Cayley(gen, x).First
				moved = true
			}
			if moved {
				break
			}
		}
		if !moved {
			return x, nil
		}
	}
}

// ExtremalRow returns, ascending, every x <= y whose descent set is a
// superset of descent(y) — the strict, down-set-only subset of
// PrimitiveRow described in SPEC_FULL.md §E.2.
func (s *Support) ExtremalRow(y block.Index) ([]block.Index, error) {
	if err := s.checkFilled(); err != nil {
		return nil, err
	}
	bm := bitset.NewSet(s.size)
	bm.FillRange(int(y) + 1)

	d, err := s.DescentSet(y)
	if err != nil {
		return nil, err
	}
	for _, g := range d.Generators() {
		bm.AndInPlace(s.downset[g])
	}
	bm.Set(int(y))

	return elementsAsIndexes(bm, y), nil
}

// PrimitiveRow returns, ascending with y last, every x <= y primitive
// with respect to y: every descent of y is a descent of x (bitwise, so
// ImaginaryCompact counts), or an ImaginaryTypeII ascent of x.
func (s *Support) PrimitiveRow(y block.Index) ([]block.Index, error) {
	if err := s.checkFilled(); err != nil {
		return nil, err
	}
	bm := bitset.NewSet(s.size)
	bm.FillRange(int(y) + 1)

	d, err := s.DescentSet(y)
	if err != nil {
		return nil, err
	}
	for _, g := range d.Generators() {
		allowed := s.isDescentAt[g].Clone()
		allowed.OrInPlace(s.imagTypeII[g])
		bm.AndInPlace(allowed)
	}
	bm.Set(int(y))

	return elementsAsIndexes(bm, y), nil
}

func elementsAsIndexes(bm *bitset.Set, y block.Index) []block.Index {
	raw := bm.Elements()
	out := make([]block.Index, 0, len(raw))
	for _, e := range raw {
		out = append(out, block.Index(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	if len(out) == 0 || out[len(out)-1] != y {
		panic(fmt.Sprintf("klsupport: row for %d did not terminate in %d", y, y))
	}
	return out
}
