package hkl

import (
	"sort"

	"github.com/atlas-klv/klv/bitset"
	"github.com/atlas-klv/klv/block"
)

// Block is the minimal view of a delta-fixed sub-block the twisted engine
// needs: unlike block.Block, it has no descent-status enum or Cayley
// transform, only a cross action whose length can drop by one (a "type I"
// root) or by two (a "type II" root). Any block.Block also satisfies this
// interface structurally, but production callers pass a genuine delta-fixed
// view built over the hblock construction (out of scope for this module —
// see spec.md §1's KGB/block-construction Non-goal).
type Block interface {
	Size() int
	Rank() int
	Length(x block.Index) block.Length
	Cross(s block.Generator, x block.Index) block.Index
}

// Support precomputes, once per delta-fixed sub-block, the per-generator
// down-sets and the length-less prefix table used to primitivise rows and
// elements — the hKLSupport half of spec.md §4.6, grounded directly on
// hkl.cpp's klsupport::hKLSupport (same fill/primitivize pair, ported from
// its BitMap/RankFlags types to bitset.Set/bitset.Small).
type Support struct {
	b    Block
	rank int
	size int

	// downset[s] has bit x set iff cross(s,x) < x.
	downset []*bitset.Set
	// ascent[x] has bit s set iff cross(s,x) >= x (the complement of descent).
	ascent []bitset.Small

	maxLen block.Length
	// ll[l] is the smallest index of length >= l; ll[maxLen+1] == size.
	ll []block.Index

	filled bool
}

// New returns an unfilled Support borrowing b.
func New(b Block) (*Support, error) {
	if b == nil {
		return nil, ErrNilBlock
	}
	return &Support{b: b, rank: b.Rank(), size: b.Size()}, nil
}

// Fill computes the down-sets, ascent sets, and length-less table. It must
// be called exactly once before any other method is used.
func (s *Support) Fill() error {
	if s.filled {
		return ErrAlreadyFilled
	}

	s.downset = make([]*bitset.Set, s.rank)
	for g := 0; g < s.rank; g++ {
		s.downset[g] = bitset.NewSet(s.size)
	}
	s.ascent = make([]bitset.Small, s.size)

	s.maxLen = 0
	for x := 0; x < s.size; x++ {
		if l := s.b.Length(block.Index(x)); l > s.maxLen {
			s.maxLen = l
		}
	}

	for x := 0; x < s.size; x++ {
		xi := block.Index(x)
		for g := 0; g < s.rank; g++ {
			if s.b.Cross(block.Generator(g), xi) < xi {
				s.downset[g].Set(x)
			} else {
				s.ascent[x] = s.ascent[x].Set(g)
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

// Rank returns the number of delta-orbit generators.
func (s *Support) Rank() int { return s.rank }

// Size returns the size of the delta-fixed sub-block.
func (s *Support) Size() int { return s.size }

// Block returns the borrowed block.
func (s *Support) Block() Block { return s.b }

// DescentSet returns the descent bitset of x over generators (bit g set
// iff cross(g,x) < x).
func (s *Support) DescentSet(x block.Index) (bitset.Small, error) {
	if err := s.checkFilled(); err != nil {
		return 0, err
	}
	var d bitset.Small
	for g := 0; g < s.rank; g++ {
		if s.downset[g].Test(int(x)) {
			d = d.Set(g)
		}
	}
	return d, nil
}

// LengthLess returns the smallest index of length >= l.
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

// Primitivize follows ascents of x within ds until none remain, exactly as
// hKLSupport::primitivize(BlockElt,RankFlags) does.
func (s *Support) Primitivize(x block.Index, ds bitset.Small) (block.Index, error) {
	if err := s.checkFilled(); err != nil {
		return 0, err
	}
	for {
		ads := s.ascent[x].And(ds)
		if ads.IsEmpty() {
			return x, nil
		}
		g := ads.Generators()[0]
		x = s.b.Cross(block.Generator(g), x)
	}
}

// PrimitiveRow returns, ascending with y last, every x of length strictly
// less than y (plus y itself) that survives intersecting with the
// down-set of every descent generator of y — the bitmap recipe of
// hKLContext::makePrimitiveRow. Unlike klsupport.PrimitiveRow, elements of
// the same length as y other than y are never included: hblock rows are
// built strictly below y, matching the twisted setting's C++ source.
func (s *Support) PrimitiveRow(y block.Index) ([]block.Index, error) {
	if err := s.checkFilled(); err != nil {
		return nil, err
	}
	upTo, err := s.LengthLess(s.b.Length(y))
	if err != nil {
		return nil, err
	}
	bm := bitset.NewSet(s.size)
	bm.FillRange(int(upTo))
	bm.Set(int(y))

	d, err := s.DescentSet(y)
	if err != nil {
		return nil, err
	}
	for _, g := range d.Generators() {
		bm.AndInPlace(s.downset[g])
	}

	raw := bm.Elements()
	out := make([]block.Index, 0, len(raw))
	for _, e := range raw {
		out = append(out, block.Index(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}
