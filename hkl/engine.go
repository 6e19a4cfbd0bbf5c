package hkl

import (
	"context"
	"sort"
	"sync"

	"github.com/atlas-klv/klv/bitset"
	"github.com/atlas-klv/klv/block"
	"github.com/atlas-klv/klv/klpol"
)

// MuDatum is one entry of a mu or mu_ row: a block element together with
// the signed leading coefficient spec.md §4.6 assigns it.
type MuDatum struct {
	X    block.Index
	Coef int32
}

// Engine is the twisted KL engine of spec.md §4.6, grounded directly on
// hkl.cpp's hKLContext::fill/muCorrection/fillMuRow. Fill drives a single
// owning goroutine through every row in ascending index order, exactly as
// package kl's Engine does; queries are safe from other goroutines once
// the row they target has been committed.
type Engine struct {
	mu sync.RWMutex

	support *Support
	b       Block
	store   *klpol.Store

	prow  [][]block.Index
	krow  [][]klpol.Index
	mrow  [][]MuDatum // the "mu" table: odd length-gap entries
	mrow_ [][]MuDatum // the "mu_" table: even length-gap entries

	filled bool
}

// NewEngine returns an unfilled Engine over a filled Support and a store
// shared with no other engine.
func NewEngine(support *Support, store *klpol.Store) (*Engine, error) {
	if support == nil {
		return nil, ErrNilSupport
	}
	if store == nil {
		return nil, ErrNilStore
	}
	size := support.Size()
	return &Engine{
		support: support,
		b:       support.Block(),
		store:   store,
		prow:    make([][]block.Index, size),
		krow:    make([][]klpol.Index, size),
		mrow:    make([][]MuDatum, size),
		mrow_:   make([][]MuDatum, size),
	}, nil
}

// Size returns the size of the delta-fixed sub-block.
func (e *Engine) Size() int { return e.support.Size() }

// IsFilled reports whether Fill has completed.
func (e *Engine) IsFilled() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.filled
}

// Fill populates prow, kl, mu and mu_ for every y in [0,N), in ascending
// index order, per spec.md §4.6's row-fill algorithm (hKLContext::fill).
func (e *Engine) Fill(ctx context.Context) error {
	e.mu.RLock()
	already := e.filled
	e.mu.RUnlock()
	if already {
		return ErrAlreadyFilled
	}

	size := e.support.Size()
	for y := 0; y < size; y++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := e.fillRow(block.Index(y)); err != nil {
			return err
		}
	}

	e.mu.Lock()
	e.filled = true
	e.mu.Unlock()
	return nil
}

// findTypeIIRoot returns the first descent generator of y whose cross
// image drops length by exactly two, i.e. a "type II" root in spec.md
// §4.6's sense (hKLContext::findRoot).
func (e *Engine) findTypeIIRoot(y block.Index) (block.Generator, bool) {
	ylen := e.b.Length(y)
	if ylen == 0 {
		return 0, false
	}
	ymax, err := e.support.LengthLess(ylen - 1)
	if err != nil {
		return 0, false
	}
	for g := 0; g < e.support.Rank(); g++ {
		gen := block.Generator(g)
		sy := e.b.Cross(gen, y)
		if sy < y && sy < ymax {
			return gen, true
		}
	}
	return 0, false
}

func (e *Engine) fillRow(y block.Index) error {
	if y == 0 {
		e.setRow(0, []block.Index{0}, []klpol.Index{klpol.OneIndex})
		e.setMuRows(0, nil, nil)
		return nil
	}

	prow, err := e.support.PrimitiveRow(y)
	if err != nil {
		return err
	}

	klvrow := make([]klpol.Poly, len(prow))
	s, ok := e.findTypeIIRoot(y)
	if ok {
		sy := e.b.Cross(s, y)
		for k := 0; k < len(prow)-1; k++ {
			z := prow[k]
			sz := e.b.Cross(s, z)
			pSzSy, err := e.klPolAt(sz, sy)
			if err != nil {
				return err
			}
			pzSy, err := e.klPolAt(z, sy)
			if err != nil {
				return err
			}
			if e.b.Length(z)-e.b.Length(sz) == 1 {
				// type I for z: (q+1)*P(sz,sy) + (q^2-q)*P(z,sy)
				v := klpol.AddScaled(klpol.Zero, 1, 0, pSzSy)
				v = klpol.AddScaled(v, 1, 1, pSzSy)
				v = klpol.AddScaled(v, 1, 2, pzSy)
				v = klpol.AddScaled(v, -1, 1, pzSy)
				klvrow[k] = v
			} else {
				// type II for z: P(sz,sy) + q^2*P(z,sy)
				klvrow[k] = klpol.AddScaled(pSzSy, 1, 2, pzSy)
			}
		}
	}
	klvrow[len(klvrow)-1] = klpol.One

	e.setRow(y, prow, nil) // commit prow first so muCorrection/klPolAt can self-reference
	if ok {
		if err := e.applyMuCorrection(klvrow, prow, y, s); err != nil {
			return err
		}
	}

	krow := make([]klpol.Index, len(prow))
	for i, p := range klvrow {
		idx, err := e.store.Insert(p)
		if err != nil {
			return err
		}
		krow[i] = idx
	}
	e.mu.Lock()
	e.krow[y] = krow
	e.mu.Unlock()

	mrow, mrowU, err := e.fillMuRow(y)
	if err != nil {
		return err
	}
	e.setMuRows(y, mrow, mrowU)
	return nil
}

// applyMuCorrection implements hKLContext::muCorrection: three correction
// terms driven off the mu and mu_ tables of w = cross(s,y), applied to the
// provisional klvrow entries for every primitive x != y.
func (e *Engine) applyMuCorrection(klvrow []klpol.Poly, prow []block.Index, y block.Index, s block.Generator) error {
	w := e.b.Cross(s, y)
	wlen := e.b.Length(w)
	psize := len(prow) - 1

	e.mu.RLock()
	muW := append([]MuDatum(nil), e.mrow[w]...)
	muUndW := append([]MuDatum(nil), e.mrow_[w]...)
	e.mu.RUnlock()

	for _, m := range muW {
		z := m.X
		coef := klpol.Coefficient(m.Coef)
		sz := e.b.Cross(s, z)
		zlen := e.b.Length(z)
		szlen := e.b.Length(sz)
		diff := int(wlen - zlen)

		switch {
		case szlen < zlen:
			deg := (diff + 1) / 2
			for j := 0; j < psize; j++ {
				sx := prow[j]
				x := e.b.Cross(s, sx)
				if e.b.Length(x) > zlen {
					break
				}
				pxz, err := e.klPolAt(x, z)
				if err != nil {
					return err
				}
				klvrow[j] = klpol.AddScaled(klvrow[j], -coef, deg, pxz)
			}
		case szlen == zlen+1:
			deg := (diff + 2) / 2
			for j := 0; j < psize; j++ {
				sx := prow[j]
				x := e.b.Cross(s, sx)
				if e.b.Length(x) > zlen {
					break
				}
				pxsz, err := e.klPolAt(x, sz)
				if err != nil {
					return err
				}
				klvrow[j] = klpol.AddScaled(klvrow[j], -coef, deg, pxsz)
			}
		}
	}

	for _, m := range muUndW {
		z := m.X
		coef := klpol.Coefficient(m.Coef)
		sz := e.b.Cross(s, z)
		zlen := e.b.Length(z)
		szlen := e.b.Length(sz)
		diff := int(wlen - zlen)
		if szlen > zlen {
			continue
		}
		deg := (diff + 2) / 2
		for j := 0; j < psize; j++ {
			sx := prow[j]
			x := e.b.Cross(s, sx)
			if e.b.Length(x) > zlen {
				break
			}
			pxz, err := e.klPolAt(x, z)
			if err != nil {
				return err
			}
			if pxz.IsZero() {
				continue
			}
			klvrow[j] = klpol.AddScaled(klvrow[j], -coef, deg, pxz)
		}
	}

	for _, m := range muW {
		z := m.X
		zlen := e.b.Length(z)
		if e.b.Length(e.b.Cross(s, z)) > zlen {
			continue
		}
		e.mu.RLock()
		muZ := append([]MuDatum(nil), e.mrow[z]...)
		e.mu.RUnlock()
		for _, m2 := range muZ {
			zy := m2.X
			zylen := e.b.Length(zy)
			if e.b.Length(e.b.Cross(s, zy)) > zylen {
				continue
			}
			muprod := klpol.Coefficient(m2.Coef) * klpol.Coefficient(m.Coef)
			diff := int(wlen - zylen)
			deg := (diff + 2) / 2
			for k := 0; k < psize; k++ {
				sx := prow[k]
				x := e.b.Cross(s, sx)
				if e.b.Length(x) > zylen {
					break
				}
				pxzy, err := e.klPolAt(x, zy)
				if err != nil {
					return err
				}
				if pxzy.IsZero() {
					continue
				}
				klvrow[k] = klpol.AddScaled(klvrow[k], muprod, deg, pxzy)
			}
		}
	}

	return nil
}

// fillMuRow implements hKLContext::fillMuRow: for each primitive x != y,
// inspect P_{x,y} and cross(s,x)'s length-one-shorter neighbours, and
// record the nonzero leading coefficients into mu (odd length gap) or mu_
// (even length gap, guarded by a seen-set against duplicate insertion).
func (e *Engine) fillMuRow(y block.Index) ([]MuDatum, []MuDatum, error) {
	e.mu.RLock()
	prow := e.prow[y]
	e.mu.RUnlock()

	ylen := e.b.Length(y)
	psize := len(prow) - 1
	seenU := bitset.NewSet(e.support.Size())

	var mrow, mrowU []MuDatum

	for i := 0; i < psize; i++ {
		x := prow[i]
		xlen := e.b.Length(x)
		d := int(ylen-xlen-1) / 2

		if (ylen-xlen)%2 == 1 {
			for g := 0; g < e.support.Rank(); g++ {
				z := e.b.Cross(block.Generator(g), x)
				if seenU.Test(int(z)) {
					continue
				}
				if e.b.Length(z) != xlen-1 {
					continue
				}
				p, err := e.klPolAt(z, y)
				if err != nil {
					return nil, nil, err
				}
				if p.Degree() == d {
					mrowU = append(mrowU, MuDatum{X: z, Coef: int32(p.At(d))})
					seenU.Set(int(z))
				}
			}
			p, err := e.klPolAt(x, y)
			if err != nil {
				return nil, nil, err
			}
			if p.Degree() == d {
				mrow = append(mrow, MuDatum{X: x, Coef: int32(p.At(d))})
			}
		} else {
			if seenU.Test(int(x)) {
				continue
			}
			p, err := e.klPolAt(x, y)
			if err != nil {
				return nil, nil, err
			}
			if p.Degree() == d {
				mrowU = append(mrowU, MuDatum{X: x, Coef: int32(p.At(d))})
				seenU.Set(int(x))
			}
		}
	}

	for g := 0; g < e.support.Rank(); g++ {
		x := e.b.Cross(block.Generator(g), y)
		xlen := e.b.Length(x)
		switch ylen - xlen {
		case 1:
			p, err := e.klPolAt(x, y)
			if err != nil {
				return nil, nil, err
			}
			if c := p.At(0); c != 0 {
				mrow = append(mrow, MuDatum{X: x, Coef: int32(c)})
			}
		case 2:
			if seenU.Test(int(x)) {
				continue
			}
			p, err := e.klPolAt(x, y)
			if err != nil {
				return nil, nil, err
			}
			if c := p.At(0); c != 0 {
				mrowU = append(mrowU, MuDatum{X: x, Coef: int32(c)})
				seenU.Set(int(x))
			}
		}
	}

	return mrow, mrowU, nil
}

func (e *Engine) setRow(y block.Index, prow []block.Index, krow []klpol.Index) {
	e.mu.Lock()
	e.prow[y] = prow
	e.krow[y] = krow
	e.mu.Unlock()
}

func (e *Engine) setMuRows(y block.Index, mrow, mrowU []MuDatum) {
	e.mu.Lock()
	e.mrow[y] = mrow
	e.mrow_[y] = mrowU
	e.mu.Unlock()
}

// klPolAt is the shared implementation of KLPol: it requires only that row
// y has been committed, not that the whole engine is filled.
func (e *Engine) klPolAt(x, y block.Index) (klpol.Poly, error) {
	if x < 0 || x > y {
		return klpol.Zero, nil
	}
	if int(y) < 0 || int(y) >= e.support.Size() {
		return klpol.Poly{}, ErrIndexOutOfRange
	}

	e.mu.RLock()
	row := e.prow[y]
	krow := e.krow[y]
	e.mu.RUnlock()
	if row == nil {
		return klpol.Poly{}, ErrNotFilled
	}

	d, err := e.support.DescentSet(y)
	if err != nil {
		return klpol.Poly{}, err
	}
	px, err := e.support.Primitivize(x, d)
	if err != nil {
		return klpol.Poly{}, err
	}
	if px > y {
		return klpol.Zero, nil
	}

	i := sort.Search(len(row), func(k int) bool { return row[k] >= px })
	if i >= len(row) || row[i] != px || krow == nil {
		return klpol.Zero, nil
	}
	return e.store.Get(krow[i])
}

// KLPol returns P_{x,y}.
func (e *Engine) KLPol(x, y block.Index) (klpol.Poly, error) {
	return e.klPolAt(x, y)
}

// Mu returns the signed mu(x,y) from the odd-gap table, 0 if absent.
func (e *Engine) Mu(x, y block.Index) (int32, error) {
	if int(y) < 0 || int(y) >= e.support.Size() {
		return 0, ErrIndexOutOfRange
	}
	e.mu.RLock()
	row := e.prow[y]
	mrow := e.mrow[y]
	e.mu.RUnlock()
	if row == nil {
		return 0, ErrNotFilled
	}
	for _, m := range mrow {
		if m.X == x {
			return m.Coef, nil
		}
	}
	return 0, nil
}

// MuUnderscore returns the signed mu_(x,y) from the even-gap table, 0 if
// absent.
func (e *Engine) MuUnderscore(x, y block.Index) (int32, error) {
	if int(y) < 0 || int(y) >= e.support.Size() {
		return 0, ErrIndexOutOfRange
	}
	e.mu.RLock()
	row := e.prow[y]
	mrowU := e.mrow_[y]
	e.mu.RUnlock()
	if row == nil {
		return 0, ErrNotFilled
	}
	for _, m := range mrowU {
		if m.X == x {
			return m.Coef, nil
		}
	}
	return 0, nil
}

// PrimitiveRow returns a copy of prow[y].
func (e *Engine) PrimitiveRow(y block.Index) ([]block.Index, error) {
	if int(y) < 0 || int(y) >= e.support.Size() {
		return nil, ErrIndexOutOfRange
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.prow[y] == nil {
		return nil, ErrNotFilled
	}
	out := make([]block.Index, len(e.prow[y]))
	copy(out, e.prow[y])
	return out, nil
}
