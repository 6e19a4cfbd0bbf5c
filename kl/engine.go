package kl

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/atlas-klv/klv/block"
	"github.com/atlas-klv/klv/klpol"
	"github.com/atlas-klv/klv/klsupport"
)

// MuDatum is one entry of a mu-row: a primitive x together with the
// leading coefficient of P_{x,y} (spec.md §4.5 step 7).
type MuDatum struct {
	X    block.Index
	Coef int32
}

// Engine is the untwisted KL engine of spec.md §4.5. It borrows a filled
// klsupport.Support and writes every distinct non-zero polynomial it
// discovers into the given klpol.Store.
//
// Fill drives a single owning goroutine through every row in ascending
// index order; the optional per-row parallelism spec.md §5 permits (the
// per-primitive recursion terms and the per-z mu-correction pass are
// independent across x) is not exploited here — the teacher's graph
// algorithms are likewise single-threaded per traversal, and a block's
// widest row is small enough that the extra goroutine bookkeeping would
// not pay for itself. KLPol/Mu/PrimitiveRow/MuRow may be called from other
// goroutines while Fill is in flight; they read each row under the
// engine's RWMutex and fail with ErrNotFilled for any row not yet written.
type Engine struct {
	mu sync.RWMutex

	support *klsupport.Support
	b       block.Block
	store   *klpol.Store

	prow  [][]block.Index
	krow  [][]klpol.Index
	murow [][]MuDatum

	filled bool
}

// New returns an unfilled Engine over a filled support and a store shared
// with no other engine (spec.md §5: stores are never shared across block
// boundaries).
func New(support *klsupport.Support, store *klpol.Store) (*Engine, error) {
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
		murow:   make([][]MuDatum, size),
	}, nil
}

// Size returns N.
func (e *Engine) Size() int { return e.support.Size() }

// IsFilled reports whether Fill has completed.
func (e *Engine) IsFilled() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.filled
}

// Fill populates prow, kl and mu for every y in [0,N), in ascending index
// order, per the row-fill algorithm of spec.md §4.5. ctx is checked
// between rows; a cancelled context leaves every row up to the last
// completed y valid and queryable.
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

func (e *Engine) fillRow(y block.Index) error {
	if y == 0 {
		e.setRow(0, []block.Index{0}, []klpol.Index{klpol.OneIndex}, nil)
		return nil
	}

	s, ok := e.findDirectDescent(y)
	if !ok {
		// Extremal descent policy case (a) of spec.md §4.5: every descent
		// of y is ImaginaryCompact or RealTypeII, so no direct recursion
		// is available. spec.md §9 explicitly licenses treating this as
		// "row is trivial" pending verification against a representative
		// block; this engine applies that resolution uniformly rather
		// than attempting cases (b)/(c).
		e.setRow(y, []block.Index{y}, []klpol.Index{klpol.OneIndex}, nil)
		return nil
	}

	sy := e.b.Cross(s, y)
	prow, err := e.support.PrimitiveRow(y)
	if err != nil {
		return err
	}

	provisional := make([]klpol.Poly, len(prow))
	for i, x := range prow {
		if x == y {
			provisional[i] = klpol.One
			continue
		}
		p, err := e.directTerm(s, x, sy)
		if err != nil {
			return err
		}
		provisional[i] = p
	}

	if err := e.applyMuCorrection(s, y, sy, prow, provisional); err != nil {
		return err
	}

	krow := make([]klpol.Index, len(prow))
	for i, p := range provisional {
		for _, c := range p.Coeffs {
			if c < 0 {
				return fmt.Errorf("%w: x=%d y=%d", ErrNegativeCoefficient, prow[i], y)
			}
		}
		idx, err := e.store.Insert(p)
		if err != nil {
			return err
		}
		krow[i] = idx
	}

	// Commit prow/krow first (mu-row construction below queries this very
	// row through klPolAt, which needs row y to already be readable — in
	// particular for an x that primitivises all the way up to y itself,
	// such as cross(s,y), which spec.md §4.5 step 7's second pass needs
	// but which never appears as a distinct entry of prow[y]).
	e.setRow(y, prow, krow, nil)

	murow, err := e.buildMuRow(y)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.murow[y] = murow
	e.mu.Unlock()
	return nil
}

// findDirectDescent returns the first generator, ascending, of status
// ComplexDescent or RealTypeI at y.
func (e *Engine) findDirectDescent(y block.Index) (block.Generator, bool) {
	for g := 0; g < e.support.Rank(); g++ {
		gen := block.Generator(g)
		if e.b.DescentValue(gen, y).IsDirectRecursion() {
			return gen, true
		}
	}
	return 0, false
}

// directTerm computes the provisional (pre mu-correction) value of
// P_{x,y} from the relative status of s at x, following spec.md §4.5
// step 3. sy is cross(s,y); x is primitive with respect to y and != y, so
// by construction the status of s at x can only be ComplexDescent,
// RealTypeI, RealTypeII, ImaginaryCompact, or ImaginaryTypeII (the
// ascent statuses excluded from the primitive row by klsupport.PrimitiveRow).
func (e *Engine) directTerm(s block.Generator, x, sy block.Index) (klpol.Poly, error) {
	switch e.b.DescentValue(s, x) {
	case block.ImaginaryTypeII:
		c := e.b.Cayley(s, x)
		pxsy, err := e.klPolAt(x, sy)
		if err != nil {
			return klpol.Poly{}, err
		}
		pc1, err := e.klPolAt(c.First, sy)
		if err != nil {
			return klpol.Poly{}, err
		}
		pc2, err := e.klPolAt(c.Second, sy)
		if err != nil {
			return klpol.Poly{}, err
		}
		// (q-1)*P(x,sy) + P(c1,sy) + P(c2,sy)
		v := klpol.AddScaled(klpol.Zero, -1, 0, pxsy)
		v = klpol.AddScaled(v, 1, 1, pxsy)
		v = klpol.AddScaled(v, 1, 0, pc1)
		v = klpol.AddScaled(v, 1, 0, pc2)
		return v, nil

	case block.ImaginaryCompact:
		// cross is the identity here: x has no down-partner under s, so
		// the only contribution is the ascent-shaped q*P(x,sy) term.
		pxsy, err := e.klPolAt(x, sy)
		if err != nil {
			return klpol.Poly{}, err
		}
		return klpol.AddScaled(klpol.Zero, 1, 1, pxsy), nil

	default: // ComplexDescent, RealTypeI, RealTypeII: sx = cross(s,x) < x
		sx := e.b.Cross(s, x)
		pxsy, err := e.klPolAt(x, sy)
		if err != nil {
			return klpol.Poly{}, err
		}
		psxsy, err := e.klPolAt(sx, sy)
		if err != nil {
			return klpol.Poly{}, err
		}
		// P(sx,sy) + q*P(x,sy): the unscaled term always attaches to the
		// shorter of {x,sx} (here sx, since s is a descent of x) — see
		// DESIGN.md's "Open Question decisions" entry on directTerm for why this reading of
		// spec.md §4.5 step 3 was chosen over its literal "q on sx"
		// phrasing (the latter fails the A2 split scenario of §8).
		return klpol.AddScaled(psxsy, 1, 1, pxsy), nil
	}
}

// applyMuCorrection implements spec.md §4.5 step 4: for every (z, coef) in
// the mu-row of sy with an odd length gap to sy, and s a descent of z as
// well, subtract coef*q^((length(y)-length(z))/2)*P(x,z) from every
// provisional[i] whose x has length <= length(z).
func (e *Engine) applyMuCorrection(s block.Generator, y, sy block.Index, prow []block.Index, provisional []klpol.Poly) error {
	e.mu.RLock()
	muSyRow := e.murow[sy]
	e.mu.RUnlock()

	ly := e.b.Length(y)
	lsy := e.b.Length(sy)

	for _, m := range muSyRow {
		z := m.X
		lz := e.b.Length(z)
		if (lsy-lz)%2 == 0 {
			continue
		}
		if !e.b.DescentValue(s, z).IsDescent() {
			continue
		}
		shift := int(ly-lz) / 2
		coef := klpol.Coefficient(m.Coef)
		for i, x := range prow {
			if e.b.Length(x) > lz {
				break
			}
			pxz, err := e.klPolAt(x, z)
			if err != nil {
				return err
			}
			if pxz.IsZero() {
				continue
			}
			provisional[i] = klpol.AddScaled(provisional[i], -coef, shift, pxz)
		}
	}
	return nil
}

// buildMuRow implements spec.md §4.5 step 7. It runs after prow/krow for y
// have already been committed, so it reads P_{x,y} through the general
// KLPol query rather than the provisional/prow arrays of fillRow — that
// query's primitivisation step is exactly what lets the second pass find
// an x (such as cross(s,y)) that collapses onto y itself and therefore
// never appears as a distinct entry of prow[y].
func (e *Engine) buildMuRow(y block.Index) ([]MuDatum, error) {
	e.mu.RLock()
	prow := e.prow[y]
	e.mu.RUnlock()

	ly := e.b.Length(y)
	seen := make(map[block.Index]bool, len(prow))
	var mrow []MuDatum

	for _, x := range prow {
		if x == y {
			continue
		}
		diff := ly - e.b.Length(x)
		if diff%2 == 0 {
			continue
		}
		d := int(diff-1) / 2
		p, err := e.klPolAt(x, y)
		if err != nil {
			return nil, err
		}
		if c := p.At(d); c != 0 {
			mrow = append(mrow, MuDatum{X: x, Coef: int32(c)})
			seen[x] = true
		}
	}

	for t := 0; t < e.support.Rank(); t++ {
		z := e.b.Cross(block.Generator(t), y)
		if z == y || seen[z] || e.b.Length(z) != ly-1 {
			continue
		}
		p, err := e.klPolAt(z, y)
		if err != nil {
			return nil, err
		}
		if c := p.At(0); c != 0 {
			mrow = append(mrow, MuDatum{X: z, Coef: int32(c)})
			seen[z] = true
		}
	}

	return mrow, nil
}

func (e *Engine) setRow(y block.Index, prow []block.Index, krow []klpol.Index, murow []MuDatum) {
	e.mu.Lock()
	e.prow[y] = prow
	e.krow[y] = krow
	e.murow[y] = murow
	e.mu.Unlock()
}

// klPolAt is the shared implementation of KLPol: it requires only that
// row y has been committed, not that the whole engine is filled, so that
// both external callers and the recursion itself can consult any
// already-completed row.
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
	if i >= len(row) || row[i] != px {
		return klpol.Zero, nil
	}
	return e.store.Get(krow[i])
}

// KLPol returns P_{x,y} (spec.md §4.5's "row lookup" procedure): zero if
// x > y (after primitivising x against descent(y)), otherwise the stored
// polynomial at x's position in prow[y].
func (e *Engine) KLPol(x, y block.Index) (klpol.Poly, error) {
	return e.klPolAt(x, y)
}

// Mu returns mu(x,y), 0 if the pair has no mu entry.
func (e *Engine) Mu(x, y block.Index) (int32, error) {
	if int(y) < 0 || int(y) >= e.support.Size() {
		return 0, ErrIndexOutOfRange
	}
	e.mu.RLock()
	row := e.prow[y]
	murow := e.murow[y]
	e.mu.RUnlock()
	if row == nil {
		return 0, ErrNotFilled
	}
	for _, m := range murow {
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

// MuRow returns a copy of mu[y].
func (e *Engine) MuRow(y block.Index) ([]MuDatum, error) {
	if int(y) < 0 || int(y) >= e.support.Size() {
		return nil, ErrIndexOutOfRange
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.prow[y] == nil {
		return nil, ErrNotFilled
	}
	out := make([]MuDatum, len(e.murow[y]))
	copy(out, e.murow[y])
	return out, nil
}
