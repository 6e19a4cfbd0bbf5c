package kl_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlas-klv/klv/block"
	"github.com/atlas-klv/klv/kl"
	"github.com/atlas-klv/klv/klpol"
	"github.com/atlas-klv/klv/klsupport"
)

// buildSingleton builds the N=1, r=0 block of spec.md §8 scenario 1: a
// single element, no generators, so every row is trivially its own row.
func buildSingleton() *block.Graph {
	b := block.NewBuilder(0)
	b.AddElement(0)
	g, err := b.Build()
	if err != nil {
		panic(err)
	}
	return g
}

// buildA1Split is block/fixtures_test.go's fixture, duplicated locally
// since kl_test cannot import an unexported test helper across packages.
func buildA1Split() *block.Graph {
	b := block.NewBuilder(1)
	x0 := b.AddElement(0)
	x1 := b.AddElement(1)

	b.SetDescent(0, x0, block.ImaginaryTypeI)
	b.SetCayley(0, x0, x1, block.Undef)

	b.SetDescent(0, x1, block.RealTypeI)
	b.SetCross(0, x1, x0)
	b.SetInverseCayley(0, x1, x0, block.Undef)

	g, err := b.Build()
	if err != nil {
		panic(err)
	}
	return g
}

// buildA2Split is block/fixtures_test.go's fixture, duplicated locally.
func buildA2Split() *block.Graph {
	b := block.NewBuilder(2)
	e := b.AddElement(0)
	s0 := b.AddElement(1)
	s1 := b.AddElement(1)
	s0s1 := b.AddElement(2)
	s1s0 := b.AddElement(2)
	w0 := b.AddElement(3)

	set := func(s block.Generator, lo, hi block.Index) {
		b.SetDescent(s, lo, block.ImaginaryTypeI)
		b.SetCayley(s, lo, hi, block.Undef)
		b.SetDescent(s, hi, block.RealTypeI)
		b.SetCross(s, hi, lo)
		b.SetInverseCayley(s, hi, lo, block.Undef)
	}

	set(0, e, s0)
	set(1, e, s1)
	set(1, s0, s0s1)
	set(0, s1, s1s0)
	set(0, s0s1, w0)
	set(1, s1s0, w0)

	g, err := b.Build()
	if err != nil {
		panic(err)
	}
	return g
}

func newFilledEngine(t *testing.T, g *block.Graph) (*kl.Engine, *klpol.Store) {
	t.Helper()
	sup, err := klsupport.New(g)
	require.NoError(t, err)
	require.NoError(t, sup.Fill())

	store := klpol.NewStore()

	e, err := kl.New(sup, store)
	require.NoError(t, err)
	require.NoError(t, e.Fill(context.Background()))
	return e, store
}

func TestEngine_NilArgs(t *testing.T) {
	store := klpol.NewStore()
	_, err := kl.New(nil, store)
	assert.ErrorIs(t, err, kl.ErrNilSupport)

	sup, err := klsupport.New(buildSingleton())
	require.NoError(t, err)
	require.NoError(t, sup.Fill())
	_, err = kl.New(sup, nil)
	assert.ErrorIs(t, err, kl.ErrNilStore)
}

func TestEngine_Singleton(t *testing.T) {
	e, _ := newFilledEngine(t, buildSingleton())

	p, err := e.KLPol(0, 0)
	require.NoError(t, err)
	assert.Equal(t, klpol.One, p)

	mu, err := e.Mu(0, 0)
	require.NoError(t, err)
	assert.Equal(t, int32(0), mu)

	row, err := e.PrimitiveRow(0)
	require.NoError(t, err)
	assert.Equal(t, []block.Index{0}, row)
}

func TestEngine_AlreadyFilled(t *testing.T) {
	e, _ := newFilledEngine(t, buildSingleton())
	assert.ErrorIs(t, e.Fill(context.Background()), kl.ErrAlreadyFilled)
}

func TestEngine_A1Split(t *testing.T) {
	// spec.md §8 scenario 2: klPol(0,1)=1, klPol(1,1)=1, mu(0,1)=1.
	e, _ := newFilledEngine(t, buildA1Split())

	p01, err := e.KLPol(0, 1)
	require.NoError(t, err)
	assert.Equal(t, klpol.One, p01)

	p11, err := e.KLPol(1, 1)
	require.NoError(t, err)
	assert.Equal(t, klpol.One, p11)

	mu01, err := e.Mu(0, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(1), mu01)

	p00, err := e.KLPol(0, 0)
	require.NoError(t, err)
	assert.Equal(t, klpol.One, p00)
}

func TestEngine_A2Split(t *testing.T) {
	// spec.md §8 scenario 3: every klPol(x,y) is 0 or 1 (never a polynomial
	// of degree > 0), and every mu value is 0 or 1 — the classical fact
	// that Kazhdan-Lusztig polynomials for a dihedral Coxeter group are
	// trivial. A2's split block is isomorphic to its own Weyl group, so
	// the same fact applies here.
	e, _ := newFilledEngine(t, buildA2Split())

	for y := block.Index(0); y < 6; y++ {
		for x := block.Index(0); x <= y; x++ {
			p, err := e.KLPol(x, y)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(p.Coeffs), 1, "klPol(%d,%d) has degree > 0: %+v", x, y, p)
			for _, c := range p.Coeffs {
				assert.Contains(t, []klpol.Coefficient{0, 1}, c, "klPol(%d,%d) has a coefficient outside {0,1}", x, y)
			}
			mu, err := e.Mu(x, y)
			require.NoError(t, err)
			assert.Contains(t, []int32{0, 1}, mu, "mu(%d,%d) outside {0,1}", x, y)
		}
	}

	// w0 = s0s1s0 is the longest element; every other element is below it.
	for x := block.Index(0); x < 5; x++ {
		p, err := e.KLPol(x, 5)
		require.NoError(t, err)
		assert.Equal(t, klpol.One, p, "klPol(%d,w0) should be 1, every element is <= w0", x)
	}
}

func TestEngine_NotFilledBeforeFill(t *testing.T) {
	sup, err := klsupport.New(buildSingleton())
	require.NoError(t, err)
	require.NoError(t, sup.Fill())
	store := klpol.NewStore()
	e, err := kl.New(sup, store)
	require.NoError(t, err)

	_, err = e.KLPol(0, 0)
	assert.ErrorIs(t, err, kl.ErrNotFilled)
	_, err = e.Mu(0, 0)
	assert.ErrorIs(t, err, kl.ErrNotFilled)
	_, err = e.PrimitiveRow(0)
	assert.ErrorIs(t, err, kl.ErrNotFilled)
	_, err = e.MuRow(0)
	assert.ErrorIs(t, err, kl.ErrNotFilled)
}

func TestEngine_IndexOutOfRange(t *testing.T) {
	e, _ := newFilledEngine(t, buildSingleton())
	_, err := e.KLPol(0, 1)
	assert.ErrorIs(t, err, kl.ErrIndexOutOfRange)
	_, err = e.Mu(0, 1)
	assert.ErrorIs(t, err, kl.ErrIndexOutOfRange)
}
