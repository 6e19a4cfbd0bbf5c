package block_test

import "github.com/atlas-klv/klv/block"

// buildA1Split builds the N=2, r=1 split real form of SL(2,R) from
// spec.md §8 scenario 2: a single non-compact imaginary generator whose
// Cayley transform has a single image, and whose inverse is a single real
// type I descent.
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

// buildA2Split builds a 6-element split real form of SL(3,R): the Bruhat
// order of the Weyl group of type A2 (the split block equals the Weyl
// group for a split real form), with simple generators s=0,1. Elements
// are indexed by length 0..3 as w0=e, w1=s0, w2=s1, w3=s0s1, w4=s1s0,
// w5=s0s1s0=s1s0s1 (the longest element).
func buildA2Split() *block.Graph {
	b := block.NewBuilder(2)
	e := b.AddElement(0)
	s0 := b.AddElement(1)
	s1 := b.AddElement(1)
	s0s1 := b.AddElement(2)
	s1s0 := b.AddElement(2)
	w0 := b.AddElement(3)

	// every generator is ImaginaryTypeI going up / RealTypeI coming down,
	// since the split form's block is isomorphic to the Weyl group with
	// every reflection realised as a Cayley transform.
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
