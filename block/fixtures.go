package block

// DemoSingleton, DemoA1Split, and DemoA2Split are small, hand-built
// blocks exposed for the CLI (cmd/atlaskl) and for callers without
// access to a real root-datum/KGB construction pipeline — building one
// from actual Lie theory data is explicitly out of scope for this
// module (spec.md §1's Non-goals). They are the production-exported
// counterparts of the per-package test fixtures (block_test, kl_test,
// wgraph_test, persist_test each duplicate an equivalent local copy).

// DemoSingleton returns the trivial N=1, r=0 block: spec.md §8 scenario 1.
func DemoSingleton() *Graph {
	b := NewBuilder(0)
	b.AddElement(0)
	g, err := b.Build()
	if err != nil {
		panic(err)
	}
	return g
}

// DemoA1Split returns the N=2, r=1 split real form of SL(2,R): spec.md
// §8 scenario 2.
func DemoA1Split() *Graph {
	b := NewBuilder(1)
	x0 := b.AddElement(0)
	x1 := b.AddElement(1)

	b.SetDescent(0, x0, ImaginaryTypeI)
	b.SetCayley(0, x0, x1, Undef)

	b.SetDescent(0, x1, RealTypeI)
	b.SetCross(0, x1, x0)
	b.SetInverseCayley(0, x1, x0, Undef)

	g, err := b.Build()
	if err != nil {
		panic(err)
	}
	return g
}

// DemoA2Split returns the 6-element split real form of SL(3,R),
// isomorphic to the Bruhat order of the A2 Weyl group: spec.md §8
// scenario 3.
func DemoA2Split() *Graph {
	b := NewBuilder(2)
	e := b.AddElement(0)
	s0 := b.AddElement(1)
	s1 := b.AddElement(1)
	s0s1 := b.AddElement(2)
	s1s0 := b.AddElement(2)
	w0 := b.AddElement(3)

	set := func(s Generator, lo, hi Index) {
		b.SetDescent(s, lo, ImaginaryTypeI)
		b.SetCayley(s, lo, hi, Undef)
		b.SetDescent(s, hi, RealTypeI)
		b.SetCross(s, hi, lo)
		b.SetInverseCayley(s, hi, lo, Undef)
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
