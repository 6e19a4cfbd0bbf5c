package klpol

import "strconv"

// Coefficient is a single polynomial coefficient. The untwisted engine
// (package kl) only ever inserts non-negative values; the twisted engine
// (package hkl) may insert negative ones (spec.md §4.6).
type Coefficient int32

// Poly is a polynomial in one indeterminate q, represented by its
// valuation (lowest non-zero-coefficient degree) and the dense slice of
// coefficients from Valuation up to Valuation+len(Coeffs)-1 inclusive.
// The zero polynomial has Coeffs == nil.
type Poly struct {
	Valuation int
	Coeffs    []Coefficient
}

// Zero is the zero polynomial.
var Zero = Poly{}

// One is the constant polynomial 1.
var One = Poly{Valuation: 0, Coeffs: []Coefficient{1}}

// IsZero reports whether p is the zero polynomial.
func (p Poly) IsZero() bool {
	return len(p.Coeffs) == 0
}

// Degree returns the degree of p, or -1 for the zero polynomial.
func (p Poly) Degree() int {
	if p.IsZero() {
		return -1
	}
	return p.Valuation + len(p.Coeffs) - 1
}

// At returns the coefficient of q^i, 0 outside [Valuation, Degree].
func (p Poly) At(i int) Coefficient {
	if i < p.Valuation || i > p.Degree() {
		return 0
	}
	return p.Coeffs[i-p.Valuation]
}

// normalize trims leading and trailing zero coefficients so that equal
// polynomial values always produce an equal Poly, which the hash-consing
// contract of spec.md §4.4 depends on.
func normalize(p Poly) Poly {
	lo, hi := 0, len(p.Coeffs)-1
	for lo <= hi && p.Coeffs[lo] == 0 {
		lo++
	}
	if lo > hi {
		return Zero
	}
	for hi >= lo && p.Coeffs[hi] == 0 {
		hi--
	}
	out := make([]Coefficient, hi-lo+1)
	copy(out, p.Coeffs[lo:hi+1])
	return Poly{Valuation: p.Valuation + lo, Coeffs: out}
}

// AddScaled returns p + c*q^shift*other, with the result normalized. It
// is the single building block the row-fill recursions of packages kl and
// hkl compose to build up a provisional polynomial: every recursion term
// and every mu-correction term is one AddScaled call.
func AddScaled(p Poly, c Coefficient, shift int, other Poly) Poly {
	if c == 0 || other.IsZero() {
		return p
	}
	lo := other.Valuation + shift
	hi := other.Degree() + shift
	if !p.IsZero() {
		if p.Valuation < lo {
			lo = p.Valuation
		}
		if p.Degree() > hi {
			hi = p.Degree()
		}
	}
	out := make([]Coefficient, hi-lo+1)
	for i := range out {
		out[i] = p.At(lo + i)
	}
	for i := other.Valuation; i <= other.Degree(); i++ {
		out[i+shift-lo] += c * other.At(i)
	}
	return normalize(Poly{Valuation: lo, Coeffs: out})
}

// key returns a canonical, collision-free string encoding of p suitable
// for value-based hash-consing (spec.md §4.4 requires the hash be
// value-based, not address-based).
func (p Poly) key() string {
	if p.IsZero() {
		return "Z"
	}
	buf := make([]byte, 0, 4+6*len(p.Coeffs))
	buf = append(buf, 'V')
	buf = strconv.AppendInt(buf, int64(p.Valuation), 10)
	for _, c := range p.Coeffs {
		buf = append(buf, ',')
		buf = strconv.AppendInt(buf, int64(c), 10)
	}
	return string(buf)
}
