package block

import "fmt"

// Index denotes a block element, an integer in [0, N). Undef is the
// sentinel "no such element" value used by Cayley transforms that admit
// no second image and by real-type ascent lookups that fail.
type Index int32

// Undef marks the absence of a block element.
const Undef Index = -1

// Generator denotes a simple-reflection generator, an integer in [0, r)
// where r is the semisimple rank.
type Generator int16

// Length is a non-negative integer length in the block's partial order.
type Length int32

// DescentStatus is the eight-valued per-(generator, element) classification
// of spec.md §3. Its numeric values are load-bearing: IsDescent and
// IsDirectRecursion are single bitwise tests against them, exactly as the
// original C++ enum's bit layout was designed (sources/gkmod/descents.h).
type DescentStatus uint8

const (
	ComplexAscent     DescentStatus = 0
	RealNonparity     DescentStatus = 1
	ImaginaryTypeI    DescentStatus = 2
	ImaginaryTypeII   DescentStatus = 3
	ImaginaryCompact  DescentStatus = 4
	ComplexDescent    DescentStatus = 5
	RealTypeII        DescentStatus = 6
	RealTypeI         DescentStatus = 7
)

// IsDescent reports whether v is a descent (values 4-7).
func (v DescentStatus) IsDescent() bool {
	return v&4 != 0
}

// IsDirectRecursion reports whether v admits direct recursion (ComplexDescent
// or RealTypeI).
func (v DescentStatus) IsDirectRecursion() bool {
	return v&5 == 5
}

// IsGoodAscent reports whether v is an ascent that is not ImaginaryTypeII
// (the only ascent kind excluded from the good-ascent set, since it admits
// no easy ascent recursion).
func (v DescentStatus) IsGoodAscent() bool {
	return !v.IsDescent() && v != ImaginaryTypeII
}

// String renders v using the names from spec.md §3.
func (v DescentStatus) String() string {
	switch v {
	case ComplexAscent:
		return "ComplexAscent"
	case RealNonparity:
		return "RealNonparity"
	case ImaginaryTypeI:
		return "ImaginaryTypeI"
	case ImaginaryTypeII:
		return "ImaginaryTypeII"
	case ImaginaryCompact:
		return "ImaginaryCompact"
	case ComplexDescent:
		return "ComplexDescent"
	case RealTypeII:
		return "RealTypeII"
	case RealTypeI:
		return "RealTypeI"
	default:
		return fmt.Sprintf("DescentStatus(%d)", uint8(v))
	}
}

// CayleyPair is the (one or two element) image of a Cayley transform.
// Second is Undef when the generator admits only a single image
// (ImaginaryTypeI); both First and Second are Undef when Cayley is not
// defined for the (generator, element) pair at all.
type CayleyPair struct {
	First  Index
	Second Index
}

// IsDefined reports whether First carries an actual image.
func (p CayleyPair) IsDefined() bool {
	return p.First != Undef
}

// IsDouble reports whether both images are defined (ImaginaryTypeII).
func (p CayleyPair) IsDouble() bool {
	return p.First != Undef && p.Second != Undef
}

// Block is the read-only view of a block consumed by the KLV engine
// (spec.md §4.1). Implementations are borrowed for the whole lifetime of
// any klsupport.Support/kl.Engine built on top of them and must not mutate
// once fill begins.
type Block interface {
	// Size returns N, the number of block elements.
	Size() int
	// Rank returns r, the semisimple rank (number of generators).
	Rank() int
	// Length returns the length of block element x.
	Length(x Index) Length
	// Cross returns the cross action of generator s at element x. It is
	// always defined; it is the identity when the descent status is
	// ImaginaryCompact or RealNonparity, and strictly length-decreasing
	// when the status is ComplexDescent.
	Cross(s Generator, x Index) Index
	// Cayley returns the Cayley transform image(s) of generator s at x.
	// Defined exactly when DescentValue(s,x) is ImaginaryTypeI (single
	// image, Second == Undef) or ImaginaryTypeII (both images defined).
	Cayley(s Generator, x Index) CayleyPair
	// InverseCayley returns the preimage(s) of x under the Cayley
	// transform for generator s — defined exactly when DescentValue(s,x)
	// is RealTypeI or RealTypeII.
	InverseCayley(s Generator, x Index) CayleyPair
	// DescentValue returns the descent status of generator s at element x.
	DescentValue(s Generator, x Index) DescentStatus
}
