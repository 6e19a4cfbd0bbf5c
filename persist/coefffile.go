package persist

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/atlas-klv/klv/klpol"
)

// WriteCoeffFile writes the polynomial store's serialisation of spec.md
// §6: the number of polynomials, then for each (in insertion order) its
// degree (int32, -1 for the zero polynomial), valuation (int32), and
// dense coefficients (int32 each).
func WriteCoeffFile(w io.Writer, store *klpol.Store) error {
	if store == nil {
		return ErrNilArgument
	}
	bw := bufio.NewWriter(w)

	n := store.Len()
	if err := binary.Write(bw, binary.LittleEndian, uint32(n)); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		p, err := store.Get(klpol.Index(i))
		if err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, int32(p.Degree())); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, int32(p.Valuation)); err != nil {
			return err
		}
		for _, c := range p.Coeffs {
			if err := binary.Write(bw, binary.LittleEndian, int32(c)); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// ReadCoeffFile reconstructs a klpol.Store by re-inserting every
// polynomial in the order it was written. Insert is idempotent on value
// (spec.md §4.4), and the zero/one polynomials are always the first two
// entries written, so the reconstructed store's indices exactly match
// the original.
func ReadCoeffFile(r io.Reader, opts ...klpol.Option) (*klpol.Store, error) {
	br := bufio.NewReader(r)

	var n uint32
	if err := binary.Read(br, binary.LittleEndian, &n); err != nil {
		return nil, ErrTruncated
	}

	store := klpol.NewStore(opts...)
	for i := uint32(0); i < n; i++ {
		var degree, valuation int32
		if err := binary.Read(br, binary.LittleEndian, &degree); err != nil {
			return nil, ErrTruncated
		}
		if err := binary.Read(br, binary.LittleEndian, &valuation); err != nil {
			return nil, ErrTruncated
		}
		if degree < 0 {
			if _, err := store.Insert(klpol.Zero); err != nil {
				return nil, err
			}
			continue
		}
		coeffs := make([]klpol.Coefficient, int(degree)-int(valuation)+1)
		for j := range coeffs {
			var c int32
			if err := binary.Read(br, binary.LittleEndian, &c); err != nil {
				return nil, ErrTruncated
			}
			coeffs[j] = klpol.Coefficient(c)
		}
		if _, err := store.Insert(klpol.Poly{Valuation: int(valuation), Coeffs: coeffs}); err != nil {
			return nil, err
		}
	}
	return store, nil
}
