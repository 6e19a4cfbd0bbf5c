package persist

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"

	"github.com/atlas-klv/klv/block"
	"github.com/atlas-klv/klv/klpol"
)

// matrixMagic identifies the new-format matrix file (spec.md §6); a
// legacy file has no magic and begins directly with the row count.
const matrixMagic uint32 = 0x4B4C4D31 // "KLM1"

// MatrixFile is the decoded form of spec.md §6's matrix file: for every
// y, the primitive-row indices paired with the KLIndex of the stored
// polynomial at that position.
type MatrixFile struct {
	Prow [][]block.Index
	Krow [][]klpol.Index
}

// WriteMatrixFile writes the new-format layout: a magic code, the row
// count, each row's length-prefixed (primitive index, KLIndex) pairs,
// and a trailing offset table (one 32-bit file offset per row) that
// allows locating any row without scanning the rows before it.
func WriteMatrixFile(w io.Writer, prow [][]block.Index, krow [][]klpol.Index) error {
	if len(prow) != len(krow) {
		return ErrNilArgument
	}

	const headerLen = 8 // magic + size
	var rows bytes.Buffer
	offsets := make([]uint32, len(prow))

	for y := range prow {
		offsets[y] = headerLen + uint32(rows.Len())
		if err := binary.Write(&rows, binary.LittleEndian, uint32(len(prow[y]))); err != nil {
			return err
		}
		for i, x := range prow[y] {
			if err := binary.Write(&rows, binary.LittleEndian, int32(x)); err != nil {
				return err
			}
			if err := binary.Write(&rows, binary.LittleEndian, uint32(krow[y][i])); err != nil {
				return err
			}
		}
	}

	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, matrixMagic); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(prow))); err != nil {
		return err
	}
	if _, err := bw.Write(rows.Bytes()); err != nil {
		return err
	}
	for _, off := range offsets {
		if err := binary.Write(bw, binary.LittleEndian, off); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadMatrixFile parses either format: it checks the first four bytes
// against matrixMagic, and if they do not match, reinterprets them as
// the row count of a legacy file (which begins at row 0 with no tail),
// per spec.md §6. The trailing offset table of a new-format file is
// read and discarded — this reader always consumes rows sequentially,
// so the table's only purpose (random access on top of an io.ReaderAt)
// is not exercised here.
func ReadMatrixFile(r io.Reader) (*MatrixFile, error) {
	br := bufio.NewReader(r)

	var first uint32
	if err := binary.Read(br, binary.LittleEndian, &first); err != nil {
		return nil, ErrTruncated
	}

	var size uint32
	if first == matrixMagic {
		if err := binary.Read(br, binary.LittleEndian, &size); err != nil {
			return nil, ErrTruncated
		}
	} else {
		size = first
	}

	mf := &MatrixFile{
		Prow: make([][]block.Index, size),
		Krow: make([][]klpol.Index, size),
	}
	for y := uint32(0); y < size; y++ {
		var rowLen uint32
		if err := binary.Read(br, binary.LittleEndian, &rowLen); err != nil {
			return nil, ErrTruncated
		}
		prow := make([]block.Index, rowLen)
		krow := make([]klpol.Index, rowLen)
		for i := uint32(0); i < rowLen; i++ {
			var x int32
			if err := binary.Read(br, binary.LittleEndian, &x); err != nil {
				return nil, ErrTruncated
			}
			var k uint32
			if err := binary.Read(br, binary.LittleEndian, &k); err != nil {
				return nil, ErrTruncated
			}
			prow[i] = block.Index(x)
			krow[i] = klpol.Index(k)
		}
		mf.Prow[y] = prow
		mf.Krow[y] = krow
	}
	return mf, nil
}

// MuEntry is one reconstructed mu-row entry: an element X primitive for
// y together with the leading coefficient of P_{X,y}.
type MuEntry struct {
	X    block.Index
	Coef int32
}

// MuRow reconstructs the primitive-row-derived portion of kl.Engine's
// mu-row for y directly from the decoded matrix/coefficient files: for
// every x in Prow[y] with an odd length gap to y, the coefficient of
// P_{x,y} at degree (length(y)-length(x)-1)/2.
//
// This intentionally omits kl.Engine.buildMuRow's second pass (the one
// that finds z = cross(t,y) for a descent generator t of y that
// collapsed out of the primitive row): that pass needs the live cross
// action at a descent generator, which BlockFile's successor table
// never records (spec.md §6 stores the noGoodAscent sentinel there, not
// the target). A block file alone cannot recover those entries; callers
// that need the full mu-row must keep the live block.Block and
// klsupport.Support around, not just the persisted files.
func (mf *MatrixFile) MuRow(bf *BlockFile, store *klpol.Store, y block.Index) ([]MuEntry, error) {
	if int(y) < 0 || int(y) >= len(mf.Prow) {
		return nil, ErrIndexOutOfRange
	}
	ly := bf.Length(y)
	var mrow []MuEntry
	for i, x := range mf.Prow[y] {
		if x == y {
			continue
		}
		diff := ly - bf.Length(x)
		if diff%2 == 0 {
			continue
		}
		d := int(diff-1) / 2
		p, err := store.Get(mf.Krow[y][i])
		if err != nil {
			return nil, err
		}
		if c := p.At(d); c != 0 {
			mrow = append(mrow, MuEntry{X: x, Coef: int32(c)})
		}
	}
	return mrow, nil
}

// KLPol returns P_{x,y} from the decoded matrix file and coefficient
// store, mirroring kl.Engine.klPolAt's primitivise-then-binary-search
// lookup but driven off a BlockFile's on-disk successor table instead of
// a live klsupport.Support.
func (mf *MatrixFile) KLPol(bf *BlockFile, store *klpol.Store, x, y block.Index) (klpol.Poly, error) {
	if int(y) < 0 || int(y) >= len(mf.Prow) {
		return klpol.Poly{}, ErrIndexOutOfRange
	}
	if x > y {
		return klpol.Zero, nil
	}
	px := bf.Primitivize(x, bf.DescentSet(y))
	if px > y {
		return klpol.Zero, nil
	}
	row := mf.Prow[y]
	lo, hi := 0, len(row)
	for lo < hi {
		mid := (lo + hi) / 2
		if row[mid] < px {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo >= len(row) || row[lo] != px {
		return klpol.Zero, nil
	}
	return store.Get(mf.Krow[y][lo])
}
