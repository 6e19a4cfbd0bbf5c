package persist

import (
	"bufio"
	"encoding/binary"
	"io"
	"sort"

	"github.com/atlas-klv/klv/bitset"
	"github.com/atlas-klv/klv/block"
	"github.com/atlas-klv/klv/klsupport"
)

// noGoodAscent is the successor sentinel written for a descent generator
// or an ImaginaryTypeII ascent (spec.md §6's block file format); it is
// distinct from block.Undef, which marks a RealNonparity generator.
const noGoodAscent int32 = -2

// BlockFile is the decoded (or about-to-be-encoded) form of spec.md §6's
// block file: per-element descent words and, per (generator, element), a
// successor sufficient to drive ascent-only primitivisation when reading
// a matrix file back without re-running Fill. It deliberately cannot
// reconstruct a full block.Block — descent generators and ImaginaryTypeII
// ascents carry no successor in the on-disk format, exactly as the
// original source's block file only ever needs to support row lookup,
// never re-derivation of the KL recursion.
type BlockFile struct {
	Size      int
	Rank      int
	MaxLength block.Length

	// LengthTable[l-1] is ll[l] for l in [1, MaxLength].
	LengthTable []block.Index

	// Descent[x] is the descent bitset of element x.
	Descent []bitset.Small

	// Successor[g][x] is noGoodAscent, block.Undef, or a valid ascent
	// target, per spec.md §6.
	Successor [][]int32
}

// NewBlockFile captures a filled support's descent/length tables and the
// underlying block's ascent successors into the on-disk representation.
func NewBlockFile(b block.Block, sup *klsupport.Support) (*BlockFile, error) {
	if b == nil || sup == nil {
		return nil, ErrNilArgument
	}

	size := sup.Size()
	rank := sup.Rank()
	maxLen, err := sup.MaxLength()
	if err != nil {
		return nil, err
	}

	bf := &BlockFile{
		Size:        size,
		Rank:        rank,
		MaxLength:   maxLen,
		LengthTable: make([]block.Index, maxLen),
		Descent:     make([]bitset.Small, size),
		Successor:   make([][]int32, rank),
	}
	for l := block.Length(1); l <= maxLen; l++ {
		ll, err := sup.LengthLess(l)
		if err != nil {
			return nil, err
		}
		bf.LengthTable[l-1] = ll
	}
	for x := 0; x < size; x++ {
		d, err := sup.DescentSet(block.Index(x))
		if err != nil {
			return nil, err
		}
		bf.Descent[x] = d
	}
	for g := 0; g < rank; g++ {
		gen := block.Generator(g)
		row := make([]int32, size)
		for x := 0; x < size; x++ {
			xi := block.Index(x)
			switch v := b.DescentValue(gen, xi); {
			case v.IsDescent(), v == block.ImaginaryTypeII:
				row[x] = noGoodAscent
			case v == block.RealNonparity:
				row[x] = int32(block.Undef)
			case v == block.ComplexAscent:
				row[x] = int32(b.Cross(gen, xi))
			case v == block.ImaginaryTypeI:
				row[x] = int32(b.Cayley(gen, xi).First)
			}
		}
		bf.Successor[g] = row
	}
	return bf, nil
}

// WriteBlockFile writes bf in the layout of spec.md §6: size (32-bit),
// rank (8-bit), maximal length (8-bit), the length prefix table (32-bit
// per length 1..max_length), one 64-bit descent word per element, then
// the rank-major successor table (32-bit per (generator, element)).
func WriteBlockFile(w io.Writer, bf *BlockFile) error {
	if bf == nil {
		return ErrNilArgument
	}
	bw := bufio.NewWriter(w)

	if err := binary.Write(bw, binary.LittleEndian, uint32(bf.Size)); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint8(bf.Rank)); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint8(bf.MaxLength)); err != nil {
		return err
	}
	for _, ll := range bf.LengthTable {
		if err := binary.Write(bw, binary.LittleEndian, uint32(ll)); err != nil {
			return err
		}
	}
	for _, d := range bf.Descent {
		if err := binary.Write(bw, binary.LittleEndian, uint64(d)); err != nil {
			return err
		}
	}
	for g := 0; g < bf.Rank; g++ {
		for _, succ := range bf.Successor[g] {
			if err := binary.Write(bw, binary.LittleEndian, succ); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// ReadBlockFile parses the layout WriteBlockFile produces.
func ReadBlockFile(r io.Reader) (*BlockFile, error) {
	br := bufio.NewReader(r)

	var size uint32
	if err := binary.Read(br, binary.LittleEndian, &size); err != nil {
		return nil, ErrTruncated
	}
	var rank, maxLen uint8
	if err := binary.Read(br, binary.LittleEndian, &rank); err != nil {
		return nil, ErrTruncated
	}
	if err := binary.Read(br, binary.LittleEndian, &maxLen); err != nil {
		return nil, ErrTruncated
	}

	bf := &BlockFile{
		Size:        int(size),
		Rank:        int(rank),
		MaxLength:   block.Length(maxLen),
		LengthTable: make([]block.Index, maxLen),
		Descent:     make([]bitset.Small, size),
		Successor:   make([][]int32, rank),
	}
	for i := range bf.LengthTable {
		var v uint32
		if err := binary.Read(br, binary.LittleEndian, &v); err != nil {
			return nil, ErrTruncated
		}
		bf.LengthTable[i] = block.Index(v)
	}
	for i := range bf.Descent {
		var v uint64
		if err := binary.Read(br, binary.LittleEndian, &v); err != nil {
			return nil, ErrTruncated
		}
		bf.Descent[i] = bitset.Small(v)
	}
	for g := 0; g < int(rank); g++ {
		row := make([]int32, size)
		for x := range row {
			var v int32
			if err := binary.Read(br, binary.LittleEndian, &v); err != nil {
				return nil, ErrTruncated
			}
			row[x] = v
		}
		bf.Successor[g] = row
	}
	return bf, nil
}

// Length returns the length of element x, found by binary search over
// LengthTable.
func (bf *BlockFile) Length(x block.Index) block.Length {
	l := sort.Search(len(bf.LengthTable), func(i int) bool { return bf.LengthTable[i] > x })
	return block.Length(l)
}

// DescentSet returns the descent bitset of x.
func (bf *BlockFile) DescentSet(x block.Index) bitset.Small {
	return bf.Descent[x]
}

// Ascend returns the successor of generator g at x and true, or
// (0, false) if g carries no successor at x (a descent, an
// ImaginaryTypeII ascent, or RealNonparity).
func (bf *BlockFile) Ascend(g block.Generator, x block.Index) (block.Index, bool) {
	v := bf.Successor[g][x]
	if v == noGoodAscent || v == int32(block.Undef) {
		return 0, false
	}
	return block.Index(v), true
}

// Primitivize follows ascents of x within ds until none remain — the
// same fixed-point loop klsupport.Support.Primitivize runs, but driven
// off the on-disk successor table instead of a live block.Block.
func (bf *BlockFile) Primitivize(x block.Index, ds bitset.Small) block.Index {
	for {
		moved := false
		for _, g := range ds.Generators() {
			if y, ok := bf.Ascend(block.Generator(g), x); ok {
				x = y
				moved = true
				break
			}
		}
		if !moved {
			return x
		}
	}
}
