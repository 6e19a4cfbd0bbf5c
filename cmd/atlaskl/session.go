package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/atlas-klv/klv/block"
	"github.com/atlas-klv/klv/kl"
	"github.com/atlas-klv/klv/klpol"
	"github.com/atlas-klv/klv/klsupport"
	"github.com/atlas-klv/klv/persist"
	"github.com/atlas-klv/klv/wgraph"
)

// errUsage marks an InputError: a malformed command, a bad index, or a
// file that could not be read/parsed. Every other error returned by a
// handler comes straight from an engine package and is an InputError
// only if explicitly wrapped here.
var errUsage = errors.New("atlaskl: usage error")

func isInputError(err error) bool {
	return errors.Is(err, errUsage) ||
		errors.Is(err, persist.ErrBadMagic) ||
		errors.Is(err, persist.ErrTruncated) ||
		errors.Is(err, os.ErrNotExist)
}

// session holds the state one REPL carries across commands: at most one
// live (in-memory, filled) block and at most one set of loaded
// persisted files, since the engine package never shares a store across
// block boundaries (spec.md §5).
type session struct {
	out io.Writer

	// live state, populated by `block <name>`.
	g     *block.Graph
	sup   *klsupport.Support
	store *klpol.Store
	eng   *kl.Engine

	// persisted state, populated by `extract-graph`/`extract-cells`.
	bf       *persist.BlockFile
	mf       *persist.MatrixFile
	extStore *klpol.Store
}

func newSession(out io.Writer) *session {
	return &session{out: out}
}

func dispatch(s *session, cmd string, args []string) error {
	switch cmd {
	case "block":
		return cmdBlock(s, args)
	case "blockwrite":
		return cmdBlockWrite(s, args)
	case "kl":
		return cmdKL(s, args)
	case "kllist", "klbasis":
		return cmdKLList(s, args)
	case "primkl":
		return cmdPrimKL(s, args)
	case "klwrite":
		return cmdKLWrite(s, args)
	case "wgraph":
		return cmdWGraph(s, args)
	case "wcells":
		return cmdWCells(s, args)
	case "extract-graph":
		return cmdExtractGraph(s, args)
	case "extract-cells":
		return cmdExtractCells(s, args)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func requireLive(s *session) error {
	if s.eng == nil {
		return fmt.Errorf("%w: no block loaded (run `block <name>` first)", errUsage)
	}
	return nil
}

func parseIndex(args []string, i int) (block.Index, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("%w: missing argument %d", errUsage, i)
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errUsage, err)
	}
	return block.Index(n), nil
}

func cmdBlock(s *session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: block requires a name or file", errUsage)
	}
	var g *block.Graph
	switch args[0] {
	case "singleton":
		g = block.DemoSingleton()
	case "a1split":
		g = block.DemoA1Split()
	case "a2split":
		g = block.DemoA2Split()
	default:
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		defer f.Close()
		bf, err := persist.ReadBlockFile(f)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "size=%d rank=%d\n", bf.Size, bf.Rank)
		return nil
	}

	sup, err := klsupport.New(g)
	if err != nil {
		return err
	}
	if err := sup.Fill(); err != nil {
		return err
	}
	store := klpol.NewStore()
	eng, err := kl.New(sup, store)
	if err != nil {
		return err
	}
	if err := eng.Fill(context.Background()); err != nil {
		return err
	}

	s.g, s.sup, s.store, s.eng = g, sup, store, eng
	fmt.Fprintf(s.out, "size=%d rank=%d\n", g.Size(), g.Rank())
	return nil
}

func cmdBlockWrite(s *session, args []string) error {
	if err := requireLive(s); err != nil {
		return err
	}
	if len(args) < 1 {
		return fmt.Errorf("%w: blockwrite requires a file", errUsage)
	}
	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	defer f.Close()
	bf, err := persist.NewBlockFile(s.g, s.sup)
	if err != nil {
		return err
	}
	return persist.WriteBlockFile(f, bf)
}

func formatPoly(p klpol.Poly) string {
	if p.IsZero() {
		return "0"
	}
	var b []byte
	for i, c := range p.Coeffs {
		if c == 0 {
			continue
		}
		if len(b) > 0 {
			b = append(b, '+')
		}
		deg := p.Valuation + i
		switch {
		case deg == 0:
			b = append(b, []byte(strconv.FormatInt(int64(c), 10))...)
		case c == 1:
			b = append(b, 'q')
		default:
			b = append(b, []byte(strconv.FormatInt(int64(c), 10))...)
			b = append(b, 'q')
		}
		if deg > 1 {
			b = append(b, '^')
			b = append(b, []byte(strconv.Itoa(deg))...)
		}
	}
	return string(b)
}

func cmdKL(s *session, args []string) error {
	if err := requireLive(s); err != nil {
		return err
	}
	x, err := parseIndex(args, 0)
	if err != nil {
		return err
	}
	y, err := parseIndex(args, 1)
	if err != nil {
		return err
	}
	p, err := s.eng.KLPol(x, y)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "P(%d,%d) = %s\n", x, y, formatPoly(p))
	return nil
}

func cmdKLList(s *session, args []string) error {
	if err := requireLive(s); err != nil {
		return err
	}
	y, err := parseIndex(args, 0)
	if err != nil {
		return err
	}
	row, err := s.eng.PrimitiveRow(y)
	if err != nil {
		return err
	}
	for _, x := range row {
		p, err := s.eng.KLPol(x, y)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "P(%d,%d) = %s\n", x, y, formatPoly(p))
	}
	return nil
}

func cmdPrimKL(s *session, args []string) error {
	if err := requireLive(s); err != nil {
		return err
	}
	y, err := parseIndex(args, 0)
	if err != nil {
		return err
	}
	row, err := s.eng.PrimitiveRow(y)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, row)
	return nil
}

func cmdKLWrite(s *session, args []string) error {
	if err := requireLive(s); err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: klwrite requires <matrix-file> <coeff-file>", errUsage)
	}
	size := s.sup.Size()
	prow := make([][]block.Index, size)
	krow := make([][]klpol.Index, size)
	for y := 0; y < size; y++ {
		row, err := s.eng.PrimitiveRow(block.Index(y))
		if err != nil {
			return err
		}
		k := make([]klpol.Index, len(row))
		for i, x := range row {
			p, err := s.eng.KLPol(x, block.Index(y))
			if err != nil {
				return err
			}
			idx, err := s.store.Insert(p)
			if err != nil {
				return err
			}
			k[i] = idx
		}
		prow[y] = row
		krow[y] = k
	}

	mf, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	defer mf.Close()
	if err := persist.WriteMatrixFile(mf, prow, krow); err != nil {
		return err
	}

	cf, err := os.Create(args[1])
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	defer cf.Close()
	return persist.WriteCoeffFile(cf, s.store)
}

func printWGraph(out io.Writer, g *wgraph.Graph) error {
	for x := 0; x < g.Size(); x++ {
		targets, err := g.EdgeList(block.Index(x))
		if err != nil {
			return err
		}
		coeffs, err := g.CoeffList(block.Index(x))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d:", x)
		for i, t := range targets {
			fmt.Fprintf(out, " %d(%d)", t, coeffs[i])
		}
		fmt.Fprintln(out)
	}
	return nil
}

func cmdWGraph(s *session, args []string) error {
	if err := requireLive(s); err != nil {
		return err
	}
	g, err := wgraph.Build(s.sup, s.eng)
	if err != nil {
		return err
	}
	return printWGraph(s.out, g)
}

func printCells(out io.Writer, cells *wgraph.Cells) error {
	for i := 0; i < cells.NumCells(); i++ {
		members, err := cells.Cell(i)
		if err != nil {
			return err
		}
		dag, err := cells.DAGEdges(i)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "cell %d: %v -> %v\n", i, members, dag)
	}
	return nil
}

func cmdWCells(s *session, args []string) error {
	if err := requireLive(s); err != nil {
		return err
	}
	g, err := wgraph.Build(s.sup, s.eng)
	if err != nil {
		return err
	}
	cells, err := wgraph.Decompose(g)
	if err != nil {
		return err
	}
	return printCells(s.out, cells)
}
