package main

import (
	"fmt"
	"os"

	"github.com/atlas-klv/klv/bitset"
	"github.com/atlas-klv/klv/block"
	"github.com/atlas-klv/klv/persist"
	"github.com/atlas-klv/klv/wgraph"
)

// loadPersisted reads the (block-file, matrix-file, coeff-file) trio
// named in args and stores the decoded forms on s, exercising spec.md
// §8's "extracting the W-graph ... from the on-disk pair" round-trip law.
func loadPersisted(s *session, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("%w: requires <block-file> <matrix-file> <coeff-file>", errUsage)
	}
	bfFile, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	defer bfFile.Close()
	bf, err := persist.ReadBlockFile(bfFile)
	if err != nil {
		return err
	}

	mfFile, err := os.Open(args[1])
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	defer mfFile.Close()
	mf, err := persist.ReadMatrixFile(mfFile)
	if err != nil {
		return err
	}

	cfFile, err := os.Open(args[2])
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	defer cfFile.Close()
	store, err := persist.ReadCoeffFile(cfFile)
	if err != nil {
		return err
	}

	s.bf, s.mf, s.extStore = bf, mf, store
	return nil
}

// buildGraphFromPersisted derives a wgraph.Graph purely from the loaded
// persisted files, via wgraph.BuildGeneric and persist.MatrixFile.MuRow
// — see MuRow's doc comment for the one documented gap against the
// live-engine reconstruction (the second, cross-action-derived mu pass).
func buildGraphFromPersisted(s *session) (*wgraph.Graph, error) {
	return wgraph.BuildGeneric(s.bf.Size,
		func(x block.Index) (bitset.Small, error) {
			return s.bf.DescentSet(x), nil
		},
		func(y block.Index) ([]wgraph.MuEdge, error) {
			entries, err := s.mf.MuRow(s.bf, s.extStore, y)
			if err != nil {
				return nil, err
			}
			out := make([]wgraph.MuEdge, len(entries))
			for i, m := range entries {
				out[i] = wgraph.MuEdge{X: m.X, Coef: m.Coef}
			}
			return out, nil
		})
}

func cmdExtractGraph(s *session, args []string) error {
	if err := loadPersisted(s, args); err != nil {
		return err
	}
	g, err := buildGraphFromPersisted(s)
	if err != nil {
		return err
	}
	return printWGraph(s.out, g)
}

func cmdExtractCells(s *session, args []string) error {
	if err := loadPersisted(s, args); err != nil {
		return err
	}
	g, err := buildGraphFromPersisted(s)
	if err != nil {
		return err
	}
	cells, err := wgraph.Decompose(g)
	if err != nil {
		return err
	}
	return printCells(s.out, cells)
}
