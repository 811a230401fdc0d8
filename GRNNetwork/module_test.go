package grnnetwork

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractModule(t *testing.T) {
	network := testNetwork(t)

	t.Run("sorted targets of the motif", func(t *testing.T) {
		module, err := ExtractModule(network, "GATA")

		require.NoError(t, err)
		assert.Equal(t, []string{"GATA2", "TAL1"}, module)
	})

	t.Run("targets reached through several regulators are listed once", func(t *testing.T) {
		multi := testNetwork(t)
		multi.AddNode("KLF1", 3)
		require.NoError(t, multi.SetEdge("KLF1", "GATA2", "EBOX", 1))

		module, err := ExtractModule(multi, "EBOX")

		require.NoError(t, err)
		assert.Equal(t, []string{"GATA2"}, module)
	})

	t.Run("every module gene is a target of the motif", func(t *testing.T) {
		module, err := ExtractModule(network, "EBOX")
		require.NoError(t, err)

		for _, gene := range module {
			found := false

			for _, edge := range network.Edges() {
				found = found || (edge.Motif == "EBOX" && edge.Target == gene)
			}

			assert.True(t, found, gene)
		}
	})

	t.Run("unknown motif", func(t *testing.T) {
		_, err := ExtractModule(network, "gata")
		assert.ErrorIs(t, err, ErrEmptyModule)
	})

	t.Run("empty network", func(t *testing.T) {
		module, err := ExtractModule(NewNetwork(), "GATA")

		require.NoError(t, err)
		assert.Empty(t, module)
	})
}

func TestModuleEnrichment(t *testing.T) {
	network := NewNetwork()
	network.AddNode("R", 1)

	for i, target := range []string{"T1", "T2", "T3", "T4", "T5", "T6"} {
		motif := "M1"

		if i >= 3 {
			motif = "M2"
		}

		network.AddNode(target, 1)
		require.NoError(t, network.SetEdge("R", target, motif, 1))
	}

	module, err := ExtractModule(network, "M1")
	require.NoError(t, err)

	t.Run("two by two table", func(t *testing.T) {
		enrichment, err := ModuleEnrichment(network, module, map[string]bool{"T1": true, "T2": true, "T4": true, "X": true})

		require.NoError(t, err)
		assert.Equal(t, 2, enrichment.ModuleInSet)
		assert.Equal(t, 1, enrichment.ModuleNotInSet)
		assert.Equal(t, 1, enrichment.RestInSet)
		assert.Equal(t, 2, enrichment.RestNotInSet)
		assert.GreaterOrEqual(t, enrichment.ChiSquare, 0.0)
		assert.GreaterOrEqual(t, enrichment.PValue, 0.0)
		assert.LessOrEqual(t, enrichment.PValue, 1.0)
	})

	t.Run("module covering every target", func(t *testing.T) {
		single := NewNetwork()
		single.AddNode("R", 1)
		single.AddNode("T1", 1)
		require.NoError(t, single.SetEdge("R", "T1", "M1", 1))

		enrichment, err := ModuleEnrichment(single, []string{"T1"}, map[string]bool{"T1": true})

		assert.ErrorIs(t, err, ErrDegenerateTable)
		assert.Equal(t, 1, enrichment.ModuleInSet)
		assert.Zero(t, enrichment.ChiSquare)
		assert.Zero(t, enrichment.PValue)
	})

	t.Run("gene set outside the network", func(t *testing.T) {
		_, err := ModuleEnrichment(network, module, map[string]bool{"X": true})
		assert.ErrorIs(t, err, ErrDegenerateTable)
	})

	t.Run("empty network", func(t *testing.T) {
		_, err := ModuleEnrichment(NewNetwork(), nil, map[string]bool{"T1": true})
		assert.ErrorIs(t, err, ErrDegenerateTable)
	})
}

func TestGeneSetAndModuleFiles(t *testing.T) {
	dir := t.TempDir()

	geneSet, err := LoadGeneSet(writeTestFile(t, dir, "genes.txt", "# erythroid\nGATA2\textra\n\nTAL1\n"))

	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"GATA2": true, "TAL1": true}, geneSet)

	fname := filepath.Join(dir, "module.txt")
	require.NoError(t, WriteModule(fname, []string{"GATA2", "TAL1"}))

	written, err := LoadGeneSet(fname)
	require.NoError(t, err)
	assert.Equal(t, geneSet, written)

	_, err = LoadGeneSet(filepath.Join(dir, strings.Repeat("x", 3)))
	assert.Error(t, err)
}
