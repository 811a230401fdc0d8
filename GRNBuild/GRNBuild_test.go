package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	grn "github.com/petebio/Gene-regulatory-network-analysis/GRNNetwork"
	utils "github.com/petebio/Gene-regulatory-network-analysis/GRNUtils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	fname := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(fname, []byte(content), 0644))

	return fname
}

func testInputs(t *testing.T) (buildInputs, string) {
	t.Helper()

	dir := t.TempDir()
	motifDir := filepath.Join(dir, "motifs")
	require.NoError(t, os.Mkdir(motifDir, 0755))

	writeTestFile(t, motifDir, "GATA.bed", "chr1\t150\t160\nchr1\t350\t360\nchr1\t550\t560\n")
	writeTestFile(t, motifDir, "EBOX.bed", "chr1\t110\t120\n")
	writeTestFile(t, motifDir, "README.txt", "not a motif\n")

	return buildInputs{
		Peaks:       writeTestFile(t, dir, "peaks.bed", "chr1\t100\t200\tGATA2\nchr1\t300\t400\tHBB\nchr1\t500\t600\tTAL1\n"),
		MotifDir:    motifDir,
		Expression:  writeTestFile(t, dir, "exprs.tsv", "gene\tvalue\nGATA1\t10\nGATA2\t5\nTAL1\t8\nHBB\t20\n"),
		TFAnnotaton: writeTestFile(t, dir, "annot.tsv", "gene\tmotif\nGATA1\tGATA\nGATA2\tGATA\nTAL1\tEBOX\n"),
	}, dir
}

func TestBuildNetwork(t *testing.T) {
	ctx := context.Background()

	t.Run("TF genes only", func(t *testing.T) {
		inputs, dir := testInputs(t)

		network, err := buildNetwork(ctx, inputs, utils.DefaultBuildConfig())
		require.NoError(t, err)

		assert.Equal(t, []grn.Edge{
			{Source: "GATA1", Target: "GATA2", Motif: "GATA", Count: 1},
			{Source: "GATA1", Target: "TAL1", Motif: "GATA", Count: 1},
			{Source: "TAL1", Target: "GATA2", Motif: "EBOX", Count: 1},
		}, network.Edges())

		fname, err := grn.WriteCytoscape(filepath.Join(dir, "grn"), network)
		require.NoError(t, err)

		decoded, err := grn.ReadCytoscape(fname)
		require.NoError(t, err)
		assert.Equal(t, network.Edges(), decoded.Edges())
	})

	t.Run("all genes with threads", func(t *testing.T) {
		inputs, _ := testInputs(t)
		config := utils.DefaultBuildConfig()
		config.IncludeAllGenes = true
		config.Threads = 3

		network, err := buildNetwork(ctx, inputs, config)
		require.NoError(t, err)

		count, isInside := network.Edge("GATA1", "HBB", "GATA")
		assert.True(t, isInside)
		assert.Equal(t, 1, count)
	})

	t.Run("footprints and expression threshold", func(t *testing.T) {
		inputs, dir := testInputs(t)
		config := utils.DefaultBuildConfig()
		config.MinExpression = 6
		config.Footprints = writeTestFile(t, dir, "footprints.bed", "chr1\t100\t200\nchr1\t500\t600\n")

		network, err := buildNetwork(ctx, inputs, config)
		require.NoError(t, err)

		assert.Equal(t, []grn.Edge{
			{Source: "GATA1", Target: "TAL1", Motif: "GATA", Count: 1},
		}, network.Edges())
	})

	t.Run("missing motif directory", func(t *testing.T) {
		inputs, dir := testInputs(t)
		inputs.MotifDir = filepath.Join(dir, "missing")

		_, err := buildNetwork(ctx, inputs, utils.DefaultBuildConfig())
		assert.Error(t, err)
	})
}
