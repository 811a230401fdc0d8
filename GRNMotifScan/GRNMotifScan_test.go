package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupMotifHits(t *testing.T) {
	dir := t.TempDir()
	rawFile := filepath.Join(dir, "GATA_raw.bed")
	outFile := filepath.Join(dir, "GATA.bed")

	require.NoError(t, os.WriteFile(rawFile, []byte(
		"chr1\t500\t510\tGATA\t5.1\t+\n"+
			"chr1\t101\t111\tGATA\t8.2\t-\n"+
			"chr1\t100\t110\tGATA\t8.2\t+\n"), 0644))

	nbHits, err := dedupMotifHits(rawFile, outFile, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, nbHits)

	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, "chr1\t100\t110\nchr1\t500\t510\n", string(content))
}

func TestScanMotifsSkipsExistingOutputs(t *testing.T) {
	dir := t.TempDir()
	motifDir := filepath.Join(dir, "motifs")
	outDir := filepath.Join(dir, "out")

	require.NoError(t, os.MkdirAll(motifDir, 0755))
	require.NoError(t, os.MkdirAll(outDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(motifDir, "GATA.motif"), []byte(">GATA\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(motifDir, "notes.txt"), []byte("\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "GATA.bed"), []byte("chr1\t1\t2\n"), 0644))

	err := scanMotifs(context.Background(), scanOptions{
		Bed:      filepath.Join(dir, "peaks.bed"),
		MotifDir: motifDir,
		Genome:   "hg38",
		OutDir:   outDir,
		Dist:     2,
	})

	assert.NoError(t, err)
}
