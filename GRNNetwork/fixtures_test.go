package grnnetwork

import (
	"os"
	"path/filepath"
	"testing"

	utils "github.com/petebio/Gene-regulatory-network-analysis/GRNUtils"
	"github.com/stretchr/testify/require"
)

const testExpression = `gene	value
GATA1	10
GATA2	5
TAL1	8
KLF1	3
HBB	20
LOW	0.5
`

const testAnnotation = `gene	motif
GATA1	GATA
GATA2	GATA
TAL1	EBOX
KLF1	KLF
NOEXP	SP
`

const testPeaks = `chr1	300	400	HBB
chr1	100	200	GATA2
chr1	500	600	TAL1
chr1	700	800	LOW
`

var testSites = map[string]string{
	"GATA": "chr1\t150\t160\nchr1\t180\t190\nchr1\t350\t360\nchr1\t550\t560\nchr1\t750\t760\n",
	"EBOX": "chr1\t110\t120\nchr1\t320\t330\n",
	"KLF":  "chr1\t900\t910\n",
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	fname := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(fname, []byte(content), 0644))

	return fname
}

//testData loaded inputs of the test network
type testData struct {
	dir        string
	expression Expression
	annotation *TFAnnotation
	peaks      *utils.BedIndex
	sites      MotifSites
	resolution Resolution
}

func loadTestData(t *testing.T) testData {
	t.Helper()

	var err error

	data := testData{dir: t.TempDir()}
	motifDir := filepath.Join(data.dir, "motifs")
	require.NoError(t, os.Mkdir(motifDir, 0755))

	for motif, content := range testSites {
		writeTestFile(t, motifDir, motif+".bed", content)
	}

	data.expression, err = LoadExpression(writeTestFile(t, data.dir, "exprs.tsv", testExpression), 1)
	require.NoError(t, err)

	data.annotation, err = LoadTFAnnotation(writeTestFile(t, data.dir, "annot.tsv", testAnnotation))
	require.NoError(t, err)

	peaks, err := LoadAnnotatedPeaks(writeTestFile(t, data.dir, "peaks.bed", testPeaks))
	require.NoError(t, err)

	data.peaks, err = utils.NewBedIndex(peaks)
	require.NoError(t, err)

	data.sites, err = LoadMotifSites(motifDir)
	require.NoError(t, err)

	data.resolution = ResolveReferences(data.annotation, data.expression, data.sites.Families())

	return data
}

//testNetwork GATA1 -> GATA2 (2), GATA1 -> TAL1 (1) through GATA, TAL1 -> GATA2 (1) through EBOX
func testNetwork(t *testing.T) *Network {
	t.Helper()

	network := NewNetwork()
	network.AddNode("GATA1", 10)
	network.AddNode("GATA2", 5)
	network.AddNode("TAL1", 8)

	require.NoError(t, network.SetEdge("GATA1", "GATA2", "GATA", 2))
	require.NoError(t, network.SetEdge("GATA1", "TAL1", "GATA", 1))
	require.NoError(t, network.SetEdge("TAL1", "GATA2", "EBOX", 1))

	return network
}
