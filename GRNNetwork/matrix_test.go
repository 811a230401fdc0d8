package grnnetwork

import (
	"path/filepath"
	"testing"

	utils "github.com/petebio/Gene-regulatory-network-analysis/GRNUtils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMatrix(t *testing.T) {
	matrix := ToMatrix(testNetwork(t))

	assert.Equal(t, []string{"EBOX", "GATA"}, matrix.Motifs)
	assert.Equal(t, []MatrixRow{
		{Gene: "GATA2", Counts: []int{1, 2}},
		{Gene: "TAL1", Counts: []int{0, 1}},
	}, matrix.Rows)

	empty := ToMatrix(NewNetwork())
	assert.Empty(t, empty.Motifs)
	assert.Empty(t, empty.Rows)
}

func TestMatrixRoundTrip(t *testing.T) {
	data := loadTestData(t)
	network := testNetwork(t)
	fname := filepath.Join(t.TempDir(), "matrix.tsv")

	require.NoError(t, WriteMatrix(fname, ToMatrix(network)))

	matrix, err := ReadMatrix(fname)
	require.NoError(t, err)
	assert.Equal(t, ToMatrix(network), matrix)

	rebuilt, err := FromMatrix(matrix, data.expression, data.resolution.References)
	require.NoError(t, err)

	assert.Equal(t, network.Nodes(), rebuilt.Nodes())
	assert.Equal(t, network.Edges(), rebuilt.Edges())
}

func TestFromMatrix(t *testing.T) {
	data := loadTestData(t)

	matrix := &Matrix{
		Motifs: []string{"GATA", "SP", "EBOX"},
		Rows: []MatrixRow{
			{Gene: "HBB", Counts: []int{3, 1, 0}},
			{Gene: "LOW", Counts: []int{5, 5, 5}},
			{Gene: "GATA1", Counts: []int{0, 0, 2}},
		},
	}

	assert.Equal(t, []string{"SP"}, matrix.UnresolvedMotifs(data.resolution.References))

	network, err := FromMatrix(matrix, data.expression, data.resolution.References)

	require.NoError(t, err)
	assert.Equal(t, []Edge{
		{Source: "GATA1", Target: "HBB", Motif: "GATA", Count: 3},
		{Source: "TAL1", Target: "GATA1", Motif: "EBOX", Count: 2},
	}, network.Edges())
	assert.False(t, network.HasNode("LOW"))
}

func TestReadMatrixErrors(t *testing.T) {
	dir := t.TempDir()

	for name, content := range map[string]string{
		"header":   "Gene\tGATA\nHBB\t1\n",
		"width":    "Motif\tGATA\tEBOX\nHBB\t1\n",
		"negative": "Motif\tGATA\nHBB\t-1\n",
		"float":    "Motif\tGATA\nHBB\t1.5\n",
		"empty":    "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadMatrix(writeTestFile(t, dir, name+".tsv", content))

			var formatErr *utils.FormatError
			assert.ErrorAs(t, err, &formatErr)
		})
	}
}
