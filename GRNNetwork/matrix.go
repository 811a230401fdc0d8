package grnnetwork

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	utils "github.com/petebio/Gene-regulatory-network-analysis/GRNUtils"
	"github.com/tidwall/btree"
)

/*MATRIXHEADER first cell of the header line of a motif count matrix */
const MATRIXHEADER = "Motif"

//MatrixRow motif counts of one target gene, in the order of Matrix.Motifs
type MatrixRow struct {
	Gene   string
	Counts []int
}

//Matrix target gene x motif family count matrix
type Matrix struct {
	Motifs []string
	Rows   []MatrixRow
}

/*ToMatrix flatten the network into a target x motif count matrix. Motifs and genes are sorted */
func ToMatrix(network *Network) *Matrix {
	var motifs btree.Set[string]
	var genes btree.Map[string, map[string]int]

	for _, edge := range network.Edges() {
		motifs.Insert(edge.Motif)

		geneCount, isInside := genes.Get(edge.Target)

		if !isInside {
			geneCount = make(map[string]int)
			genes.Set(edge.Target, geneCount)
		}

		geneCount[edge.Motif] = edge.Count
	}

	matrix := &Matrix{Motifs: make([]string, 0, motifs.Len())}

	motifs.Scan(func(motif string) bool {
		matrix.Motifs = append(matrix.Motifs, motif)
		return true
	})

	genes.Scan(func(gene string, geneCount map[string]int) bool {
		row := MatrixRow{Gene: gene, Counts: make([]int, len(matrix.Motifs))}

		for i, motif := range matrix.Motifs {
			row.Counts[i] = geneCount[motif]
		}

		matrix.Rows = append(matrix.Rows, row)
		return true
	})

	return matrix
}

/*WriteMatrix write the matrix as a tab separated file */
func WriteMatrix(fname string, matrix *Matrix) error {
	var buffer bytes.Buffer

	lines := make([]string, 0, len(matrix.Rows)+1)
	lines = append(lines, MATRIXHEADER+"\t"+strings.Join(matrix.Motifs, "\t"))

	for _, row := range matrix.Rows {
		buffer.WriteString(row.Gene)

		for _, count := range row.Counts {
			buffer.WriteRune('\t')
			buffer.WriteString(strconv.Itoa(count))
		}

		lines = append(lines, buffer.String())
		buffer.Reset()
	}

	return utils.WriteLines(fname, lines)
}

/*ReadMatrix read a motif count matrix. Counts must be non-negative integers */
func ReadMatrix(fname string) (*Matrix, error) {
	var split []string
	var line string
	var count int

	scanner, file, err := utils.ReturnReader(fname, 0)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	matrix := &Matrix{}
	lineNb := 0

	for scanner.Scan() {
		lineNb++
		line = strings.TrimSpace(scanner.Text())

		if lineNb > 1 && line == "" {
			continue
		}

		split = strings.Split(line, "\t")

		if lineNb == 1 {
			if split[0] != MATRIXHEADER {
				return nil, &utils.FormatError{
					File: fname,
					Line: lineNb,
					Msg:  fmt.Sprintf("header should start with %q, found %q", MATRIXHEADER, split[0])}
			}

			matrix.Motifs = split[1:]
			continue
		}

		if len(split) != len(matrix.Motifs)+1 {
			return nil, &utils.FormatError{
				File: fname,
				Line: lineNb,
				Msg:  fmt.Sprintf("expected %d columns, found %d", len(matrix.Motifs)+1, len(split))}
		}

		row := MatrixRow{Gene: split[0], Counts: make([]int, len(matrix.Motifs))}

		for i, field := range split[1:] {
			if count, err = strconv.Atoi(field); err != nil || count < 0 {
				return nil, &utils.FormatError{
					File: fname,
					Line: lineNb,
					Msg:  fmt.Sprintf("count %q of motif %s is not a non-negative integer", field, matrix.Motifs[i])}
			}

			row.Counts[i] = count
		}

		matrix.Rows = append(matrix.Rows, row)
	}

	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", fname, err)
	}

	if lineNb == 0 {
		return nil, &utils.FormatError{File: fname, Line: 0, Msg: "empty matrix, missing header"}
	}

	return matrix, nil
}

/*UnresolvedMotifs motifs of the header without a reference regulator. Their columns are ignored by FromMatrix */
func (m *Matrix) UnresolvedMotifs(references References) []string {
	var unresolved []string

	for _, motif := range m.Motifs {
		if _, isInside := references[motif]; !isInside {
			unresolved = append(unresolved, motif)
		}
	}

	sort.Strings(unresolved)

	return unresolved
}

/*FromMatrix rebuild the network from a count matrix. Rows of genes that are not
expressed, columns of motifs without reference regulator and zero counts are skipped */
func FromMatrix(matrix *Matrix, expression Expression, references References) (*Network, error) {
	network := NewNetwork()

	for _, row := range matrix.Rows {
		value, isExpressed := expression.Value(row.Gene)

		if !isExpressed {
			continue
		}

		for i, count := range row.Counts {
			source, isInside := references[matrix.Motifs[i]]

			if !isInside || count == 0 {
				continue
			}

			network.AddNode(source.Gene, source.Expression)
			network.AddNode(row.Gene, value)

			if err := network.SetEdge(source.Gene, row.Gene, matrix.Motifs[i], count); err != nil {
				return nil, err
			}
		}
	}

	return network, nil
}
