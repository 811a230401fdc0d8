package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	grn "github.com/petebio/Gene-regulatory-network-analysis/GRNNetwork"
	utils "github.com/petebio/Gene-regulatory-network-analysis/GRNUtils"
)

func main() {
	var inFile, exprsFile, annotFile utils.Filename
	var outFile string
	var toMatrix, toGRN, verbose bool
	var minExpression float64

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `
#################### MODULE TO CONVERT A GENE REGULATORY NETWORK ########################

"""Convert a network into a target gene x motif count matrix and back"""

USAGE: GRNMatrix -to_matrix -in <file.cyjs> -out <file>
       GRNMatrix -to_grn -in <matrix> -exprs <file> -annot <file> -out <string> (optionnal -min <float>)
`)
		flag.PrintDefaults()
	}

	flag.BoolVar(&toMatrix, "to_matrix", false, "convert a network into a count matrix")
	flag.BoolVar(&toGRN, "to_grn", false, "convert a count matrix into a network")
	flag.Var(&inFile, "in", "input network (-to_matrix) or count matrix (-to_grn)")
	flag.Var(&exprsFile, "exprs", "gene expression file (-to_grn)")
	flag.Var(&annotFile, "annot", "TF annotation file (-to_grn)")
	flag.StringVar(&outFile, "out", "", "output file")
	flag.Float64Var(&minExpression, "min", 0, "minimum gene expression value for a gene to be included in the network (-to_grn)")
	flag.BoolVar(&verbose, "verbose", false, "verbose logging")

	flag.Parse()

	utils.InitLogger(verbose)

	if inFile == "" || outFile == "" {
		flag.Usage()
		utils.LOGGER.Fatal("Error -in and -out must be provided!")
	}

	tStart := time.Now()

	switch {
	case toMatrix && toGRN:
		utils.LOGGER.Fatal("Error -to_matrix and -to_grn are exclusive!")
	case toMatrix:
		network, err := grn.ReadCytoscape(inFile.String())
		utils.Check(err)

		matrix := grn.ToMatrix(network)
		utils.Check(grn.WriteMatrix(outFile, matrix))

		utils.LOGGER.Infof("Count matrix of %d genes x %d motifs written in %s",
			len(matrix.Rows), len(matrix.Motifs), outFile)
	case toGRN:
		if exprsFile == "" || annotFile == "" {
			utils.LOGGER.Fatal("Error -exprs and -annot must be provided with -to_grn!")
		}

		network, err := matrixToNetwork(inFile.String(), exprsFile.String(), annotFile.String(), minExpression)
		utils.Check(err)

		fname, err := grn.WriteCytoscape(outFile, network)
		utils.Check(err)

		utils.LOGGER.Infof("Network of %d nodes and %d edges written in %s",
			network.NumberOfNodes(), network.NumberOfEdges(), fname)
	default:
		flag.Usage()
		utils.LOGGER.Fatal("Error one of -to_matrix or -to_grn must be provided!")
	}

	utils.LogTiming("GRNMatrix", tStart)
}

/*matrixToNetwork rebuild a network from a count matrix, the expression and the TF annotation */
func matrixToNetwork(matrixFile, exprsFile, annotFile string, minExpression float64) (*grn.Network, error) {
	matrix, err := grn.ReadMatrix(matrixFile)
	if err != nil {
		return nil, err
	}

	expression, err := grn.LoadExpression(exprsFile, minExpression)
	if err != nil {
		return nil, err
	}

	annotation, err := grn.LoadTFAnnotation(annotFile)
	if err != nil {
		return nil, err
	}

	resolution := grn.ResolveReferences(annotation, expression, nil)

	if unresolved := matrix.UnresolvedMotifs(resolution.References); len(unresolved) > 0 {
		utils.LOGGER.Warnf("No expressed TF gene for %d motifs, their columns are ignored: %s",
			len(unresolved), strings.Join(unresolved, ", "))
	}

	return grn.FromMatrix(matrix, expression, resolution.References)
}
