package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	grn "github.com/petebio/Gene-regulatory-network-analysis/GRNNetwork"
	utils "github.com/petebio/Gene-regulatory-network-analysis/GRNUtils"
)

func main() {
	var inFile, geneSetFile utils.Filename
	var motif, outFile string
	var verbose bool

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `
#################### MODULE TO EXTRACT A TF MODULE ########################

"""Write the genes regulated through one motif family of a network, one gene per line"""

USAGE: GRNModule -in <file.cyjs> -motif <string> -out <file> (optionnal -geneset <file> -verbose)

-geneset: test the enrichment of the module for a gene list (first column) with a chi-square test
`)
		flag.PrintDefaults()
	}

	flag.Var(&inFile, "in", "input network")
	flag.StringVar(&motif, "motif", "", "motif ID of the TF module")
	flag.StringVar(&outFile, "out", "", "output file")
	flag.Var(&geneSetFile, "geneset", "optional gene list tested for enrichment in the module")
	flag.BoolVar(&verbose, "verbose", false, "verbose logging")

	flag.Parse()

	utils.InitLogger(verbose)

	if inFile == "" || motif == "" || outFile == "" {
		flag.Usage()
		utils.LOGGER.Fatal("Error -in, -motif and -out must be provided!")
	}

	tStart := time.Now()

	exitCode, err := extractModule(inFile.String(), motif, outFile, geneSetFile.String())
	utils.Check(err)

	if exitCode != 0 {
		os.Exit(exitCode)
	}

	utils.LogTiming("GRNModule", tStart)
}

/*extractModule write the module of motif found in the network inFile into outFile and,
when geneSetFile is not empty, log its enrichment. Return 1 without writing outFile
when the network has no edge for motif */
func extractModule(inFile, motif, outFile, geneSetFile string) (int, error) {
	network, err := grn.ReadCytoscape(inFile)
	if err != nil {
		return 1, err
	}

	module, err := grn.ExtractModule(network, motif)

	switch {
	case errors.Is(err, grn.ErrEmptyModule):
		fmt.Fprintln(os.Stderr, "Warning: No genes found in TF module. Check spelling of motif ID and try again. Exiting")
		return 1, nil
	case err != nil:
		return 1, err
	}

	utils.LOGGER.Infof("Found %d genes", len(module))

	if err = grn.WriteModule(outFile, module); err != nil {
		return 1, err
	}

	if geneSetFile == "" {
		return 0, nil
	}

	geneSet, err := grn.LoadGeneSet(geneSetFile)
	if err != nil {
		return 1, err
	}

	enrichment, err := grn.ModuleEnrichment(network, module, geneSet)

	logger := utils.LOGGER.WithFields(map[string]interface{}{
		"module_in_set":     enrichment.ModuleInSet,
		"module_not_in_set": enrichment.ModuleNotInSet,
		"rest_in_set":       enrichment.RestInSet,
		"rest_not_in_set":   enrichment.RestNotInSet,
	})

	switch {
	case errors.Is(err, grn.ErrDegenerateTable):
		logger.Warnf("Enrichment of %s not tested: %s", geneSetFile, grn.ErrDegenerateTable)
	case err != nil:
		return 1, err
	default:
		logger.Infof("Enrichment of %s: chi2 %f p-value %e", geneSetFile, enrichment.ChiSquare, enrichment.PValue)
	}

	return 0, nil
}
