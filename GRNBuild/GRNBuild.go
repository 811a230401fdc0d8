package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	grn "github.com/petebio/Gene-regulatory-network-analysis/GRNNetwork"
	utils "github.com/petebio/Gene-regulatory-network-analysis/GRNUtils"
)

//buildInputs input files of the network construction
type buildInputs struct {
	Peaks       string
	MotifDir    string
	Expression  string
	TFAnnotaton string
}

func main() {
	var peakFile, motifDir, exprsFile, annotFile, footprintFile, configFile utils.Filename
	var outFile string

	config := utils.DefaultBuildConfig()

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `
#################### MODULE TO BUILD A GENE REGULATORY NETWORK ########################

"""For each motif, the most expressed TF gene annotated with the motif is linked to every expressed
target gene whose peaks overlap the motif. The edge count is the number of motif occurrences"""
USAGE: GRNBuild -bed <file> -motifs <dir> -exprs <file> -annot <file> -out <string>
       (optionnal -footprints <file> -all -min <float> -threads <int> -config <file> -verbose)

-bed: BED file of peaks with the associated gene ID in the 4th column
-motifs: directory of <motif ID>.bed files with the positions of each TF motif
-exprs: gene ID<TAB>expression value file (with header)
-annot: gene ID<TAB>motif ID TF annotation file (with header)
`)
		flag.PrintDefaults()
	}

	flag.Var(&peakFile, "bed", "annotated BED file of peaks (gene ID in 4th column)")
	flag.Var(&motifDir, "motifs", "directory of BED files with the genomic coordinates of each TF motif")
	flag.Var(&exprsFile, "exprs", "gene expression file")
	flag.Var(&annotFile, "annot", "TF annotation file")
	flag.Var(&footprintFile, "footprints", "optional BED file of DNaseI/ATAC-Seq footprints to filter motifs against")
	flag.Var(&configFile, "config", "optional YAML file with the build options")
	flag.StringVar(&outFile, "out", "", "output file (.cyjs is appended when missing)")
	flag.BoolVar(&config.IncludeAllGenes, "all", config.IncludeAllGenes, "include all genes in the network, not just TF genes")
	flag.Float64Var(&config.MinExpression, "min", config.MinExpression, "minimum gene expression value for a gene to be included in the network")
	flag.IntVar(&config.Threads, "threads", config.Threads, "number of motif families processed concurrently")
	flag.BoolVar(&config.Verbose, "verbose", config.Verbose, "verbose logging")

	flag.Parse()

	if configFile != "" {
		config = mergeConfig(config, configFile.String())
	}

	if footprintFile != "" {
		config.Footprints = footprintFile.String()
	}

	utils.InitLogger(config.Verbose)

	switch {
	case peakFile == "" || motifDir == "" || exprsFile == "" || annotFile == "":
		flag.Usage()
		utils.LOGGER.Fatal("Error -bed, -motifs, -exprs and -annot must be provided!")
	case outFile == "":
		utils.LOGGER.Fatal("Error -out must be provided!")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tStart := time.Now()

	network, err := buildNetwork(ctx, buildInputs{
		Peaks:       peakFile.String(),
		MotifDir:    motifDir.String(),
		Expression:  exprsFile.String(),
		TFAnnotaton: annotFile.String(),
	}, config)
	utils.Check(err)

	fname, err := grn.WriteCytoscape(outFile, network)
	utils.Check(err)

	utils.LOGGER.Infof("File: %s created", fname)
	utils.LogTiming("GRNBuild", tStart)
}

/*mergeConfig read the YAML config and let the flags given on the command line override it */
func mergeConfig(fromFlags utils.BuildConfig, fname string) utils.BuildConfig {
	config, err := utils.LoadBuildConfig(fname)
	utils.Check(err)

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "all":
			config.IncludeAllGenes = fromFlags.IncludeAllGenes
		case "min":
			config.MinExpression = fromFlags.MinExpression
		case "threads":
			config.Threads = fromFlags.Threads
		case "verbose":
			config.Verbose = fromFlags.Verbose
		}
	})

	return config
}

/*buildNetwork read the inputs and assemble the network */
func buildNetwork(ctx context.Context, inputs buildInputs, config utils.BuildConfig) (*grn.Network, error) {
	opts := grn.Options{
		MinExpression:   config.MinExpression,
		IncludeAllGenes: config.IncludeAllGenes,
	}

	peaks, err := grn.LoadAnnotatedPeaks(inputs.Peaks)
	if err != nil {
		return nil, err
	}

	utils.LOGGER.Infof("Read %d peaks from %s", len(peaks), inputs.Peaks)

	sites, err := grn.LoadMotifSites(inputs.MotifDir)
	if err != nil {
		return nil, err
	}

	if config.Footprints != "" {
		footprints, err := utils.LoadBedRegions(config.Footprints)
		if err != nil {
			return nil, err
		}

		footprintIndex, err := utils.NewBedIndex(footprints)
		if err != nil {
			return nil, err
		}

		sites.KeepFootprints(footprintIndex)
		utils.LOGGER.Debugf("Motif sites filtered against %d footprints", len(footprints))
	}

	utils.LOGGER.Infof("Read motif positions for %d motifs", len(sites))

	expression, err := grn.LoadExpression(inputs.Expression, opts.MinExpression)
	if err != nil {
		return nil, err
	}

	annotation, err := grn.LoadTFAnnotation(inputs.TFAnnotaton)
	if err != nil {
		return nil, err
	}

	resolution := grn.ResolveReferences(annotation, expression, sites.Families())

	utils.LOGGER.Infof("Read gene expression and annotation data for %d TF genes and %d TF families",
		len(resolution.TFGenes), len(resolution.References))

	peakIndex, err := utils.NewBedIndex(peaks)
	if err != nil {
		return nil, err
	}

	counts, err := grn.CountMotifOverlaps(ctx, peakIndex, sites, resolution, expression, opts, config.Threads)
	if err != nil {
		return nil, err
	}

	network, err := grn.Assemble(resolution.References, counts, expression)
	if err != nil {
		return nil, err
	}

	summary := network.Summary()

	utils.LOGGER.WithFields(map[string]interface{}{
		"regulators":      summary.Regulators,
		"mean_count":      summary.MeanCount,
		"std_count":       summary.StdCount,
		"mean_out_degree": summary.MeanOutDegree,
	}).Infof("Built network with %d nodes and %d edges", summary.Nodes, summary.Edges)

	return network, nil
}
