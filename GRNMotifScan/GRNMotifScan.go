package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	utils "github.com/petebio/Gene-regulatory-network-analysis/GRNUtils"
)

/*MOTIFEXT extension of the Homer motif files */
const MOTIFEXT = ".motif"

//scanOptions inputs of a motif scan
type scanOptions struct {
	Bed      string
	MotifDir string
	Genome   string
	OutDir   string
	Dist     int
}

func main() {
	var bedFile, motifDir utils.Filename
	var opts scanOptions
	var verbose bool

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `
#################### MODULE TO FIND TF MOTIFS IN PEAKS ########################

"""Search each Homer motif of -motifs in the peaks and write one <motif>.bed file per motif in -out.
Palindromic motifs found twice, once per strand, are kept once"""

USAGE: GRNMotifScan -bed <file> -motifs <dir> -genome <string> -out <dir> (optionnal -dist <int> -verbose)
`)
		flag.PrintDefaults()
	}

	flag.Var(&bedFile, "bed", "BED file to use for motif search")
	flag.Var(&motifDir, "motifs", "directory of motif files to use with Homer")
	flag.StringVar(&opts.Genome, "genome", "", "genome version to use with Homer")
	flag.StringVar(&opts.OutDir, "out", "", "output directory")
	flag.IntVar(&opts.Dist, "dist", 2, "maximum distance between duplicate motif pairs")
	flag.BoolVar(&verbose, "verbose", false, "verbose logging")

	flag.Parse()

	utils.InitLogger(verbose)

	if bedFile == "" || motifDir == "" || opts.Genome == "" || opts.OutDir == "" {
		flag.Usage()
		utils.LOGGER.Fatal("Error -bed, -motifs, -genome and -out must be provided!")
	}

	var err error

	opts.Bed, err = filepath.Abs(bedFile.String())
	utils.Check(err)
	opts.MotifDir, err = filepath.Abs(motifDir.String())
	utils.Check(err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tStart := time.Now()
	utils.Check(scanMotifs(ctx, opts))
	utils.LogTiming("GRNMotifScan", tStart)
}

/*scanMotifs run the motif search for every motif file without an existing output */
func scanMotifs(ctx context.Context, opts scanOptions) error {
	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return err
	}

	entries, err := os.ReadDir(opts.MotifDir)
	if err != nil {
		return fmt.Errorf("cannot read motif directory %s: %w", opts.MotifDir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), MOTIFEXT) {
			continue
		}

		motif := strings.TrimSuffix(entry.Name(), MOTIFEXT)
		outFile := filepath.Join(opts.OutDir, motif+".bed")

		if _, err = os.Stat(outFile); err == nil {
			utils.LOGGER.Debugf("%s already exists, skipping motif %s", outFile, motif)
			continue
		}

		rawFile := filepath.Join(opts.OutDir, motif+"_raw.bed")

		err = utils.RunHomerAnnotate(ctx, opts.Bed, opts.Genome, "",
			"-m", filepath.Join(opts.MotifDir, entry.Name()),
			"-mbed", rawFile)
		if err != nil {
			return err
		}

		nbHits, err := dedupMotifHits(rawFile, outFile, opts.Dist)
		if err != nil {
			return err
		}

		utils.LOGGER.Infof("%d sites found for motif %s", nbHits, motif)

		if err = os.Remove(rawFile); err != nil {
			return err
		}
	}

	return nil
}

/*dedupMotifHits remove the palindromic duplicates of rawFile and write the kept hits as BED3 */
func dedupMotifHits(rawFile, outFile string, dist int) (int, error) {
	hits, err := utils.LoadBedRegions(rawFile)
	if err != nil {
		return 0, err
	}

	hits, err = utils.RemovePalindromicDuplicates(hits, dist)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", rawFile, err)
	}

	lines := make([]string, len(hits))

	for i, hit := range hits {
		lines[i] = hit.PeakToString()
	}

	return len(hits), utils.WriteLines(outFile, lines)
}
