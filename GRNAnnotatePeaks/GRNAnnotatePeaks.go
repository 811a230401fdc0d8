package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	utils "github.com/petebio/Gene-regulatory-network-analysis/GRNUtils"
)

func main() {
	var bedFile, chicFile utils.Filename
	var outFile, genome, tmpDir string
	var maxDist int
	var verbose bool

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `
#################### MODULE TO ANNOTATE PEAKS WITH THEIR TARGET GENE ########################

"""Annotate each peak to the gene of the CHiC interaction it overlaps. Peaks without CHiC
interaction are annotated to their closest gene with Homer, within -dist bp"""

USAGE: GRNAnnotatePeaks -bed <file> -chic <file> -out <file> (optionnal -genome <string> -dist <int> -tmp <dir> -verbose)

-chic: CHiC interactions with a header line and the target gene in the 5th column
`)
		flag.PrintDefaults()
	}

	flag.Var(&bedFile, "bed", "BED file to annotate")
	flag.Var(&chicFile, "chic", "BED file of CHiC interactions")
	flag.StringVar(&outFile, "out", "", "output BED file")
	flag.StringVar(&genome, "genome", "hg38", "genome version to use with Homer (for sites with no CHiC annotation)")
	flag.IntVar(&maxDist, "dist", 200000, "maximum distance between peak and target gene (for sites with no CHiC annotation)")
	flag.StringVar(&tmpDir, "tmp", ".", "directory of the temporary files")
	flag.BoolVar(&verbose, "verbose", false, "verbose logging")

	flag.Parse()

	utils.InitLogger(verbose)

	if bedFile == "" || chicFile == "" || outFile == "" {
		flag.Usage()
		utils.LOGGER.Fatal("Error -bed, -chic and -out must be provided!")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tStart := time.Now()

	chic, err := loadCHiC(chicFile.String())
	utils.Check(err)
	utils.LOGGER.Infof("Read %d sites annotated by CHiC", len(chic))

	peaks, err := utils.LoadBedRegions(bedFile.String())
	utils.Check(err)

	annotated, remaining, err := annotateWithCHiC(peaks, chic)
	utils.Check(err)

	if len(peaks) > 0 {
		withCHiC := len(peaks) - len(remaining)

		utils.LOGGER.Infof("Read %d sites from %s", len(peaks), bedFile)
		utils.LOGGER.Infof("\t- %d (%.2f%%) of these could be annoted by CHiC",
			withCHiC, float64(withCHiC)/float64(len(peaks))*100)
		utils.LOGGER.Infof("\t- %d (%.2f%%) of these could not be annoted by CHiC",
			len(remaining), float64(len(remaining))/float64(len(peaks))*100)
	}

	if len(remaining) > 0 {
		utils.LOGGER.Info("Annotating remaining peaks with Homer")

		closest, err := annotateClosestGene(ctx, remaining, genome, tmpDir, maxDist)
		utils.Check(err)

		for _, peak := range closest {
			annotated[peak.PeakToString()] = peak
		}

		utils.LOGGER.Infof("Successfully annotated %d sites to closest gene within %d bp", len(closest), maxDist)
	}

	lines := annotatedToBed(annotated)
	utils.Check(utils.WriteLines(outFile, lines))

	utils.LOGGER.Infof("Wrote %d annotated peaks to %s", len(lines), outFile)
	utils.LogTiming("GRNAnnotatePeaks", tStart)
}

/*loadCHiC load the CHiC interactions. The first line is a header and the gene is in the 5th column */
func loadCHiC(fname string) ([]utils.BedRecord, error) {
	scanner, file, err := utils.ReturnReader(fname, 1)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var sites []utils.BedRecord
	var split []string

	lineNb := 1

	for scanner.Scan() {
		lineNb++
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}

		split = strings.Split(line, "\t")

		if len(split) < 5 {
			return nil, &utils.FormatError{
				File: fname,
				Line: lineNb,
				Msg:  fmt.Sprintf("expected at least 5 columns, found %d", len(split))}
		}

		site, err := utils.SplitToBedRecord(split[:3])
		if err != nil {
			return nil, &utils.FormatError{File: fname, Line: lineNb, Msg: "invalid CHiC site", Err: err}
		}

		site.Name = split[4]
		sites = append(sites, site)
	}

	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", fname, err)
	}

	utils.SortBed(sites)

	return sites, nil
}

/*annotateWithCHiC give each peak the gene of the CHiC sites it overlaps (the last site in
sorted order wins). Peaks without CHiC site are returned as remaining */
func annotateWithCHiC(peaks, chic []utils.BedRecord) (
	annotated map[string]utils.BedRecord, remaining []utils.BedRecord, err error) {

	utils.SortBed(peaks)

	index, err := utils.NewBedIndex(chic)
	if err != nil {
		return nil, nil, err
	}

	annotated = make(map[string]utils.BedRecord)

	for _, overlap := range utils.Intersect(peaks, index) {
		peak := overlap.A
		peak.Name = overlap.B.Name
		annotated[peak.PeakToString()] = peak
	}

	remaining = utils.FilterNonOverlapping(peaks, index)

	return annotated, remaining, nil
}

/*annotateClosestGene run Homer on peaks and return the peaks with a gene within maxDist bp */
func annotateClosestGene(ctx context.Context, peaks []utils.BedRecord, genome, tmpDir string, maxDist int) (
	[]utils.BedRecord, error) {

	bedTmp := utils.TmpFilename(tmpDir, "tmp")
	lines := make([]string, len(peaks))

	for i, peak := range peaks {
		lines[i] = strings.Join(peak.Fields, "\t")
	}

	if err := utils.WriteLines(bedTmp, lines); err != nil {
		return nil, err
	}
	defer os.Remove(bedTmp)

	homerTmp := utils.TmpFilename(tmpDir, "tmp")
	defer os.Remove(homerTmp)

	if err := utils.RunHomerAnnotate(ctx, bedTmp, genome, homerTmp); err != nil {
		return nil, err
	}

	return utils.ParseHomerAnnotation(homerTmp, maxDist)
}

/*annotatedToBed sorted chr start end gene lines */
func annotatedToBed(annotated map[string]utils.BedRecord) []string {
	records := make([]utils.BedRecord, 0, len(annotated))

	for _, record := range annotated {
		records = append(records, record)
	}

	utils.SortBed(records)

	lines := make([]string, len(records))

	for i, record := range records {
		lines[i] = fmt.Sprintf("%s\t%s", record.PeakToString(), record.Name)
	}

	return lines
}
