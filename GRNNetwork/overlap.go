package grnnetwork

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	utils "github.com/petebio/Gene-regulatory-network-analysis/GRNUtils"
)

//MotifSites motif family -> genomic positions of the motif
type MotifSites map[string][]utils.BedRecord

/*LoadMotifSites load every <motif>.bed file of dir. The motif ID is the file name without extension */
func LoadMotifSites(dir string) (MotifSites, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read motif directory %s: %w", dir, err)
	}

	sites := make(MotifSites)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".bed") {
			continue
		}

		records, err := utils.LoadBedRegions(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		sites[strings.TrimSuffix(entry.Name(), ".bed")] = records
	}

	return sites, nil
}

/*Families return the set of motif IDs */
func (m MotifSites) Families() map[string]bool {
	families := make(map[string]bool, len(m))

	for motif := range m {
		families[motif] = true
	}

	return families
}

/*KeepFootprints keep only the motif sites overlapping a footprint */
func (m MotifSites) KeepFootprints(footprints *utils.BedIndex) {
	for motif, records := range m {
		m[motif] = utils.FilterOverlapping(records, footprints)
	}
}

/*LoadAnnotatedPeaks load a BED file of peaks whose fourth column is the associated gene ID */
func LoadAnnotatedPeaks(fname string) ([]utils.BedRecord, error) {
	peaks, err := utils.LoadBedRegions(fname)
	if err != nil {
		return nil, err
	}

	for _, peak := range peaks {
		if peak.Name == "" {
			return nil, &utils.FormatError{
				File: fname,
				Line: peak.Line,
				Msg:  fmt.Sprintf("peak %s has no gene ID in the 4th column", peak.PeakToString())}
		}
	}

	utils.SortBed(peaks)

	return peaks, nil
}

/*CountOverlaps tally the (peak, motif site) pairs per gene of the peak (Overlap.A).
Only expressed genes are kept and, unless opts.IncludeAllGenes, only TF genes */
func CountOverlaps(overlaps []utils.Overlap, expression Expression, tfGenes map[string]bool, opts Options) map[string]int {
	counts := make(map[string]int)

	for _, overlap := range overlaps {
		gene := overlap.A.Name

		if !opts.IncludeAllGenes && !tfGenes[gene] {
			continue
		}

		if _, isExpressed := expression.Value(gene); !isExpressed {
			continue
		}

		counts[gene]++
	}

	return counts
}

/*PeakMotifOverlaps pair every motif site with the peaks it overlaps. Overlap.A is the peak */
func PeakMotifOverlaps(peaks *utils.BedIndex, sites []utils.BedRecord) []utils.Overlap {
	var overlaps []utils.Overlap

	for _, site := range sites {
		for _, peak := range peaks.Query(site) {
			overlaps = append(overlaps, utils.Overlap{A: peak, B: site})
		}
	}

	return overlaps
}

/*CountMotifOverlaps count, for each motif family with a reference regulator, the motif
occurrences per target gene. Families are independent and are spread over threads workers,
each owning a copy of the peak index */
func CountMotifOverlaps(ctx context.Context, peaks *utils.BedIndex, sites MotifSites,
	resolution Resolution, expression Expression, opts Options, threads int) (map[string]map[string]int, error) {

	if threads < 1 {
		threads = 1
	}

	var motifs []string

	for motif := range sites {
		if _, isInside := resolution.References[motif]; isInside {
			motifs = append(motifs, motif)
		}
	}

	sort.Strings(motifs)

	counts := make(map[string]map[string]int, len(motifs))
	jobs := make(chan string)

	var mutex sync.Mutex
	var waiting sync.WaitGroup
	var err error

	for i := 0; i < threads; i++ {
		index, cloneErr := peaks.Clone()
		if cloneErr != nil {
			close(jobs)
			waiting.Wait()
			return nil, fmt.Errorf("cannot copy peak index: %w", cloneErr)
		}

		waiting.Add(1)

		go func(index *utils.BedIndex) {
			defer waiting.Done()

			for motif := range jobs {
				geneCount := CountOverlaps(
					PeakMotifOverlaps(index, sites[motif]),
					expression,
					resolution.TFGenes,
					opts)

				mutex.Lock()
				counts[motif] = geneCount
				mutex.Unlock()
			}
		}(index)
	}

loop:
	for _, motif := range motifs {
		if err = ctx.Err(); err != nil {
			break
		}

		select {
		case jobs <- motif:
		case <-ctx.Done():
			err = ctx.Err()
			break loop
		}
	}

	close(jobs)
	waiting.Wait()

	if err != nil {
		return nil, err
	}

	return counts, nil
}
