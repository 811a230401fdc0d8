package grnutils

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

/*HOMERANNOTATE motif and peak annotation program */
const HOMERANNOTATE = "annotatePeaks.pl"

/*HOMERNCOLS number of columns of an annotated row with a nearest gene */
const HOMERNCOLS = 19

/*RunHomerAnnotate run annotatePeaks.pl bed genome -noann args... and write stdout in out */
func RunHomerAnnotate(ctx context.Context, bed, genome, out string, args ...string) error {
	return ExceCmd(ctx, out, HOMERANNOTATE, append([]string{bed, genome, "-noann"}, args...)...)
}

/*motifCentre ceil of the mean of start and end */
func motifCentre(record BedRecord) int {
	sum := record.Start + record.End

	if sum%2 != 0 {
		return sum/2 + 1
	}

	return sum / 2
}

/*RemovePalindromicDuplicates remove the second hit of palindromic motifs found on both strands.
records are sorted then a hit is dropped when it is on the same chromosome as the previous hit,
on the opposite strand, with centres at most dist bp apart. The strand is the 6th column */
func RemovePalindromicDuplicates(records []BedRecord, dist int) ([]BedRecord, error) {
	SortBed(records)

	var kept []BedRecord
	var prevChr, prevStrand string
	var prevPos int

	for i, record := range records {
		if len(record.Fields) < 6 {
			return nil, fmt.Errorf("motif hit %s has no strand column", record.PeakToString())
		}

		strand := record.Fields[5]
		pos := motifCentre(record)

		isDuplicate := i > 0 && record.Chr == prevChr && strand != prevStrand &&
			abs(pos-prevPos) <= dist

		if !isDuplicate {
			kept = append(kept, record)
		}

		prevChr, prevPos, prevStrand = record.Chr, pos, strand
	}

	return kept, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

/*ParseHomerAnnotation read the annotatePeaks.pl table and return the peaks whose nearest gene
is at most maxDist bp away. The gene is in Name. A distance that cannot be parsed counts as
maxDist + 1. Start positions are converted back to 0-based */
func ParseHomerAnnotation(fname string, maxDist int) ([]BedRecord, error) {
	scanner, file, err := ReturnReader(fname, 1)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var annotated []BedRecord
	var split []string
	var record BedRecord
	var distance int

	lineNb := 1

	for scanner.Scan() {
		lineNb++
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}

		split = strings.Split(line, "\t")

		if len(split) < 4 {
			return nil, &FormatError{File: fname, Line: lineNb, Msg: "annotation row without coordinates"}
		}

		if record, err = SplitToBedRecord(split[1:4]); err != nil {
			return nil, &FormatError{File: fname, Line: lineNb, Msg: "invalid peak coordinates", Err: err}
		}

		distance = maxDist + 1

		if len(split) > 9 {
			if value, err := strconv.Atoi(split[9]); err == nil {
				distance = abs(value)
			}
		}

		if distance > maxDist || len(split) != HOMERNCOLS {
			continue
		}

		record.Start--
		record.Name = split[15]
		record.Fields = []string{record.Chr, strconv.Itoa(record.Start), strconv.Itoa(record.End), record.Name}

		annotated = append(annotated, record)
	}

	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", fname, err)
	}

	return annotated, nil
}
