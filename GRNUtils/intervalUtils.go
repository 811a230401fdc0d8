package grnutils

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/biogo/store/interval"
	"github.com/jinzhu/copier"
)

//IntInterval Integer-specific intervals
type IntInterval struct {
	Start, End int
	UID        uintptr
}

//Overlap rule for two Interval. BED intervals are half-open so touching intervals do not overlap
func (i IntInterval) Overlap(b interval.IntRange) bool {
	return i.Start < b.End && b.Start < i.End
}

//ID Return the ID of Interval
func (i IntInterval) ID() uintptr {
	return i.UID
}

//Range Return the range of Interval
func (i IntInterval) Range() interval.IntRange {
	return interval.IntRange{Start: i.Start, End: i.End}
}

//String Return the string repr of Interval
func (i IntInterval) String() string {
	return fmt.Sprintf("(%d, %d) id: %d", i.Start, i.End, i.ID())
}

//BedRecord one line of a BED file
type BedRecord struct {
	Chr        string
	Start, End int
	//Name fourth column, empty for BED3
	Name string
	//Fields all the columns of the line
	Fields []string
	//Line line number in the source file, 0 when not read from a file
	Line int
}

/*PeakToString Convert record to chr\tstart\tend */
func (r BedRecord) PeakToString() string {
	return fmt.Sprintf("%s\t%d\t%d", r.Chr, r.Start, r.End)
}

/*SplitToBedRecord convert a split BED line into a record */
func SplitToBedRecord(split []string) (record BedRecord, err error) {
	if len(split) < 3 {
		return record, fmt.Errorf("%q cannot be cut in chr int int", strings.Join(split, "\t"))
	}

	record.Chr = split[0]

	if record.Start, err = strconv.Atoi(split[1]); err != nil {
		return record, fmt.Errorf("start position %q cannot be used as int", split[1])
	}

	if record.End, err = strconv.Atoi(split[2]); err != nil {
		return record, fmt.Errorf("end position %q cannot be used as int", split[2])
	}

	if record.End < record.Start {
		return record, fmt.Errorf("region %s:%d-%d has end < start", record.Chr, record.Start, record.End)
	}

	if len(split) > 3 {
		record.Name = split[3]
	}

	record.Fields = split

	return record, nil
}

/*LoadBedRegions load all the regions of a BED file. Comment, track and browser lines are skipped */
func LoadBedRegions(fname string) ([]BedRecord, error) {
	scanner, file, err := ReturnReader(fname, 0)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var records []BedRecord
	var line string
	var lineNb int

	for scanner.Scan() {
		line = strings.TrimRight(scanner.Text(), "\r")
		lineNb++

		if len(line) == 0 || line[0] == '#' ||
			strings.HasPrefix(line, "track") || strings.HasPrefix(line, "browser") {
			continue
		}

		record, err := SplitToBedRecord(strings.Split(line, "\t"))
		if err != nil {
			return nil, &FormatError{File: fname, Line: lineNb, Msg: "invalid BED region", Err: err}
		}

		record.Line = lineNb
		records = append(records, record)
	}

	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", fname, err)
	}

	return records, nil
}

/*SortBed sort records by chromosome then start (sort -k1,1 -k2,2n) */
func SortBed(records []BedRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		switch {
		case records[i].Chr != records[j].Chr:
			return records[i].Chr < records[j].Chr
		case records[i].Start != records[j].Start:
			return records[i].Start < records[j].Start
		default:
			return records[i].End < records[j].End
		}
	})
}

//BedIndex per chromosome interval trees over a set of BED records
type BedIndex struct {
	Chrintervaldict map[string]*interval.IntTree
	//Records the indexed records, the UID of each interval is its position here
	Records []BedRecord
}

/*NewBedIndex create the interval trees for records */
func NewBedIndex(records []BedRecord) (*BedIndex, error) {
	index := &BedIndex{
		Chrintervaldict: make(map[string]*interval.IntTree),
		Records:         records,
	}

	for pos, record := range records {
		inttree, isInside := index.Chrintervaldict[record.Chr]

		if !isInside {
			inttree = &interval.IntTree{}
			index.Chrintervaldict[record.Chr] = inttree
		}

		err := inttree.Insert(IntInterval{Start: record.Start, End: record.End, UID: uintptr(pos)}, false)
		if err != nil {
			return nil, fmt.Errorf("cannot index region %s: %w", record.PeakToString(), err)
		}
	}

	return index, nil
}

/*Query return the indexed records overlapping record, in index order */
func (index *BedIndex) Query(record BedRecord) []BedRecord {
	inttree, isInside := index.Chrintervaldict[record.Chr]

	if !isInside {
		return nil
	}

	intervals := inttree.Get(IntInterval{Start: record.Start, End: record.End})

	if len(intervals) == 0 {
		return nil
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].ID() < intervals[j].ID()
	})

	hits := make([]BedRecord, len(intervals))

	for i, oneInterval := range intervals {
		hits[i] = index.Records[oneInterval.ID()]
	}

	return hits
}

/*Overlaps return true if at least one indexed record overlaps record */
func (index *BedIndex) Overlaps(record BedRecord) bool {
	inttree, isInside := index.Chrintervaldict[record.Chr]

	if !isInside {
		return false
	}

	return len(inttree.Get(IntInterval{Start: record.Start, End: record.End})) > 0
}

/*Clone copy the interval trees so that each worker owns its index */
func (index *BedIndex) Clone() (*BedIndex, error) {
	clone := &BedIndex{
		Chrintervaldict: make(map[string]*interval.IntTree, len(index.Chrintervaldict)),
		Records:         index.Records,
	}

	for key, tree := range index.Chrintervaldict {
		clone.Chrintervaldict[key] = &interval.IntTree{}

		if err := copier.Copy(clone.Chrintervaldict[key], tree); err != nil {
			return nil, err
		}
	}

	return clone, nil
}

//Overlap one pair of overlapping records (bedtools intersect -wo)
type Overlap struct {
	A, B BedRecord
}

//Length number of overlapping bases
func (o Overlap) Length() int {
	start, end := o.A.Start, o.A.End

	if o.B.Start > start {
		start = o.B.Start
	}

	if o.B.End < end {
		end = o.B.End
	}

	return end - start
}

/*Intersect return every pair (a, b) with a non-zero overlap, b being looked up in index */
func Intersect(a []BedRecord, index *BedIndex) []Overlap {
	var overlaps []Overlap

	for _, record := range a {
		for _, hit := range index.Query(record) {
			overlaps = append(overlaps, Overlap{A: record, B: hit})
		}
	}

	return overlaps
}

/*FilterOverlapping keep the records of a overlapping at least one record of index (intersect -wa -u) */
func FilterOverlapping(a []BedRecord, index *BedIndex) []BedRecord {
	var kept []BedRecord

	for _, record := range a {
		if index.Overlaps(record) {
			kept = append(kept, record)
		}
	}

	return kept
}

/*FilterNonOverlapping keep the records of a overlapping no record of index (intersect -v) */
func FilterNonOverlapping(a []BedRecord, index *BedIndex) []BedRecord {
	var kept []BedRecord

	for _, record := range a {
		if !index.Overlaps(record) {
			kept = append(kept, record)
		}
	}

	return kept
}
