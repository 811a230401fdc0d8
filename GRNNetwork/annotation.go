package grnnetwork

import (
	"fmt"
	"strings"

	utils "github.com/petebio/Gene-regulatory-network-analysis/GRNUtils"
)

//Annotation one gene ID -> motif family pair of the TF annotation file
type Annotation struct {
	Gene  string
	Motif string
}

//TFAnnotation TF annotation pairs in file order
type TFAnnotation struct {
	Pairs []Annotation
}

/*Genes return the set of annotated TF genes */
func (a *TFAnnotation) Genes() map[string]bool {
	genes := make(map[string]bool, len(a.Pairs))

	for _, pair := range a.Pairs {
		genes[pair.Gene] = true
	}

	return genes
}

/*Families return the set of motif families */
func (a *TFAnnotation) Families() map[string]bool {
	families := make(map[string]bool)

	for _, pair := range a.Pairs {
		families[pair.Motif] = true
	}

	return families
}

/*LoadTFAnnotation load a gene<TAB>motif file, skipping the header line */
func LoadTFAnnotation(fname string) (*TFAnnotation, error) {
	var split []string
	var line string

	scanner, file, err := utils.ReturnReader(fname, 1)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	annotation := &TFAnnotation{}
	lineNb := 1

	for scanner.Scan() {
		lineNb++
		line = strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}

		split = strings.Split(line, "\t")

		if len(split) != 2 {
			return nil, &utils.FormatError{
				File: fname,
				Line: lineNb,
				Msg:  fmt.Sprintf("expected <gene ID>\\t<motif ID> but found %d columns", len(split))}
		}

		annotation.Pairs = append(annotation.Pairs, Annotation{Gene: split[0], Motif: split[1]})
	}

	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", fname, err)
	}

	return annotation, nil
}
