package grnnetwork

import (
	"fmt"
	"strconv"
	"strings"

	utils "github.com/petebio/Gene-regulatory-network-analysis/GRNUtils"
)

//Options explicit configuration of the network construction
type Options struct {
	//MinExpression genes below this value are not expressed
	MinExpression float64
	//IncludeAllGenes keep targets that are not annotated TF genes
	IncludeAllGenes bool
}

//Expression gene ID -> expression value, restricted to expressed genes
type Expression map[string]float64

/*Value return the expression of gene and whether it is expressed */
func (e Expression) Value(gene string) (float64, bool) {
	value, isInside := e[gene]
	return value, isInside
}

/*LoadExpression load a gene<TAB>value file, skipping the header line.
Genes with a value below minExpression are left out */
func LoadExpression(fname string, minExpression float64) (Expression, error) {
	var split []string
	var line string
	var value float64

	scanner, file, err := utils.ReturnReader(fname, 1)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	expression := make(Expression)
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
				Msg:  fmt.Sprintf("expected <gene ID>\\t<expression> but found %d columns", len(split))}
		}

		if value, err = strconv.ParseFloat(split[1], 64); err != nil {
			return nil, &utils.FormatError{File: fname, Line: lineNb, Msg: "expression value is not a number", Err: err}
		}

		if value >= minExpression {
			expression[split[0]] = value
		}
	}

	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", fname, err)
	}

	return expression, nil
}
