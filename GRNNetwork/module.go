package grnnetwork

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	stats "github.com/glycerine/golang-fisher-exact"
	utils "github.com/petebio/Gene-regulatory-network-analysis/GRNUtils"
)

var (
	//ErrEmptyModule no edge of a non-empty network comes from the requested motif
	ErrEmptyModule = errors.New("no genes found in TF module")
	//ErrDegenerateTable a row or column of the enrichment table sums to zero
	ErrDegenerateTable = errors.New("contingency table has an empty row or column")
)

/*ExtractModule return the sorted targets of the edges found through motif.
An empty network gives an empty module. A non-empty network without any edge
for motif gives ErrEmptyModule */
func ExtractModule(network *Network, motif string) ([]string, error) {
	if network.NumberOfEdges() == 0 {
		return []string{}, nil
	}

	targets := make(map[string]bool)

	for key := range network.edges {
		if key.Motif == motif {
			targets[key.Target] = true
		}
	}

	if len(targets) == 0 {
		return nil, fmt.Errorf("motif %q: %w", motif, ErrEmptyModule)
	}

	module := make([]string, 0, len(targets))

	for target := range targets {
		module = append(module, target)
	}

	sort.Strings(module)

	return module, nil
}

//Enrichment 2x2 table of module targets against a gene set, over all network targets
type Enrichment struct {
	ModuleInSet, ModuleNotInSet int
	RestInSet, RestNotInSet     int
	ChiSquare, PValue           float64
}

/*ModuleEnrichment test the over-representation of geneSet among the module targets
with a Yates corrected chi-square test. The universe is the set of network targets.
When a margin of the table is zero the counts are returned with ErrDegenerateTable */
func ModuleEnrichment(network *Network, module []string, geneSet map[string]bool) (enrichment Enrichment, err error) {
	inModule := make(map[string]bool, len(module))

	for _, gene := range module {
		inModule[gene] = true
	}

	universe := make(map[string]bool)

	for key := range network.edges {
		universe[key.Target] = true
	}

	for gene := range universe {
		switch {
		case inModule[gene] && geneSet[gene]:
			enrichment.ModuleInSet++
		case inModule[gene]:
			enrichment.ModuleNotInSet++
		case geneSet[gene]:
			enrichment.RestInSet++
		default:
			enrichment.RestNotInSet++
		}
	}

	if enrichment.isDegenerate() {
		return enrichment, fmt.Errorf("%+v: %w", enrichment.table(), ErrDegenerateTable)
	}

	enrichment.ChiSquare, enrichment.PValue = stats.ChiSquareTest(
		enrichment.ModuleInSet, enrichment.ModuleNotInSet,
		enrichment.RestInSet, enrichment.RestNotInSet, true)

	return enrichment, nil
}

func (e Enrichment) table() [2][2]int {
	return [2][2]int{
		{e.ModuleInSet, e.ModuleNotInSet},
		{e.RestInSet, e.RestNotInSet},
	}
}

/*isDegenerate true when a row or column total is zero */
func (e Enrichment) isDegenerate() bool {
	table := e.table()

	for i := 0; i < 2; i++ {
		if table[i][0]+table[i][1] == 0 || table[0][i]+table[1][i] == 0 {
			return true
		}
	}

	return false
}

/*LoadGeneSet load the first column of a one gene per line file */
func LoadGeneSet(fname string) (map[string]bool, error) {
	scanner, file, err := utils.ReturnReader(fname, 0)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	genes := make(map[string]bool)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || line[0] == '#' {
			continue
		}

		genes[strings.Fields(line)[0]] = true
	}

	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", fname, err)
	}

	return genes, nil
}

/*WriteModule write one gene per line */
func WriteModule(fname string, module []string) error {
	return utils.WriteLines(fname, module)
}
