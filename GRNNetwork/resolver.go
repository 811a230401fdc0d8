package grnnetwork

import "math"

//Reference the TF gene chosen to represent a motif family
type Reference struct {
	Gene       string
	Expression float64
}

//References motif family -> reference regulator
type References map[string]Reference

//Resolution output of ResolveReferences
type Resolution struct {
	References References
	//TFGenes annotated TF genes that are expressed, in the families considered
	TFGenes map[string]bool
}

/*ResolveReferences pick for each motif family its most expressed annotated gene.
Pairs are visited in file order and a gene only replaces the current reference when
its expression is strictly greater, so the first gene seen wins ties.
When families is not nil, only these motif families are considered.
Families without any expressed member are absent from the result */
func ResolveReferences(annotation *TFAnnotation, expression Expression, families map[string]bool) Resolution {
	resolution := Resolution{
		References: make(References),
		TFGenes:    make(map[string]bool),
	}

	best := make(map[string]Reference)

	for _, pair := range annotation.Pairs {
		if families != nil && !families[pair.Motif] {
			continue
		}

		value, isExpressed := expression.Value(pair.Gene)

		if !isExpressed {
			continue
		}

		resolution.TFGenes[pair.Gene] = true

		current, isInside := best[pair.Motif]

		if !isInside {
			current = Reference{Expression: math.Inf(-1)}
		}

		if value > current.Expression {
			current = Reference{Gene: pair.Gene, Expression: value}
		}

		best[pair.Motif] = current
	}

	for motif, ref := range best {
		if ref.Gene == "" {
			continue
		}

		resolution.References[motif] = ref
	}

	return resolution
}
