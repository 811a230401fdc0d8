package grnnetwork

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveReferences(t *testing.T) {
	t.Run("most expressed gene of each family", func(t *testing.T) {
		data := loadTestData(t)

		assert.Equal(t, References{
			"GATA": {Gene: "GATA1", Expression: 10},
			"EBOX": {Gene: "TAL1", Expression: 8},
			"KLF":  {Gene: "KLF1", Expression: 3},
		}, data.resolution.References)

		assert.Equal(t, map[string]bool{"GATA1": true, "GATA2": true, "TAL1": true, "KLF1": true},
			data.resolution.TFGenes)
	})

	t.Run("first gene seen wins ties", func(t *testing.T) {
		annotation := &TFAnnotation{Pairs: []Annotation{
			{Gene: "B", Motif: "M"},
			{Gene: "A", Motif: "M"},
		}}

		resolution := ResolveReferences(annotation, Expression{"A": 4, "B": 4}, nil)

		assert.Equal(t, "B", resolution.References["M"].Gene)
	})

	t.Run("family without expressed gene is absent", func(t *testing.T) {
		annotation := &TFAnnotation{Pairs: []Annotation{
			{Gene: "A", Motif: "M"},
			{Gene: "B", Motif: "N"},
		}}

		resolution := ResolveReferences(annotation, Expression{"A": 1}, nil)

		assert.Contains(t, resolution.References, "M")
		assert.NotContains(t, resolution.References, "N")
		assert.Equal(t, map[string]bool{"A": true}, resolution.TFGenes)
	})

	t.Run("reference is the maximum of its family", func(t *testing.T) {
		data := loadTestData(t)

		for _, pair := range data.annotation.Pairs {
			value, isExpressed := data.expression.Value(pair.Gene)
			reference, isInside := data.resolution.References[pair.Motif]

			if !isExpressed {
				continue
			}

			assert.True(t, isInside)
			assert.GreaterOrEqual(t, reference.Expression, value)
		}
	})

	t.Run("families restricted to the motif sites", func(t *testing.T) {
		data := loadTestData(t)

		resolution := ResolveReferences(data.annotation, data.expression, map[string]bool{"EBOX": true})

		assert.Equal(t, References{"EBOX": {Gene: "TAL1", Expression: 8}}, resolution.References)
		assert.Equal(t, map[string]bool{"TAL1": true}, resolution.TFGenes)
	})
}
