// Package grnnetwork builds gene regulatory networks from TF annotations, gene
// expression and peak/motif overlaps, and converts them to and from count
// matrices and Cytoscape JSON.
package grnnetwork

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

var (
	//ErrInvalidEdge edge count must be strictly positive
	ErrInvalidEdge = errors.New("edge count must be > 0")
	//ErrUnknownNode edge endpoint not present in the network
	ErrUnknownNode = errors.New("unknown node")
)

//Node a gene of the network
type Node struct {
	ID         string
	Expression float64
}

//EdgeKey identifies an edge. The same pair of genes can be linked through several motifs
type EdgeKey struct {
	Source, Target, Motif string
}

//Edge regulator -> target link found through Motif, Count motif occurrences
type Edge struct {
	Source, Target, Motif string
	Count                 int
}

//Network directed gene regulatory network
type Network struct {
	nodes map[string]Node
	edges map[EdgeKey]int
}

/*NewNetwork return an empty network */
func NewNetwork() *Network {
	return &Network{
		nodes: make(map[string]Node),
		edges: make(map[EdgeKey]int),
	}
}

/*AddNode add gene id if absent. The expression of an existing node is never changed.
Return true when the node was inserted */
func (n *Network) AddNode(id string, expression float64) bool {
	if _, isInside := n.nodes[id]; isInside {
		return false
	}

	n.nodes[id] = Node{ID: id, Expression: expression}
	return true
}

/*HasNode true when gene id is a node of the network */
func (n *Network) HasNode(id string) bool {
	_, isInside := n.nodes[id]
	return isInside
}

/*Node return the node id */
func (n *Network) Node(id string) (Node, bool) {
	node, isInside := n.nodes[id]
	return node, isInside
}

/*SetEdge add or overwrite the edge source -> target for motif */
func (n *Network) SetEdge(source, target, motif string, count int) error {
	if count <= 0 {
		return fmt.Errorf("%s -> %s (%s): %w, got %d", source, target, motif, ErrInvalidEdge, count)
	}

	for _, id := range [2]string{source, target} {
		if !n.HasNode(id) {
			return fmt.Errorf("%s -> %s (%s): %w %q", source, target, motif, ErrUnknownNode, id)
		}
	}

	n.edges[EdgeKey{Source: source, Target: target, Motif: motif}] = count
	return nil
}

/*Edge return the count of an edge */
func (n *Network) Edge(source, target, motif string) (int, bool) {
	count, isInside := n.edges[EdgeKey{Source: source, Target: target, Motif: motif}]
	return count, isInside
}

/*NumberOfNodes number of genes in the network */
func (n *Network) NumberOfNodes() int {
	return len(n.nodes)
}

/*NumberOfEdges number of (source, target, motif) edges */
func (n *Network) NumberOfEdges() int {
	return len(n.edges)
}

/*Nodes return the nodes sorted by ID */
func (n *Network) Nodes() []Node {
	nodes := make([]Node, 0, len(n.nodes))

	for _, node := range n.nodes {
		nodes = append(nodes, node)
	}

	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].ID < nodes[j].ID
	})

	return nodes
}

/*Edges return the edges sorted by source, target then motif */
func (n *Network) Edges() []Edge {
	edges := make([]Edge, 0, len(n.edges))

	for key, count := range n.edges {
		edges = append(edges, Edge{Source: key.Source, Target: key.Target, Motif: key.Motif, Count: count})
	}

	sort.Slice(edges, func(i, j int) bool {
		switch {
		case edges[i].Source != edges[j].Source:
			return edges[i].Source < edges[j].Source
		case edges[i].Target != edges[j].Target:
			return edges[i].Target < edges[j].Target
		default:
			return edges[i].Motif < edges[j].Motif
		}
	})

	return edges
}

/*IsMultigraph true when two edges link the same genes through different motifs */
func (n *Network) IsMultigraph() bool {
	pairs := make(map[[2]string]bool, len(n.edges))

	for key := range n.edges {
		pair := [2]string{key.Source, key.Target}

		if pairs[pair] {
			return true
		}

		pairs[pair] = true
	}

	return false
}

//Summary descriptive statistics of a network
type Summary struct {
	Nodes, Edges, Regulators int
	MeanCount, StdCount      float64
	MeanOutDegree            float64
}

/*Summary compute the descriptive statistics of the network */
func (n *Network) Summary() (summary Summary) {
	summary.Nodes = len(n.nodes)
	summary.Edges = len(n.edges)

	if len(n.edges) == 0 {
		return summary
	}

	counts := make([]float64, 0, len(n.edges))
	outDegree := make(map[string]float64)

	for key, count := range n.edges {
		counts = append(counts, float64(count))
		outDegree[key.Source]++
	}

	degrees := make([]float64, 0, len(outDegree))

	for _, degree := range outDegree {
		degrees = append(degrees, degree)
	}

	summary.Regulators = len(outDegree)
	summary.MeanCount = stat.Mean(counts, nil)
	summary.MeanOutDegree = stat.Mean(degrees, nil)

	if len(counts) > 1 {
		summary.StdCount = stat.StdDev(counts, nil)
	}

	return summary
}

/*Assemble build the network from the references and, per motif family, the
target gene -> overlap count mapping. Families are processed in sorted order.
Families without a reference regulator produce no edge */
func Assemble(references References, counts map[string]map[string]int, expression Expression) (*Network, error) {
	network := NewNetwork()

	motifs := make([]string, 0, len(counts))

	for motif := range counts {
		motifs = append(motifs, motif)
	}

	sort.Strings(motifs)

	for _, motif := range motifs {
		source, isInside := references[motif]

		if !isInside || len(counts[motif]) == 0 {
			continue
		}

		network.AddNode(source.Gene, source.Expression)

		targets := make([]string, 0, len(counts[motif]))

		for target := range counts[motif] {
			targets = append(targets, target)
		}

		sort.Strings(targets)

		for _, target := range targets {
			count := counts[motif][target]

			if count <= 0 {
				continue
			}

			value, isExpressed := expression.Value(target)

			if !isExpressed {
				return nil, fmt.Errorf("target %s of motif %s: %w: gene is not expressed", target, motif, ErrUnknownNode)
			}

			network.AddNode(target, value)

			if err := network.SetEdge(source.Gene, target, motif, count); err != nil {
				return nil, err
			}
		}
	}

	return network, nil
}
