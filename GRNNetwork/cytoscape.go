package grnnetwork

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	utils "github.com/petebio/Gene-regulatory-network-analysis/GRNUtils"
)

/*CYTOSCAPEEXT extension of network files */
const CYTOSCAPEEXT = ".cyjs"

type cytoscapeDocument struct {
	Data       json.RawMessage   `json:"data"`
	Directed   bool              `json:"directed"`
	Multigraph bool              `json:"multigraph"`
	Elements   cytoscapeElements `json:"elements"`
}

type cytoscapeElements struct {
	Nodes []cytoscapeNode `json:"nodes"`
	Edges []cytoscapeEdge `json:"edges"`
}

type cytoscapeNode struct {
	Data cytoscapeNodeData `json:"data"`
}

type cytoscapeNodeData struct {
	Expression *float64 `json:"expression"`
	ID         string   `json:"id"`
	Value      string   `json:"value,omitempty"`
	Name       string   `json:"name,omitempty"`
}

type cytoscapeEdge struct {
	Data cytoscapeEdgeData `json:"data"`
}

type cytoscapeEdgeData struct {
	Count       json.Number `json:"count"`
	SourceMotif string      `json:"source_motif"`
	Source      string      `json:"source"`
	Target      string      `json:"target"`
	Key         string      `json:"key,omitempty"`
}

/*CytoscapeFilename append the .cyjs extension when missing */
func CytoscapeFilename(fname string) string {
	if strings.HasSuffix(fname, CYTOSCAPEEXT) {
		return fname
	}

	return fname + CYTOSCAPEEXT
}

/*EncodeCytoscape write the network in the Cytoscape JSON layout of networkx */
func EncodeCytoscape(w io.Writer, network *Network) error {
	multigraph := network.IsMultigraph()

	document := cytoscapeDocument{
		Data:       json.RawMessage("[]"),
		Directed:   true,
		Multigraph: multigraph,
		Elements: cytoscapeElements{
			Nodes: make([]cytoscapeNode, 0, network.NumberOfNodes()),
			Edges: make([]cytoscapeEdge, 0, network.NumberOfEdges()),
		},
	}

	for _, node := range network.Nodes() {
		expression := node.Expression

		document.Elements.Nodes = append(document.Elements.Nodes, cytoscapeNode{
			Data: cytoscapeNodeData{
				Expression: &expression,
				ID:         node.ID,
				Value:      node.ID,
				Name:       node.ID,
			}})
	}

	for _, edge := range network.Edges() {
		data := cytoscapeEdgeData{
			Count:       json.Number(strconv.Itoa(edge.Count)),
			SourceMotif: edge.Motif,
			Source:      edge.Source,
			Target:      edge.Target,
		}

		if multigraph {
			data.Key = edge.Motif
		}

		document.Elements.Edges = append(document.Elements.Edges, cytoscapeEdge{Data: data})
	}

	return json.NewEncoder(w).Encode(document)
}

/*DecodeCytoscape read a network in Cytoscape JSON. Unlike networkx, an edge must link two
listed nodes (ErrUnknownNode) and carry a count > 0 (ErrInvalidEdge) */
func DecodeCytoscape(r io.Reader) (*Network, error) {
	var document cytoscapeDocument

	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	if err := decoder.Decode(&document); err != nil {
		return nil, fmt.Errorf("cannot decode cytoscape JSON: %w", err)
	}

	network := NewNetwork()

	for i, node := range document.Elements.Nodes {
		id := node.Data.ID

		if id == "" {
			id = node.Data.Name
		}

		if id == "" {
			id = node.Data.Value
		}

		if id == "" {
			return nil, fmt.Errorf("node %d has no id", i)
		}

		if node.Data.Expression == nil {
			return nil, fmt.Errorf("node %s has no expression attribute", id)
		}

		network.AddNode(id, *node.Data.Expression)
	}

	for _, edge := range document.Elements.Edges {
		count, err := parseCount(edge.Data.Count)
		if err != nil {
			return nil, fmt.Errorf("edge %s -> %s: %w", edge.Data.Source, edge.Data.Target, err)
		}

		if err = network.SetEdge(edge.Data.Source, edge.Data.Target, edge.Data.SourceMotif, count); err != nil {
			return nil, err
		}
	}

	return network, nil
}

func parseCount(number json.Number) (int, error) {
	if count, err := number.Int64(); err == nil {
		return int(count), nil
	}

	value, err := number.Float64()
	if err != nil {
		return 0, fmt.Errorf("invalid count %q", number.String())
	}

	return int(value), nil
}

/*WriteCytoscape write the network into fname (.cyjs appended when missing) and return the file name used */
func WriteCytoscape(fname string, network *Network) (string, error) {
	fname = CytoscapeFilename(fname)

	writer, err := utils.ReturnWriter(fname)
	if err != nil {
		return fname, err
	}

	if err = EncodeCytoscape(writer, network); err != nil {
		writer.Close()
		return fname, err
	}

	return fname, writer.Close()
}

/*ReadCytoscape read a network from a Cytoscape JSON file, with the rules of DecodeCytoscape */
func ReadCytoscape(fname string) (*Network, error) {
	file, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	network, err := DecodeCytoscape(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}

	return network, nil
}
