package graph

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/fanout/pkg/dag"
)

// metaLabel stores the display label in node metadata for round-trip fidelity.
const metaLabel = "_label"

// Graph is the canonical serialization format for directed graphs.
// Used for API responses, storage, caching, and cross-tool compatibility.
//
// The format is human-readable and designed for round-trip fidelity:
// import → transform → export → re-import produces identical results.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node is the unified node type for all serialization contexts.
type Node struct {
	ID    string         `json:"id" bson:"id"`
	Label string         `json:"label,omitempty" bson:"label,omitempty"` // Display label (defaults to ID)
	Meta  map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge represents a directed edge in the graph.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// FromDAG converts a DAG to its serialization format.
// Nodes are sorted by ID and edges by (from, to) for deterministic output.
func FromDAG(g *dag.DAG) Graph {
	nodes := g.Nodes()
	slices.SortFunc(nodes, func(a, b *dag.Node) int {
		return strings.Compare(a.ID, b.ID)
	})

	out := Graph{
		Nodes: make([]Node, len(nodes)),
		Edges: make([]Edge, len(g.Edges())),
	}

	for i, n := range nodes {
		out.Nodes[i] = nodeFromDAG(n)
	}

	for i, e := range g.Edges() {
		out.Edges[i] = Edge{From: e.From, To: e.To}
	}
	slices.SortFunc(out.Edges, func(a, b Edge) int {
		if c := strings.Compare(a.From, b.From); c != 0 {
			return c
		}
		return strings.Compare(a.To, b.To)
	})

	return out
}

// ToDAG converts a Graph to a DAG.
// Returns an error if the structure violates graph constraints.
// Label is stored in metadata for round-trip fidelity when non-empty.
func ToDAG(gj Graph) (*dag.DAG, error) {
	d := dag.New(nil)

	for _, nj := range gj.Nodes {
		n := dag.Node{
			ID:   nj.ID,
			Meta: copyMeta(nj.Meta),
		}
		if nj.Label != "" {
			if n.Meta == nil {
				n.Meta = dag.Metadata{}
			}
			n.Meta[metaLabel] = nj.Label
		}
		if err := d.AddNode(n); err != nil {
			return nil, fmt.Errorf("add node %s: %w", nj.ID, err)
		}
	}

	for _, ej := range gj.Edges {
		if err := d.AddEdge(dag.Edge{From: ej.From, To: ej.To}); err != nil {
			return nil, fmt.Errorf("add edge %s→%s: %w", ej.From, ej.To, err)
		}
	}

	return d, nil
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// copyMeta creates a shallow copy of metadata to avoid mutation.
func copyMeta(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	result := make(map[string]any, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}

// nodeFromDAG converts a dag.Node to a serialization Node.
// Label is restored from metadata if previously stored.
func nodeFromDAG(n *dag.Node) Node {
	node := Node{
		ID:   n.ID,
		Meta: cleanMeta(n.Meta),
	}

	if n.Meta != nil {
		if label, ok := n.Meta[metaLabel].(string); ok {
			node.Label = label
		}
	}

	return node
}

// cleanMeta returns a copy of metadata without internal keys (e.g., _label).
// Returns nil if the result would be empty.
func cleanMeta(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	hasPublicKeys := false
	for k := range m {
		if k != metaLabel {
			hasPublicKeys = true
			break
		}
	}
	if !hasPublicKeys {
		return nil
	}
	result := make(map[string]any, len(m))
	for k, v := range m {
		if k != metaLabel {
			result[k] = v
		}
	}
	return result
}
