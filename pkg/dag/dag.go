package dag

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] and [DAG.AddEdge] when
	// a node ID is empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the
	// same ID already exists in the graph. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrDuplicateEdge is returned by [DAG.AddEdge] and [Build] when an edge
	// between the same ordered pair of nodes already exists. Multi-edges would
	// inflate path counts, so they are rejected rather than deduplicated
	// silently.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrSelfLoop is returned by [DAG.AddEdge] and [Build] when an edge's
	// endpoints are the same node. A self-loop is a cycle of length one and
	// can never be part of an acyclic graph.
	ErrSelfLoop = errors.New("self-loop edge")

	// ErrUnknownNode is returned by query operations when a referenced node
	// is absent from the graph. Queries never treat unknown nodes as
	// zero-count; the mistake is surfaced instead.
	ErrUnknownNode = errors.New("unknown node")

	// ErrGraphHasCycle is returned by [DAG.Validate] when a cycle is detected.
	// Cycles are detected using depth-first search with white/gray/black
	// coloring. A cyclic graph has infinitely many walks between nodes on the
	// cycle, so every counting operation refuses to run on one.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Metadata stores arbitrary key-value pairs attached to nodes, edges, or the
// graph. It is commonly used to carry display labels or provenance from the
// input format. Metadata maps are never nil after a node or edge is added.
type Metadata map[string]any

// Node represents a vertex in the graph. The identifier is opaque to the
// counting engine: callers may use labels ("you", "out") or formatted
// coordinates ("12,4") interchangeably.
//
// The zero value is not usable - ID must be set before adding to a DAG.
type Node struct {
	ID   string   // Unique identifier (also used as display label)
	Meta Metadata // Arbitrary key-value metadata (never nil after AddNode)
}

// Edge represents a directed connection between two nodes. At most one edge
// may exist for any ordered (From, To) pair.
type Edge struct {
	From string   // Source node ID
	To   string   // Target node ID
	Meta Metadata // Arbitrary key-value metadata (never nil after AddEdge)
}

// DAG is a directed graph intended to stay acyclic. Construction does not
// enforce acyclicity edge-by-edge; call [DAG.Validate] once the graph is
// built. Counting operations in dag/count re-check before trusting it.
//
// Edges are never removed once added, and no operation mutates an edge after
// construction. The zero value is not usable - use [New] or [Build].
// DAG is not safe for concurrent mutation; concurrent reads are fine.
type DAG struct {
	nodes    map[string]*Node
	edges    []Edge
	edgeSet  map[[2]string]struct{}
	outgoing map[string][]string // nodeID -> out-neighbor IDs
	incoming map[string][]string // nodeID -> parent IDs
	meta     Metadata
}

// New creates an empty DAG with optional graph-level metadata.
// The metadata parameter can be nil, in which case an empty map is created.
func New(meta Metadata) *DAG {
	if meta == nil {
		meta = Metadata{}
	}
	return &DAG{
		nodes:    make(map[string]*Node),
		edgeSet:  make(map[[2]string]struct{}),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		meta:     meta,
	}
}

// Build constructs a DAG from an edge list. Nodes are created implicitly from
// edge endpoints, so the node set is exactly the set of IDs appearing as
// either endpoint. Returns ErrDuplicateEdge if the list repeats an ordered
// pair, ErrSelfLoop on a self-loop, or ErrInvalidNodeID on an empty endpoint.
func Build(edges []Edge) (*DAG, error) {
	g := New(nil)
	for _, e := range edges {
		if err := g.AddEdge(e); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Meta returns the graph-level metadata map.
// The returned map is never nil and can be safely modified.
func (d *DAG) Meta() Metadata { return d.meta }

// AddNode adds an isolated node to the graph. Most callers never need this:
// [DAG.AddEdge] creates endpoint nodes implicitly. It exists for graphs with
// nodes that participate in no edge.
//
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID
// if a node with the same ID already exists. The node's Meta field is
// automatically initialized to an empty map if nil.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	d.nodes[node.ID] = node
	return nil
}

// AddEdge adds a directed edge, creating either endpoint node if it does not
// exist yet. Returns ErrInvalidNodeID if an endpoint is empty, ErrSelfLoop if
// both endpoints are the same node, or ErrDuplicateEdge if the ordered pair
// was already added. The edge's Meta field is automatically initialized to an
// empty map if nil.
func (d *DAG) AddEdge(e Edge) error {
	if e.From == "" || e.To == "" {
		return ErrInvalidNodeID
	}
	if e.From == e.To {
		return ErrSelfLoop
	}
	key := [2]string{e.From, e.To}
	if _, exists := d.edgeSet[key]; exists {
		return ErrDuplicateEdge
	}
	d.ensureNode(e.From)
	d.ensureNode(e.To)
	if e.Meta == nil {
		e.Meta = Metadata{}
	}
	d.edgeSet[key] = struct{}{}
	d.edges = append(d.edges, e)
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], e.From)
	return nil
}

func (d *DAG) ensureNode(id string) {
	if _, ok := d.nodes[id]; ok {
		return
	}
	d.nodes[id] = &Node{ID: id, Meta: Metadata{}}
}

// HasNode reports whether a node with the given ID exists.
func (d *DAG) HasNode(id string) bool {
	_, ok := d.nodes[id]
	return ok
}

// Node returns the node with the given ID and true, or nil and false if not
// found. The returned pointer refers to the actual node in the graph.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Nodes returns all nodes in the graph.
// The order is not guaranteed. The returned slice contains pointers to
// the actual node structs, so metadata modifications affect the graph.
func (d *DAG) Nodes() []*Node {
	nodes := make([]*Node, 0, len(d.nodes))
	for _, n := range d.nodes {
		nodes = append(nodes, n)
	}
	return nodes
}

// NodeIDs returns the IDs of all nodes in sorted ascending order.
// Sorting makes the result deterministic across runs, which matters for
// serialization and for tests.
func (d *DAG) NodeIDs() []string {
	return slices.Sorted(maps.Keys(d.nodes))
}

// Edges returns a copy of all edges in the graph.
// The order matches insertion order. Modifications to the returned
// slice do not affect the graph.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of nodes in the graph.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the graph.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Neighbors returns the IDs of the node's out-neighbors in insertion order.
// Returns nil for sink nodes and for IDs not present in the graph; use
// [DAG.HasNode] to distinguish the two. The returned slice is a read-only
// view and must not be modified.
func (d *DAG) Neighbors(id string) []string { return d.outgoing[id] }

// Parents returns the IDs of nodes that have edges to this node.
// Returns nil if the node has no parents or doesn't exist. The returned
// slice is a read-only view and must not be modified.
func (d *DAG) Parents(id string) []string { return d.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
// Returns 0 if the node doesn't exist.
func (d *DAG) OutDegree(id string) int { return len(d.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
// Returns 0 if the node doesn't exist.
func (d *DAG) InDegree(id string) int { return len(d.incoming[id]) }

// Sources returns nodes with no incoming edges (entry points).
// The order is not guaranteed. Returns nil for an empty graph.
func (d *DAG) Sources() []*Node {
	var sources []*Node
	for _, n := range d.nodes {
		if len(d.incoming[n.ID]) == 0 {
			sources = append(sources, n)
		}
	}
	return sources
}

// Sinks returns nodes with no outgoing edges (terminals).
// The order is not guaranteed. Returns nil for an empty graph.
func (d *DAG) Sinks() []*Node {
	var sinks []*Node
	for _, n := range d.nodes {
		if len(d.outgoing[n.ID]) == 0 {
			sinks = append(sinks, n)
		}
	}
	return sinks
}

// Validate checks that the graph is acyclic and returns nil if so.
// Returns ErrGraphHasCycle if a directed cycle is detected.
//
// Cycle detection runs in O(N+E) time using depth-first search with
// white/gray/black coloring. The walk uses an explicit stack, so arbitrarily
// long chains cannot exhaust the goroutine stack.
func (d *DAG) Validate() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(d.nodes))

	// frame tracks how far into a node's neighbor list the walk has advanced.
	type frame struct {
		id   string
		next int
	}

	for id := range d.nodes {
		if color[id] != white {
			continue
		}
		stack := []frame{{id: id}}
		color[id] = gray
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			neighbors := d.outgoing[top.id]
			if top.next >= len(neighbors) {
				color[top.id] = black
				stack = stack[:len(stack)-1]
				continue
			}
			child := neighbors[top.next]
			top.next++
			switch color[child] {
			case white:
				color[child] = gray
				stack = append(stack, frame{id: child})
			case gray:
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}

// PosMap creates a position lookup map from a slice of node IDs.
// The returned map maps each ID to its index in the slice.
// Returns an empty map for a nil or empty slice.
func PosMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}

// NodeIDsOf extracts the ID from each node in a slice.
// Returns a new slice containing the IDs in the same order as the input.
func NodeIDsOf(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
