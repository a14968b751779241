// Package dag provides the directed-graph model for the fanout path-counting
// engine.
//
// # Overview
//
// Fanout counts distinct paths between nodes of a directed acyclic graph
// without materializing them. This package provides the graph itself: opaque
// string node identifiers, deduplicated directed edges, and forward adjacency
// lists. The counting algorithms live in the [count] subpackage; this package
// only stores structure and checks it.
//
// # Basic Usage
//
// Build a graph from an edge list with [Build], or incrementally with [New]
// and [DAG.AddEdge]. Endpoint nodes are created implicitly:
//
//	g, err := dag.Build([]dag.Edge{
//	    {From: "you", To: "aaa"},
//	    {From: "aaa", To: "out"},
//	})
//
// Query structure with [DAG.Neighbors], [DAG.Parents], [DAG.Sources], and
// [DAG.Sinks]. Run [DAG.Validate] after construction to confirm the graph is
// acyclic before handing it to the counting engine.
//
// # Duplicate edges
//
// At most one edge may exist per ordered (From, To) pair. A repeated pair is
// rejected with [ErrDuplicateEdge] rather than deduplicated: a duplicate in
// the input usually means the input is wrong, and silently dropping it would
// hide that while silently keeping it would double path counts.
//
// # Acyclicity
//
// Construction does not check for cycles edge-by-edge; [DAG.Validate] does a
// single O(N+E) white/gray/black depth-first pass. Counting operations in the
// [count] subpackage run this check themselves before trusting the graph,
// because a cycle would make every path count infinite.
//
// # Concurrency
//
// DAG instances are not safe for concurrent mutation. Once construction is
// complete the graph is read-only, and concurrent reads (including concurrent
// counting queries) are safe.
//
// # Related Packages
//
// The [transform] subpackage computes Kahn-layering ranks and reports
// back-edges for cyclic inputs. The [count] subpackage implements topological
// propagation, memoized path counting, waypoint segmentation, and small-scale
// path enumeration.
//
// [transform]: github.com/matzehuels/fanout/pkg/dag/transform
// [count]: github.com/matzehuels/fanout/pkg/dag/count
package dag
