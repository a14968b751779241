// Package graph provides serialization for directed graphs.
//
// This package defines the wire formats for fanout's graph data, used for
// JSON files, API responses, caching, and cross-tool interoperability.
//
// # Architecture
//
// The package sits at the serialization boundary between the internal
// representation and external formats:
//
//   - [Graph], [Node], [Edge]: Serialization types (this package)
//   - pkg/dag.DAG: Internal graph representation
//
// Use [FromDAG]/[ToDAG] to convert between them.
//
// # JSON Format
//
// Graphs use a simple node-link JSON format:
//
//	{
//	  "nodes": [{"id": "aaa"}, {"id": "you"}],
//	  "edges": [{"from": "you", "to": "aaa"}]
//	}
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("wiring.json")  // File → DAG
//	graph.WriteGraphFile(dag, "output.json")    // DAG → File
//	data, _ := graph.MarshalGraph(dag)          // DAG → []byte
//	parsed, _ := graph.UnmarshalGraph(data)     // []byte → Graph
//
// # Text Format
//
// The text format is a plain adjacency list, one source per line, with the
// targets after a colon:
//
//	you: aaa bbb
//	aaa: out
//	bbb: out
//
// Sink nodes need no line of their own; they are created implicitly as edge
// endpoints. Blank lines and lines starting with '#' are skipped. Use
// [ParseText]/[ReadTextFile] to load and [FormatText] to write.
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
