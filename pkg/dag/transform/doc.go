// Package transform provides structural analyses that prepare a graph for
// the counting engine.
//
// [Ranks] computes a Kahn-layering depth for every node, giving graphs
// without a natural forward coordinate a total order usable by topological
// propagation. [BackEdges] reports the edges that make a graph cyclic so a
// caller can repair its input; nothing in this package ever mutates a graph.
package transform
