// Package nodelink renders graphs as directed node-link diagrams.
//
// # Overview
//
// This package produces Graphviz visualizations of a graph and, optionally,
// the result of a counting query: path counts or propagation ranks appear in
// the node labels, query endpoints are highlighted, and avoided nodes are
// greyed out.
//
// # Usage
//
// Convert a DAG to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Counts: counts})
//	svg, err := nodelink.RenderSVG(dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Counts: per-node path counts shown in labels (from count.Propagate)
//   - Ranks: per-node ranks shown in labels (from transform.Ranks)
//   - Highlight: nodes drawn with a bold outline (query endpoints, waypoints)
//   - Avoid: nodes drawn dashed and grey (excluded from the query)
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
