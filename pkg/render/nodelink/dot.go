package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/fanout/pkg/dag"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Counts annotates node labels with path counts, typically the result
	// of count.Propagate.
	Counts map[string]*big.Int

	// Ranks annotates node labels with topological ranks, typically the
	// result of transform.Ranks.
	Ranks map[string]int

	// Highlight lists nodes drawn with a bold outline (query endpoints,
	// waypoints).
	Highlight []string

	// Avoid lists nodes drawn dashed and grey (excluded from the query).
	Avoid []string
}

// ToDOT converts a DAG to Graphviz DOT format for node-link visualization.
// Nodes are emitted in sorted ID order so the output is deterministic.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(g *dag.DAG, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, id := range g.NodeIDs() {
		label := fmtLabel(id, opts)
		attrs := fmtAttrs(id, label, opts)
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(id string, opts Options) string {
	parts := []string{id}
	if opts.Ranks != nil {
		if rank, ok := opts.Ranks[id]; ok {
			parts = append(parts, fmt.Sprintf("rank: %d", rank))
		}
	}
	if opts.Counts != nil {
		if n, ok := opts.Counts[id]; ok && n != nil {
			parts = append(parts, fmt.Sprintf("paths: %s", n))
		}
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(id, label string, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case slices.Contains(opts.Avoid, id):
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=grey40")
	case slices.Contains(opts.Highlight, id):
		attrs = append(attrs, "penwidth=3", "fillcolor=lightyellow")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or embedding.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
