package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fanout/pkg/dag/count"
	"github.com/matzehuels/fanout/pkg/dag/transform"
	"github.com/matzehuels/fanout/pkg/graph"
	"github.com/matzehuels/fanout/pkg/render/nodelink"
)

// Supported render formats.
const (
	formatSVG = "svg"
	formatDOT = "dot"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		format     string
		countsFrom string
		showRanks  bool
		highlight  []string
		avoid      []string
	)

	cmd := &cobra.Command{
		Use:   "render <graph>",
		Short: "Render a graph as a node-link diagram",
		Long: `Render a graph as a node-link diagram.

The graph is laid out top-down with Graphviz. Node labels can be annotated
with topological ranks (--ranks) and with path counts propagated from a
source node (--counts). Highlighted nodes get a bold outline; avoided nodes
are drawn dashed and grey.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatSVG && format != formatDOT {
				return fmt.Errorf("invalid format: %q (must be svg or dot)", format)
			}
			return c.runRender(args[0], renderParams{
				output:     output,
				format:     format,
				countsFrom: countsFrom,
				showRanks:  showRanks,
				highlight:  highlight,
				avoid:      avoid,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to the input name with the format's extension)")
	cmd.Flags().StringVarP(&format, "format", "f", formatSVG, "output format: svg (default), dot")
	cmd.Flags().StringVar(&countsFrom, "counts", "", "annotate nodes with path counts propagated from this source")
	cmd.Flags().BoolVar(&showRanks, "ranks", false, "annotate nodes with topological ranks")
	cmd.Flags().StringSliceVar(&highlight, "highlight", nil, "node(s) to draw with a bold outline")
	cmd.Flags().StringSliceVar(&avoid, "avoid", nil, "node(s) to draw dashed and grey")

	return cmd
}

// renderParams bundles render command flags.
type renderParams struct {
	output     string
	format     string
	countsFrom string
	showRanks  bool
	highlight  []string
	avoid      []string
}

// runRender loads the graph, builds annotations, and writes the diagram.
func (c *CLI) runRender(input string, p renderParams) error {
	g, err := graph.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	if err := g.Validate(); err != nil {
		return err
	}

	opts := nodelink.Options{
		Highlight: p.highlight,
		Avoid:     p.avoid,
	}
	if p.showRanks {
		opts.Ranks = transform.Ranks(g)
	}
	if p.countsFrom != "" {
		counts, err := count.Propagate(g, p.countsFrom, nil)
		if err != nil {
			return fmt.Errorf("propagate counts: %w", err)
		}
		opts.Counts = counts
	}

	dot := nodelink.ToDOT(g, opts)

	var data []byte
	switch p.format {
	case formatDOT:
		data = []byte(dot)
	case formatSVG:
		spinner := newSpinner("Rendering diagram...")
		spinner.Start()
		data, err = nodelink.RenderSVG(dot)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("render svg: %w", err)
		}
		spinner.Stop()
	}

	out := p.output
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + "." + p.format
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	printSuccess("Rendered %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	printFile(out)
	return nil
}
