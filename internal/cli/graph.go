package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fanout/pkg/dag/transform"
	"github.com/matzehuels/fanout/pkg/graph"
)

// graphCommand creates the graph inspection command.
func (c *CLI) graphCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Convert, inspect, and check graph files",
	}

	cmd.AddCommand(c.graphConvertCommand())
	cmd.AddCommand(c.graphStatsCommand())
	cmd.AddCommand(c.graphCheckCommand())

	return cmd
}

// graphConvertCommand creates the "graph convert" subcommand.
func (c *CLI) graphConvertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert between text and node-link graph formats",
		Long: `Convert between text and node-link graph formats.

Formats are inferred from file extensions: .json is the node-link format,
anything else is the text adjacency format.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graph.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("load graph %s: %w", args[0], err)
			}

			out := args[1]
			if filepath.Ext(out) == ".json" {
				err = graph.WriteGraphFile(g, out)
			} else {
				err = os.WriteFile(out, graph.FormatText(g), 0o644)
			}
			if err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			printSuccess("Converted %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
			printFile(out)
			return nil
		},
	}
}

// graphStatsCommand creates the "graph stats" subcommand.
func (c *CLI) graphStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <graph>",
		Short: "Print graph statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graph.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("load graph %s: %w", args[0], err)
			}
			if err := g.Validate(); err != nil {
				return err
			}

			depth := 0
			for _, r := range transform.Ranks(g) {
				if r > depth {
					depth = r
				}
			}

			printKeyValue("Nodes", fmt.Sprintf("%d", g.NodeCount()))
			printKeyValue("Edges", fmt.Sprintf("%d", g.EdgeCount()))
			printKeyValue("Sources", fmt.Sprintf("%d", len(g.Sources())))
			printKeyValue("Sinks", fmt.Sprintf("%d", len(g.Sinks())))
			printKeyValue("Depth", fmt.Sprintf("%d", depth))
			return nil
		},
	}
}

// graphCheckCommand creates the "graph check" subcommand.
func (c *CLI) graphCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <graph>",
		Short: "Check a graph for cycles",
		Long: `Check a graph for cycles.

Counting is only defined on acyclic graphs. When the graph has cycles, the
offending back edges are listed; removing them makes the graph acyclic.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graph.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("load graph %s: %w", args[0], err)
			}

			back := transform.BackEdges(g)
			if len(back) == 0 {
				printSuccess("Graph is acyclic (%d nodes, %d edges)", g.NodeCount(), g.EdgeCount())
				return nil
			}

			printError("Graph has cycles")
			for _, e := range back {
				printDetail("%s %s %s", e.From, iconArrow, e.To)
			}
			return fmt.Errorf("found %d back edge(s)", len(back))
		},
	}
}
