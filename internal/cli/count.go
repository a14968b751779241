package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fanout/pkg/dag"
	"github.com/matzehuels/fanout/pkg/graph"
	"github.com/matzehuels/fanout/pkg/pipeline"
)

// countCommand creates the count command.
func (c *CLI) countCommand() *cobra.Command {
	var (
		avoid   []string
		via     []string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "count <graph> [start] [target]",
		Short: "Count distinct paths between two nodes",
		Long: `Count distinct paths between two nodes.

The graph is read from a file: .json files use the node-link format, anything
else is parsed as text adjacency lists ("src: dst1 dst2" per line).

When start or target are omitted, an interactive picker lets you choose them
from the graph's nodes.

Counts are exact and unbounded; results are cached locally by graph content,
so repeated queries against an unchanged graph return instantly.`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graph.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("load graph %s: %w", args[0], err)
			}

			start, target, err := resolveEndpoints(g, args)
			if err != nil {
				return err
			}

			return c.runCount(cmd.Context(), g, pipeline.Options{
				Path:    args[0],
				Query:   pipeline.QueryCount,
				Start:   start,
				Target:  target,
				Avoid:   avoid,
				Via:     via,
				Refresh: refresh,
			}, noCache)
		},
	}

	cmd.Flags().StringSliceVar(&avoid, "avoid", nil, "node(s) to exclude from every counted path")
	cmd.Flags().StringSliceVar(&via, "via", nil, "two waypoints every counted path must pass through")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when a cached result exists")
	cmd.MarkFlagsMutuallyExclusive("avoid", "via")

	return cmd
}

// resolveEndpoints fills in missing start/target arguments, interactively
// when the command was given fewer than three args.
func resolveEndpoints(g *dag.DAG, args []string) (start, target string, err error) {
	if len(args) > 1 {
		start = args[1]
	}
	if len(args) > 2 {
		target = args[2]
	}

	if start == "" {
		start, err = pickNode("Select start node", g.NodeIDs())
		if err != nil {
			return "", "", err
		}
	}
	if target == "" {
		target, err = pickNode("Select target node", g.NodeIDs())
		if err != nil {
			return "", "", err
		}
	}
	return start, target, nil
}

// runCount executes a count query and prints the result.
func (c *CLI) runCount(ctx context.Context, g *dag.DAG, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Graph = g
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Counting paths...")
	spinner.Start()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Count failed")
		return fmt.Errorf("count: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Counted paths from %s to %s", opts.Start, opts.Target))

	route := opts.Start + " " + iconArrow + " " + opts.Target
	if len(opts.Via) == 2 {
		route = strings.Join([]string{opts.Start, opts.Via[0], opts.Via[1], opts.Target}, " "+iconArrow+" ")
	}

	printSuccess("%s", route)
	printKeyValue("Paths", StyleNumber.Render(result.Count.String()))
	if len(opts.Avoid) > 0 {
		printKeyValue("Avoiding", strings.Join(opts.Avoid, ", "))
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.QueryHit)

	if result.Count.Sign() > 0 {
		printNextStep("List them", fmt.Sprintf("fanout paths %s %s %s", opts.Path, opts.Start, opts.Target))
	}

	return nil
}
