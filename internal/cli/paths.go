package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fanout/pkg/pipeline"
)

// pathsCommand creates the paths command.
func (c *CLI) pathsCommand() *cobra.Command {
	var (
		avoid []string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "paths <graph> <start> <target>",
		Short: "Enumerate the simple paths between two nodes",
		Long: `Enumerate the simple paths between two nodes.

Paths are listed shortest-first. Since path counts grow exponentially with
graph size, output is capped; raise --limit when you really want more.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(true)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			result, err := runner.Execute(cmd.Context(), pipeline.Options{
				Path:     args[0],
				Query:    pipeline.QueryPaths,
				Start:    args[1],
				Target:   args[2],
				Avoid:    avoid,
				MaxPaths: limit,
				Logger:   c.Logger,
			})
			if err != nil {
				return fmt.Errorf("paths: %w", err)
			}

			if len(result.Paths) == 0 {
				printInfo("No paths from %s to %s", args[1], args[2])
				return nil
			}

			for _, path := range result.Paths {
				fmt.Println("  " + strings.Join(path, " "+StyleDim.Render(iconArrow)+" "))
			}
			printNewline()
			printSuccess("%d path(s) from %s to %s", len(result.Paths), args[1], args[2])
			if limit > 0 && len(result.Paths) == limit {
				printWarning("Output capped at %d paths; pass a higher --limit for more", limit)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&avoid, "avoid", nil, "node(s) to exclude from every path")
	cmd.Flags().IntVar(&limit, "limit", pipeline.DefaultMaxPaths, "maximum number of paths to list")

	return cmd
}
