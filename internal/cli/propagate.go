package cli

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fanout/pkg/dag/transform"
	"github.com/matzehuels/fanout/pkg/pipeline"
)

// propagateCommand creates the propagate command.
func (c *CLI) propagateCommand() *cobra.Command {
	var (
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "propagate <graph> <source>",
		Short: "Compute per-node path counts from a source",
		Long: `Compute per-node path counts from a source.

Every node is assigned the number of distinct paths reaching it from the
source, computed in a single topological sweep. Nodes unreachable from the
source count zero.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			spinner := newSpinnerWithContext(cmd.Context(), "Propagating counts...")
			spinner.Start()

			result, err := runner.Execute(cmd.Context(), pipeline.Options{
				Path:    args[0],
				Query:   pipeline.QueryPropagate,
				Source:  args[1],
				Refresh: refresh,
				Logger:  c.Logger,
			})
			if err != nil {
				spinner.StopWithError("Propagation failed")
				return fmt.Errorf("propagate: %w", err)
			}
			spinner.Stop()

			printSuccess("Counts from %s", args[1])
			fmt.Println(countsTable(result))
			printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.QueryHit)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when a cached result exists")

	return cmd
}

// countsTable renders the per-node counts sorted by rank, then node ID,
// so the table reads top-down in topological order.
func countsTable(result *pipeline.Result) string {
	ranks := transform.Ranks(result.Graph)

	ids := make([]string, 0, len(result.Counts))
	for id := range result.Counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if ranks[ids[i]] != ranks[ids[j]] {
			return ranks[ids[i]] < ranks[ids[j]]
		}
		return ids[i] < ids[j]
	})

	rows := make([][]string, len(ids))
	for i, id := range ids {
		rows[i] = []string{id, fmt.Sprintf("%d", ranks[id]), result.Counts[id].String()}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Node", "Rank", "Paths").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 2 {
				return StyleNumber
			}
			return StyleValue
		}).
		Render()
}
