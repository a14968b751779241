package count

import (
	"iter"
	"slices"

	"github.com/matzehuels/fanout/pkg/dag"
)

// Enumerate returns a lazy sequence of the simple paths from start to target,
// explored breadth-first: a frontier of partial paths is extended one edge at
// a time, and a partial path is abandoned rather than extended onto a node it
// already contains. Each yielded path is an independent slice from start to
// target inclusive; the sequence is finite on any finite graph and can be
// consumed once.
//
// This is the small-graph companion to [Count]: the number of simple paths
// grows combinatorially, so only invoke Enumerate where materializing every
// path is acceptable. The counting tests use it as ground truth.
//
// Enumerate fails with [dag.ErrUnknownNode] if start or target is absent.
// Unlike the counters it tolerates cycles - the per-path visited check makes
// termination independent of acyclicity.
func Enumerate(g *dag.DAG, start, target string) (iter.Seq[[]string], error) {
	if err := checkNodes(g, start, target, nil); err != nil {
		return nil, err
	}

	seq := func(yield func([]string) bool) {
		queue := [][]string{{start}}
		for len(queue) > 0 {
			path := queue[0]
			queue = queue[1:]
			last := path[len(path)-1]

			if last == target {
				if !yield(slices.Clone(path)) {
					return
				}
				continue
			}

			for _, n := range g.Neighbors(last) {
				if slices.Contains(path, n) {
					continue
				}
				next := make([]string, len(path), len(path)+1)
				copy(next, path)
				queue = append(queue, append(next, n))
			}
		}
	}
	return seq, nil
}
