package count

import (
	"cmp"
	"errors"
	"fmt"
	"math/big"
	"slices"

	"github.com/matzehuels/fanout/pkg/dag"
	"github.com/matzehuels/fanout/pkg/dag/transform"
)

// ErrOrderViolation is returned by [Propagate] when the supplied rank does
// not strictly increase along every edge. Under a violated order a node's
// accumulator could still change after its count has been read, so any
// result would be undefined; the violation is reported instead.
var ErrOrderViolation = errors.New("propagation order violated")

// Propagate computes, for every node, the number of distinct paths from
// source that reach it.
//
// rank supplies the total order to process nodes in: a coordinate that
// strictly increases along every edge (a row number, a depth, a timestamp).
// Nodes are processed in ascending (rank, id) order, each node adding its
// accumulated count to its out-neighbors. Because every edge into a node
// originates at a strictly smaller rank, a node's count is complete before
// it is ever read, which is what makes convergence points sum their incoming
// branches exactly once.
//
// Pass a nil rank to derive one from Kahn layering ([transform.Ranks]); this
// is the right choice whenever node identity carries no natural forward
// coordinate.
//
// The result maps every node in the graph to its count; nodes unreachable
// from source map to zero. Counts at sink nodes are typically the answer of
// interest.
//
// Propagate fails with [dag.ErrUnknownNode] if source is absent, and with
// ErrOrderViolation if any edge fails to strictly increase in rank - which
// includes every cyclic graph, since no total order strictly increases
// around a cycle.
func Propagate(g *dag.DAG, source string, rank func(id string) int) (map[string]*big.Int, error) {
	if !g.HasNode(source) {
		return nil, fmt.Errorf("source %q: %w", source, dag.ErrUnknownNode)
	}

	if rank == nil {
		ranks := transform.Ranks(g)
		rank = func(id string) int { return ranks[id] }
	}

	ids := g.NodeIDs()
	rankOf := make(map[string]int, len(ids))
	for _, id := range ids {
		rankOf[id] = rank(id)
	}
	slices.SortFunc(ids, func(a, b string) int {
		if c := cmp.Compare(rankOf[a], rankOf[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	counts := make(map[string]*big.Int, len(ids))
	for _, id := range ids {
		counts[id] = new(big.Int)
	}
	counts[source].SetInt64(1)

	for _, id := range ids {
		c := counts[id]
		for _, n := range g.Neighbors(id) {
			if rankOf[n] <= rankOf[id] {
				return nil, fmt.Errorf("edge %s→%s has ranks %d→%d: %w",
					id, n, rankOf[id], rankOf[n], ErrOrderViolation)
			}
			if c.Sign() != 0 {
				counts[n].Add(counts[n], c)
			}
		}
	}

	return counts, nil
}
