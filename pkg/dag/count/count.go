package count

import (
	"fmt"
	"math/big"

	"github.com/matzehuels/fanout/pkg/dag"
)

// Count returns the exact number of distinct paths from start to target that
// visit no node in avoid. With an empty avoid list it is the plain path
// count.
//
// Endpoints follow one consistent policy: a path visits every node on it,
// including start and target, so if either endpoint is in avoid the result
// is zero. Count(g, x, x) is 1 (the trivial path). A non-target node with no
// eligible out-neighbors contributes 0, which is an answer, not an error.
//
// Count fails with [dag.ErrUnknownNode] if start, target, or any avoid node
// is absent from the graph, and with [dag.ErrGraphHasCycle] if the graph is
// not acyclic. The cycle check runs before counting: recursing into a cycle
// would either loop forever or memoize garbage, and both are worse than an
// error.
//
// The memo table lives and dies inside this call. Counting is O(N+E) after
// the cycle check; recursion depth is bounded by the longest chain in the
// graph.
func Count(g *dag.DAG, start, target string, avoid ...string) (*big.Int, error) {
	if err := checkNodes(g, start, target, avoid); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	avoidSet := make(map[string]struct{}, len(avoid))
	for _, id := range avoid {
		avoidSet[id] = struct{}{}
	}
	return countPaths(g, start, target, avoidSet), nil
}

// countPaths is the memoized core, shared by Count and CountVia. The graph
// must already be validated and all nodes known to exist.
func countPaths(g *dag.DAG, start, target string, avoid map[string]struct{}) *big.Int {
	if _, skip := avoid[start]; skip {
		return new(big.Int)
	}
	if _, skip := avoid[target]; skip {
		return new(big.Int)
	}

	one := big.NewInt(1)
	memo := make(map[string]*big.Int)

	var walk func(id string) *big.Int
	walk = func(id string) *big.Int {
		if id == target {
			return one
		}
		if c, ok := memo[id]; ok {
			return c
		}
		total := new(big.Int)
		for _, n := range g.Neighbors(id) {
			if _, skip := avoid[n]; skip {
				continue
			}
			total.Add(total, walk(n))
		}
		memo[id] = total
		return total
	}

	// Copy so the caller never aliases the shared 1 or a memo entry.
	return new(big.Int).Set(walk(start))
}

// checkNodes surfaces any query node that is absent from the graph. An
// unknown node is always a caller mistake; treating it as zero-count would
// hide typos in node labels.
func checkNodes(g *dag.DAG, start, target string, avoid []string) error {
	if !g.HasNode(start) {
		return fmt.Errorf("start %q: %w", start, dag.ErrUnknownNode)
	}
	if !g.HasNode(target) {
		return fmt.Errorf("target %q: %w", target, dag.ErrUnknownNode)
	}
	for _, id := range avoid {
		if !g.HasNode(id) {
			return fmt.Errorf("avoid %q: %w", id, dag.ErrUnknownNode)
		}
	}
	return nil
}
