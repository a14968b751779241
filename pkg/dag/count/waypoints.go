package count

import (
	"math/big"

	"github.com/matzehuels/fanout/pkg/dag"
)

// CountVia returns the exact number of distinct paths from start to target
// that visit both w1 and w2, in either order.
//
// The query is answered without enumeration by case-splitting on which
// waypoint is reached first and multiplying unconstrained segment counts:
//
//	count(start→w1 avoiding w2) × count(w1→w2) × count(w2→target)
//	  + count(start→w2 avoiding w1) × count(w2→w1) × count(w1→target)
//
// The avoid constraint on the first segment keeps the two cases disjoint: a
// path counted in the w1-first term has provably not touched w2 yet. On an
// acyclic graph the segments of a term are node-disjoint (a path leaving a
// waypoint cannot return to anything that reaches it), so each product
// counts exactly the simple paths of its case and at most one term is
// nonzero - w1 reaching w2 and w2 reaching w1 would be a cycle.
//
// Coinciding nodes (start equal to a waypoint, w1 == w2, and so on) and
// unreachable segments make terms legitimately zero; they are not errors.
//
// CountVia fails with [dag.ErrUnknownNode] if any of the four nodes is
// absent and with [dag.ErrGraphHasCycle] on cyclic input. The cycle check is
// the decomposition's validity check: cyclic inputs are exactly the ones
// where waypoint "zones" could be re-entered out of order and the products
// would overcount.
func CountVia(g *dag.DAG, start, target, w1, w2 string) (*big.Int, error) {
	if err := checkNodes(g, start, target, []string{w1, w2}); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	total := segment(g, start, w1, w2, target)
	return total.Add(total, segment(g, start, w2, w1, target)), nil
}

// segment computes one term of the case split: paths that reach first before
// second, as the product first-leg × middle × final.
func segment(g *dag.DAG, start, first, second, target string) *big.Int {
	avoidSecond := map[string]struct{}{second: {}}
	none := map[string]struct{}{}

	product := countPaths(g, start, first, avoidSecond)
	if product.Sign() == 0 {
		return product
	}
	product.Mul(product, countPaths(g, first, second, none))
	if product.Sign() == 0 {
		return product
	}
	return product.Mul(product, countPaths(g, second, target, none))
}
