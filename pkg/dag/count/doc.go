// Package count implements the fanout path-counting engine: exact counts of
// distinct paths through a directed acyclic graph, computed without
// materializing the paths.
//
// # Why counting is hard
//
// Walking a graph node by node undercounts as soon as paths converge and
// re-diverge: a node reachable along two upstream branches contributes its
// full downstream fan-out twice, and the error compounds at every merge
// point. Real inputs produce counts in the hundreds of trillions, far beyond
// anything enumerable. The engine therefore works on multiplicities, not
// paths.
//
// # Operations
//
//   - [Propagate] pushes per-node path counts forward through the graph in a
//     caller-supplied total order, handling convergence exactly.
//   - [Count] counts paths between two nodes by memoized depth-first
//     counting, optionally refusing to visit an avoid-set of nodes.
//   - [CountVia] answers "how many paths visit both waypoints" by splitting
//     the query into unconstrained segment counts (see below).
//   - [Enumerate] materializes simple paths breadth-first, for graphs small
//     enough that doing so is sane. It exists to verify the counters and to
//     serve puzzle variants that need the paths themselves.
//
// # Counts are big
//
// Every count is a [math/big.Int]. Dense layered graphs overflow uint64
// quickly, and a silently wrapped count is indistinguishable from a correct
// one at the call site. There is no saturating mode.
//
// # Waypoint segmentation
//
// Counting paths from start to target that visit waypoints W1 and W2 would
// naively require threading visit-state through the memo table, blowing up
// its key space. Instead [CountVia] case-splits on which waypoint is reached
// first:
//
//	count(start→W1 avoiding W2) × count(W1→W2) × count(W2→target)
//	  + count(start→W2 avoiding W1) × count(W2→W1) × count(W1→target)
//
// The first segment avoids the other waypoint so the two cases cannot double
// count. The decomposition is exact on any acyclic graph: a path out of a
// waypoint can never return to a node that reaches it (that would be a
// cycle), so the three segments of each term are node-disjoint and their
// concatenations are simple paths. In other words the acyclicity check that
// guards every query is also the validity check for the segmentation. One of
// the two terms is always zero on a DAG, since W1 reaching W2 and W2 reaching
// W1 cannot both hold.
//
// # Memoization scope
//
// Memo tables are keyed by node and scoped to a single top-level query, where
// the target and avoid-set are fixed. They are never shared between queries:
// an entry computed under one avoid-set is wrong under another.
//
// # Failure over plausible numbers
//
// A wrong count looks exactly like a right one, so every precondition
// violation is an error: unknown nodes ([dag.ErrUnknownNode]), cyclic inputs
// ([dag.ErrGraphHasCycle]), and propagation orders that don't strictly
// increase along every edge ([ErrOrderViolation]).
package count
