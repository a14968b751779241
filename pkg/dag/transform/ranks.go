package transform

import "github.com/matzehuels/fanout/pkg/dag"

// Ranks assigns every node a depth based on its longest path from a source.
//
// Ranks uses a longest-path algorithm via topological sort (Kahn's
// algorithm). Each node is placed at one plus the maximum rank of any of its
// parents, ensuring that:
//   - Source nodes (no incoming edges) are at rank 0
//   - Every edge goes from a strictly smaller to a strictly larger rank
//
// The second property is exactly the total-order precondition of
// [count.Propagate], so Ranks is the standard way to propagate over a graph
// whose node identifiers carry no natural forward coordinate.
//
// # Cycles
//
// Ranks assumes the graph is acyclic. If cycles exist, nodes on a cycle never
// reach zero in-degree and keep their default rank 0; an edge between two
// rank-0 nodes then violates the strict-increase property and propagation
// reports it. Check [dag.DAG.Validate] first for a direct answer.
//
// # Performance
//
// Time complexity is O(N + E). Space complexity is O(N) for the queue and
// rank/degree maps.
func Ranks(g *dag.DAG) map[string]int {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	ranks := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, n := range nodes {
		degree := g.InDegree(n.ID)
		inDegree[n.ID] = degree
		ranks[n.ID] = 0
		if degree == 0 {
			queue = append(queue, n.ID)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range g.Neighbors(curr) {
			if rank := ranks[curr] + 1; rank > ranks[child] {
				ranks[child] = rank
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	return ranks
}
