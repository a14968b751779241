package transform

import "github.com/matzehuels/fanout/pkg/dag"

// BackEdge identifies an edge whose removal would help make the graph
// acyclic.
type BackEdge struct {
	From string
	To   string
}

// BackEdges reports the back-edges found by a depth-first walk over the
// graph. An empty result means the graph is acyclic.
//
// The walk starts from source nodes first so that edges pointing "against"
// the natural flow are the ones reported, then covers any remaining
// unvisited nodes (components with no source, i.e. pure cycles). The graph
// is never modified: counting on a cyclic graph must fail, not silently
// proceed on a repaired copy, so repair is left to the caller.
func BackEdges(g *dag.DAG) []BackEdge {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int)
	var backEdges []BackEdge

	type frame struct {
		id   string
		next int
	}

	walk := func(start string) {
		stack := []frame{{id: start}}
		color[start] = gray
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			neighbors := g.Neighbors(top.id)
			if top.next >= len(neighbors) {
				color[top.id] = black
				stack = stack[:len(stack)-1]
				continue
			}
			child := neighbors[top.next]
			top.next++
			switch color[child] {
			case white:
				color[child] = gray
				stack = append(stack, frame{id: child})
			case gray:
				backEdges = append(backEdges, BackEdge{From: top.id, To: child})
			}
		}
	}

	for _, n := range g.Sources() {
		if color[n.ID] == white {
			walk(n.ID)
		}
	}
	for _, n := range g.Nodes() {
		if color[n.ID] == white {
			walk(n.ID)
		}
	}

	return backEdges
}
