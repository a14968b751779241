package graph_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/fanout/pkg/graph"
)

func ExampleParseText() {
	input := `you: aaa bbb
aaa: out
bbb: out
`
	g, _ := graph.ParseText(strings.NewReader(input))
	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	// Output:
	// Nodes: 4
	// Edges: 4
}

func ExampleMarshalGraph() {
	g, _ := graph.ParseText(strings.NewReader("a: b\n"))
	data, _ := graph.MarshalGraph(g)
	fmt.Println(string(data))
	// Output:
	// {
	//   "nodes": [
	//     {
	//       "id": "a"
	//     },
	//     {
	//       "id": "b"
	//     }
	//   ],
	//   "edges": [
	//     {
	//       "from": "a",
	//       "to": "b"
	//     }
	//   ]
	// }
}
