package count_test

import (
	"fmt"

	"github.com/matzehuels/fanout/pkg/dag"
	"github.com/matzehuels/fanout/pkg/dag/count"
)

func ExampleCount() {
	// Two branches split at "a" and rejoin at "d".
	g, _ := dag.Build([]dag.Edge{
		{From: "a", To: "b"},
		{From: "a", To: "c"},
		{From: "b", To: "d"},
		{From: "c", To: "d"},
	})

	n, _ := count.Count(g, "a", "d")
	fmt.Println(n)

	// Avoiding "b" leaves only the route through "c".
	n, _ = count.Count(g, "a", "d", "b")
	fmt.Println(n)
	// Output:
	// 2
	// 1
}

func ExamplePropagate() {
	g, _ := dag.Build([]dag.Edge{
		{From: "S", To: "A"},
		{From: "A", To: "B"},
		{From: "A", To: "C"},
		{From: "C", To: "B"},
		{From: "B", To: "out"},
	})

	counts, _ := count.Propagate(g, "S", nil)
	fmt.Println("B:", counts["B"])
	fmt.Println("out:", counts["out"])
	// Output:
	// B: 2
	// out: 2
}

func ExampleCountVia() {
	// Every s→t path runs w1 then w2; two choices per segment.
	g, _ := dag.Build([]dag.Edge{
		{From: "s", To: "w1"}, {From: "s", To: "a"}, {From: "a", To: "w1"},
		{From: "w1", To: "w2"}, {From: "w1", To: "b"}, {From: "b", To: "w2"},
		{From: "w2", To: "t"}, {From: "w2", To: "c"}, {From: "c", To: "t"},
	})

	n, _ := count.CountVia(g, "s", "t", "w1", "w2")
	fmt.Println(n)
	// Output:
	// 8
}

func ExampleEnumerate() {
	g, _ := dag.Build([]dag.Edge{
		{From: "you", To: "aaa"},
		{From: "you", To: "bbb"},
		{From: "aaa", To: "out"},
		{From: "bbb", To: "out"},
	})

	paths, _ := count.Enumerate(g, "you", "out")
	for p := range paths {
		fmt.Println(p)
	}
	// Output:
	// [you aaa out]
	// [you bbb out]
}
