package transform

import (
	"testing"

	"github.com/matzehuels/fanout/pkg/dag"
)

func TestRanks_Chain(t *testing.T) {
	g, err := dag.Build([]dag.Edge{
		{From: "a", To: "b"},
		{From: "b", To: "c"},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	ranks := Ranks(g)

	want := map[string]int{"a": 0, "b": 1, "c": 2}
	for id, r := range want {
		if ranks[id] != r {
			t.Errorf("Ranks()[%s] = %d, want %d", id, ranks[id], r)
		}
	}
}

func TestRanks_LongestPathWins(t *testing.T) {
	// a→d directly, but also a→b→c→d: d must sit below the longer chain.
	g, err := dag.Build([]dag.Edge{
		{From: "a", To: "d"},
		{From: "a", To: "b"},
		{From: "b", To: "c"},
		{From: "c", To: "d"},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	ranks := Ranks(g)

	if ranks["d"] != 3 {
		t.Errorf("Ranks()[d] = %d, want 3", ranks["d"])
	}
}

func TestRanks_EveryEdgeStrictlyIncreases(t *testing.T) {
	g, err := dag.Build([]dag.Edge{
		{From: "s", To: "a"},
		{From: "s", To: "b"},
		{From: "a", To: "m"},
		{From: "b", To: "m"},
		{From: "m", To: "z"},
		{From: "a", To: "z"},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	ranks := Ranks(g)

	for _, e := range g.Edges() {
		if ranks[e.From] >= ranks[e.To] {
			t.Errorf("edge %s→%s has ranks %d→%d, want strict increase",
				e.From, e.To, ranks[e.From], ranks[e.To])
		}
	}
}

func TestRanks_EmptyGraph(t *testing.T) {
	if got := Ranks(dag.New(nil)); len(got) != 0 {
		t.Errorf("Ranks() = %v, want empty", got)
	}
}

func TestBackEdges_Acyclic(t *testing.T) {
	g, err := dag.Build([]dag.Edge{
		{From: "a", To: "b"},
		{From: "a", To: "c"},
		{From: "b", To: "d"},
		{From: "c", To: "d"},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got := BackEdges(g); len(got) != 0 {
		t.Errorf("BackEdges() = %v, want none", got)
	}
}

func TestBackEdges_SimpleCycle(t *testing.T) {
	g, err := dag.Build([]dag.Edge{
		{From: "a", To: "b"},
		{From: "b", To: "a"},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	got := BackEdges(g)
	if len(got) != 1 {
		t.Fatalf("BackEdges() = %v, want exactly one", got)
	}
}

func TestBackEdges_CycleBehindDiamond(t *testing.T) {
	g, err := dag.Build([]dag.Edge{
		{From: "a", To: "b"},
		{From: "b", To: "c"},
		{From: "c", To: "d"},
		{From: "d", To: "b"},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	got := BackEdges(g)
	if len(got) != 1 {
		t.Fatalf("BackEdges() = %v, want exactly one", got)
	}
	if got[0].From != "d" || got[0].To != "b" {
		t.Errorf("BackEdges()[0] = %v, want d→b", got[0])
	}
}

func TestBackEdges_DoesNotMutate(t *testing.T) {
	g, err := dag.Build([]dag.Edge{
		{From: "a", To: "b"},
		{From: "b", To: "a"},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	BackEdges(g)

	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d after BackEdges, want 2", g.EdgeCount())
	}
}
