package count

import (
	"errors"
	"slices"
	"testing"

	"github.com/matzehuels/fanout/pkg/dag"
)

func collect(t *testing.T, g *dag.DAG, start, target string) [][]string {
	t.Helper()
	seq, err := Enumerate(g, start, target)
	if err != nil {
		t.Fatalf("Enumerate() error = %v", err)
	}
	var paths [][]string
	for p := range seq {
		paths = append(paths, p)
	}
	return paths
}

func TestEnumerate_Diamond(t *testing.T) {
	g := mustBuild(t, [][2]string{
		{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"},
	})

	paths := collect(t, g, "a", "d")

	want := [][]string{{"a", "b", "d"}, {"a", "c", "d"}}
	if len(paths) != len(want) {
		t.Fatalf("Enumerate() yielded %d paths, want %d", len(paths), len(want))
	}
	for _, w := range want {
		found := slices.ContainsFunc(paths, func(p []string) bool { return slices.Equal(p, w) })
		if !found {
			t.Errorf("Enumerate() missing path %v", w)
		}
	}
}

func TestEnumerate_BreadthFirstOrder(t *testing.T) {
	// The short route a→d must be yielded before the long one a→b→c→d.
	g := mustBuild(t, [][2]string{
		{"a", "d"}, {"a", "b"}, {"b", "c"}, {"c", "d"},
	})

	paths := collect(t, g, "a", "d")

	if len(paths) != 2 {
		t.Fatalf("Enumerate() yielded %d paths, want 2", len(paths))
	}
	if !slices.Equal(paths[0], []string{"a", "d"}) {
		t.Errorf("first path = %v, want the shortest", paths[0])
	}
}

func TestEnumerate_NoPath(t *testing.T) {
	g := mustBuild(t, [][2]string{{"a", "b"}, {"x", "t"}})

	if paths := collect(t, g, "a", "t"); len(paths) != 0 {
		t.Errorf("Enumerate() = %v, want none", paths)
	}
}

func TestEnumerate_StartEqualsTarget(t *testing.T) {
	g := mustBuild(t, [][2]string{{"a", "b"}})

	paths := collect(t, g, "a", "a")

	if len(paths) != 1 || !slices.Equal(paths[0], []string{"a"}) {
		t.Errorf("Enumerate() = %v, want the trivial path [a]", paths)
	}
}

func TestEnumerate_CycleTerminates(t *testing.T) {
	// The per-path visited check keeps enumeration finite even on cyclic
	// input; only simple paths come out.
	g := mustBuild(t, [][2]string{
		{"a", "b"}, {"b", "a"}, {"b", "t"},
	})

	paths := collect(t, g, "a", "t")

	if len(paths) != 1 || !slices.Equal(paths[0], []string{"a", "b", "t"}) {
		t.Errorf("Enumerate() = %v, want [[a b t]]", paths)
	}
}

func TestEnumerate_EarlyStop(t *testing.T) {
	g := diamondChain(t, 6)

	seq, err := Enumerate(g, nodeID("n", 0), nodeID("n", 6))
	if err != nil {
		t.Fatalf("Enumerate() error = %v", err)
	}
	n := 0
	for range seq {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("consumed %d paths, want 3", n)
	}
}

func TestEnumerate_YieldedPathsAreIndependent(t *testing.T) {
	g := mustBuild(t, [][2]string{{"a", "b"}, {"b", "c"}})

	paths := collect(t, g, "a", "c")
	if len(paths) != 1 {
		t.Fatalf("Enumerate() yielded %d paths, want 1", len(paths))
	}
	paths[0][0] = "mutated"

	again := collect(t, g, "a", "c")
	if !slices.Equal(again[0], []string{"a", "b", "c"}) {
		t.Errorf("second enumeration = %v, want [a b c]", again[0])
	}
}

func TestEnumerate_UnknownNode(t *testing.T) {
	g := mustBuild(t, [][2]string{{"a", "b"}})

	if _, err := Enumerate(g, "zzz", "b"); !errors.Is(err, dag.ErrUnknownNode) {
		t.Errorf("Enumerate() error = %v, want ErrUnknownNode", err)
	}
}
