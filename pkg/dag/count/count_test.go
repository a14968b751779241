package count

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/matzehuels/fanout/pkg/dag"
)

// mustBuild constructs a DAG from from→to pairs, failing the test on error.
func mustBuild(t *testing.T, pairs [][2]string) *dag.DAG {
	t.Helper()
	edges := make([]dag.Edge, len(pairs))
	for i, p := range pairs {
		edges[i] = dag.Edge{From: p[0], To: p[1]}
	}
	g, err := dag.Build(edges)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return g
}

func wantCount(t *testing.T, got *big.Int, err error, want int64) {
	t.Helper()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if got.Cmp(big.NewInt(want)) != 0 {
		t.Errorf("Count() = %s, want %d", got, want)
	}
}

func TestCount_Diamond(t *testing.T) {
	g := mustBuild(t, [][2]string{
		{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"},
	})

	got, err := Count(g, "a", "d")
	wantCount(t, got, err, 2)
}

func TestCount_ConvergenceThenDivergence(t *testing.T) {
	// S→A→B→out with a second route A→C→B. B is a convergence point:
	// both branches must be summed there, then carried on to out.
	g := mustBuild(t, [][2]string{
		{"S", "A"}, {"A", "B"}, {"B", "out"}, {"A", "C"}, {"C", "B"},
	})

	got, err := Count(g, "S", "out")
	wantCount(t, got, err, 2)
}

func TestCount_StartEqualsTarget(t *testing.T) {
	g := mustBuild(t, [][2]string{{"a", "b"}})

	got, err := Count(g, "a", "a")
	wantCount(t, got, err, 1)
}

func TestCount_StartEqualsTargetWithUnrelatedAvoid(t *testing.T) {
	g := mustBuild(t, [][2]string{{"a", "b"}, {"b", "c"}})

	got, err := Count(g, "a", "a", "b")
	wantCount(t, got, err, 1)
}

func TestCount_TargetInAvoidIsZero(t *testing.T) {
	g := mustBuild(t, [][2]string{{"a", "b"}})

	got, err := Count(g, "a", "b", "b")
	wantCount(t, got, err, 0)

	got, err = Count(g, "a", "a", "a")
	wantCount(t, got, err, 0)
}

func TestCount_DeadEndIsZeroNotError(t *testing.T) {
	// "a" reaches only the dead end "b"; target "t" sits in a separate
	// component.
	g := mustBuild(t, [][2]string{{"a", "b"}, {"x", "t"}})

	got, err := Count(g, "a", "t")
	wantCount(t, got, err, 0)
}

func TestCount_AvoidCutsRoutes(t *testing.T) {
	g := mustBuild(t, [][2]string{
		{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"},
	})

	got, err := Count(g, "a", "d", "b")
	wantCount(t, got, err, 1)

	got, err = Count(g, "a", "d", "b", "c")
	wantCount(t, got, err, 0)
}

func TestCount_UnknownNodes(t *testing.T) {
	g := mustBuild(t, [][2]string{{"a", "b"}})

	if _, err := Count(g, "zzz", "b"); !errors.Is(err, dag.ErrUnknownNode) {
		t.Errorf("Count(unknown start) error = %v, want ErrUnknownNode", err)
	}
	if _, err := Count(g, "a", "zzz"); !errors.Is(err, dag.ErrUnknownNode) {
		t.Errorf("Count(unknown target) error = %v, want ErrUnknownNode", err)
	}
	if _, err := Count(g, "a", "b", "zzz"); !errors.Is(err, dag.ErrUnknownNode) {
		t.Errorf("Count(unknown avoid) error = %v, want ErrUnknownNode", err)
	}
}

func TestCount_CyclicGraphFailsLoudly(t *testing.T) {
	g := mustBuild(t, [][2]string{
		{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "b"},
	})

	if _, err := Count(g, "a", "c"); !errors.Is(err, dag.ErrGraphHasCycle) {
		t.Errorf("Count() error = %v, want ErrGraphHasCycle", err)
	}
}

func TestCount_CycleOutsideQueryStillRejected(t *testing.T) {
	// The cycle x↔y is unreachable from the query, but the precondition is
	// on the graph, not the reachable slice: better to reject than to trust
	// an input that is already known to be malformed.
	g := mustBuild(t, [][2]string{
		{"a", "b"}, {"x", "y"}, {"y", "x"},
	})

	if _, err := Count(g, "a", "b"); !errors.Is(err, dag.ErrGraphHasCycle) {
		t.Errorf("Count() error = %v, want ErrGraphHasCycle", err)
	}
}

func TestCount_DiamondChainExceedsUint64(t *testing.T) {
	// 70 chained diamonds give 2^70 paths, past the edge of uint64. The
	// big.Int arithmetic must carry exactly.
	g := diamondChain(t, 70)

	got, err := Count(g, nodeID("n", 0), nodeID("n", 70))
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	want := new(big.Int).Exp(big.NewInt(2), big.NewInt(70), nil)
	if got.Cmp(want) != 0 {
		t.Errorf("Count() = %s, want %s", got, want)
	}
}

func TestCount_ResultIsIndependentOfMemo(t *testing.T) {
	g := mustBuild(t, [][2]string{{"a", "b"}, {"b", "c"}})

	got, err := Count(g, "a", "c")
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	got.SetInt64(999)

	again, err := Count(g, "a", "c")
	wantCount(t, again, err, 1)
}

// diamondChain builds n diamonds end to end: n0 splits to two mid nodes that
// rejoin at n1, and so on. Total path count is 2^n.
func diamondChain(t *testing.T, n int) *dag.DAG {
	t.Helper()
	g := dag.New(nil)
	for i := 0; i < n; i++ {
		from := nodeID("n", i)
		to := nodeID("n", i+1)
		left := nodeID("l", i)
		right := nodeID("r", i)
		for _, e := range []dag.Edge{
			{From: from, To: left},
			{From: from, To: right},
			{From: left, To: to},
			{From: right, To: to},
		} {
			if err := g.AddEdge(e); err != nil {
				t.Fatalf("AddEdge() error = %v", err)
			}
		}
	}
	return g
}

func nodeID(prefix string, i int) string {
	// Zero-padded so lexicographic order matches numeric order; Propagate
	// tie-breaks equal ranks by ID.
	return fmt.Sprintf("%s%03d", prefix, i)
}
