package count

import (
	"fmt"
	"math/big"
	"math/rand"
	"slices"
	"testing"

	"github.com/matzehuels/fanout/pkg/dag"
)

// randomDAG builds a graph on n nodes where every edge goes from a lower to
// a higher index, so the result is acyclic by construction. The seed makes
// each test case reproducible.
func randomDAG(t *testing.T, n int, p float64, seed int64) *dag.DAG {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	g := dag.New(nil)
	for i := 0; i < n; i++ {
		if err := g.AddNode(dag.Node{ID: nodeID("v", i)}); err != nil {
			t.Fatalf("AddNode() error = %v", err)
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < p {
				if err := g.AddEdge(dag.Edge{From: nodeID("v", i), To: nodeID("v", j)}); err != nil {
					t.Fatalf("AddEdge() error = %v", err)
				}
			}
		}
	}
	return g
}

func TestCount_AgreesWithEnumerationOnRandomDAGs(t *testing.T) {
	for seed := int64(1); seed <= 8; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			g := randomDAG(t, 12, 0.35, seed)
			start, target := nodeID("v", 0), nodeID("v", 11)

			paths := collect(t, g, start, target)

			got, err := Count(g, start, target)
			if err != nil {
				t.Fatalf("Count() error = %v", err)
			}
			if got.Cmp(big.NewInt(int64(len(paths)))) != 0 {
				t.Errorf("Count() = %s, enumeration found %d", got, len(paths))
			}
		})
	}
}

func TestCount_AvoidAgreesWithFilteredEnumeration(t *testing.T) {
	for seed := int64(1); seed <= 4; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			g := randomDAG(t, 12, 0.35, seed)
			start, target := nodeID("v", 0), nodeID("v", 11)
			avoid := nodeID("v", 5)

			brute := 0
			for _, p := range collect(t, g, start, target) {
				if !slices.Contains(p, avoid) {
					brute++
				}
			}

			got, err := Count(g, start, target, avoid)
			if err != nil {
				t.Fatalf("Count() error = %v", err)
			}
			if got.Cmp(big.NewInt(int64(brute))) != 0 {
				t.Errorf("Count(avoid=%s) = %s, brute force = %d", avoid, got, brute)
			}
		})
	}
}

func TestPropagate_AgreesWithCountOnRandomDAGs(t *testing.T) {
	for seed := int64(1); seed <= 4; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			g := randomDAG(t, 14, 0.3, seed)
			source := nodeID("v", 0)

			counts, err := Propagate(g, source, nil)
			if err != nil {
				t.Fatalf("Propagate() error = %v", err)
			}

			for _, id := range g.NodeIDs() {
				want, err := Count(g, source, id)
				if err != nil {
					t.Fatalf("Count(%s) error = %v", id, err)
				}
				if counts[id].Cmp(want) != 0 {
					t.Errorf("Propagate()[%s] = %s, Count() = %s", id, counts[id], want)
				}
			}
		})
	}
}

func TestCountVia_AgreesWithEnumerationOnRandomDAGs(t *testing.T) {
	for seed := int64(1); seed <= 8; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			g := randomDAG(t, 12, 0.4, seed)
			start, target := nodeID("v", 0), nodeID("v", 11)
			w1, w2 := nodeID("v", 4), nodeID("v", 7)

			brute := 0
			for _, p := range collect(t, g, start, target) {
				if slices.Contains(p, w1) && slices.Contains(p, w2) {
					brute++
				}
			}

			got, err := CountVia(g, start, target, w1, w2)
			if err != nil {
				t.Fatalf("CountVia() error = %v", err)
			}
			if got.Cmp(big.NewInt(int64(brute))) != 0 {
				t.Errorf("CountVia() = %s, brute force = %d", got, brute)
			}
		})
	}
}
