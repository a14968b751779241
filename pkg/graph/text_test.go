package graph

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/fanout/pkg/dag"
)

const sampleText = `# wiring diagram
you: aaa bbb
aaa: out

bbb: out
`

func TestParseText(t *testing.T) {
	g, err := ParseText(strings.NewReader(sampleText))
	if err != nil {
		t.Fatalf("ParseText() error = %v", err)
	}

	if g.NodeCount() != 4 {
		t.Errorf("NodeCount() = %d, want 4", g.NodeCount())
	}
	if g.EdgeCount() != 4 {
		t.Errorf("EdgeCount() = %d, want 4", g.EdgeCount())
	}
	if got := g.Neighbors("you"); !slices.Equal(got, []string{"aaa", "bbb"}) {
		t.Errorf("Neighbors(you) = %v, want [aaa bbb]", got)
	}
	// "out" exists only as a target.
	if !g.HasNode("out") {
		t.Error("HasNode(out) = false, want true")
	}
}

func TestParseText_MissingColon(t *testing.T) {
	_, err := ParseText(strings.NewReader("you aaa bbb\n"))
	if err == nil || !strings.Contains(err.Error(), "line 1") {
		t.Errorf("ParseText() error = %v, want line 1 separator error", err)
	}
}

func TestParseText_EmptySource(t *testing.T) {
	if _, err := ParseText(strings.NewReader(": aaa\n")); err == nil {
		t.Error("ParseText() error = nil, want empty source error")
	}
}

func TestParseText_DuplicateTarget(t *testing.T) {
	_, err := ParseText(strings.NewReader("you: aaa aaa\n"))
	if !errors.Is(err, dag.ErrDuplicateEdge) {
		t.Errorf("ParseText() error = %v, want ErrDuplicateEdge", err)
	}
}

func TestParseText_SourceWithoutTargets(t *testing.T) {
	g, err := ParseText(strings.NewReader("lonely:\n"))
	if err != nil {
		t.Fatalf("ParseText() error = %v", err)
	}
	if !g.HasNode("lonely") || g.EdgeCount() != 0 {
		t.Errorf("got %d nodes / %d edges, want the declared node and no edges",
			g.NodeCount(), g.EdgeCount())
	}
}

func TestFormatText_RoundTrip(t *testing.T) {
	g, err := ParseText(strings.NewReader(sampleText))
	if err != nil {
		t.Fatalf("ParseText() error = %v", err)
	}

	back, err := ParseText(strings.NewReader(string(FormatText(g))))
	if err != nil {
		t.Fatalf("ParseText(FormatText()) error = %v", err)
	}

	if back.NodeCount() != g.NodeCount() || back.EdgeCount() != g.EdgeCount() {
		t.Errorf("round trip = %d nodes / %d edges, want %d/%d",
			back.NodeCount(), back.EdgeCount(), g.NodeCount(), g.EdgeCount())
	}
	for _, id := range g.NodeIDs() {
		if !slices.Equal(back.Neighbors(id), g.Neighbors(id)) {
			t.Errorf("Neighbors(%s) = %v, want %v", id, back.Neighbors(id), g.Neighbors(id))
		}
	}
}

func TestReadFile_DetectsFormat(t *testing.T) {
	dir := t.TempDir()

	txtPath := filepath.Join(dir, "wiring.txt")
	if err := os.WriteFile(txtPath, []byte(sampleText), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := ParseText(strings.NewReader(sampleText))
	if err != nil {
		t.Fatal(err)
	}
	jsonPath := filepath.Join(dir, "wiring.json")
	if err := WriteGraphFile(g, jsonPath); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{txtPath, jsonPath} {
		got, err := ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%s) error = %v", path, err)
		}
		if got.NodeCount() != 4 || got.EdgeCount() != 4 {
			t.Errorf("ReadFile(%s) = %d nodes / %d edges, want 4/4",
				path, got.NodeCount(), got.EdgeCount())
		}
	}
}
