package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func newTestCLI() *CLI {
	return New(io.Discard, log.ErrorLevel)
}

// execute runs the root command with args and returns the error.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	root := newTestCLI().RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	return root.Execute()
}

// writeGraphFile writes a text graph to a temp file and returns its path.
func writeGraphFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const diamondText = "you: aaa bbb\naaa: out\nbbb: out\n"

func TestRootCommand_Subcommands(t *testing.T) {
	root := newTestCLI().RootCommand()

	want := []string{"count", "propagate", "paths", "render", "graph", "serve", "cache", "completion"}
	registered := map[string]bool{}
	for _, cmd := range root.Commands() {
		registered[cmd.Name()] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("RootCommand() missing subcommand %q", name)
		}
	}
}

func TestCountCommand(t *testing.T) {
	path := writeGraphFile(t, diamondText)

	if err := execute(t, "count", path, "you", "out", "--no-cache"); err != nil {
		t.Errorf("count = %v, want nil", err)
	}
}

func TestCountCommand_Avoid(t *testing.T) {
	path := writeGraphFile(t, diamondText)

	if err := execute(t, "count", path, "you", "out", "--avoid", "aaa", "--no-cache"); err != nil {
		t.Errorf("count --avoid = %v, want nil", err)
	}
}

func TestCountCommand_Via(t *testing.T) {
	path := writeGraphFile(t, "s: w1\nw1: w2\nw2: t\n")

	if err := execute(t, "count", path, "s", "t", "--via", "w1,w2", "--no-cache"); err != nil {
		t.Errorf("count --via = %v, want nil", err)
	}
}

func TestCountCommand_ViaWithAvoid(t *testing.T) {
	path := writeGraphFile(t, "s: w1 x\nx: w1\nw1: w2\nw2: t\n")

	if err := execute(t, "count", path, "s", "t", "--via", "w1,w2", "--avoid", "x", "--no-cache"); err == nil {
		t.Error("count with both --via and --avoid should fail")
	}
}

func TestCountCommand_UnknownNode(t *testing.T) {
	path := writeGraphFile(t, diamondText)

	if err := execute(t, "count", path, "you", "nowhere", "--no-cache"); err == nil {
		t.Error("count with unknown node should fail")
	}
}

func TestCountCommand_MissingFile(t *testing.T) {
	if err := execute(t, "count", "/no/such/graph.txt", "a", "b", "--no-cache"); err == nil {
		t.Error("count with missing file should fail")
	}
}

func TestPropagateCommand(t *testing.T) {
	path := writeGraphFile(t, diamondText)

	if err := execute(t, "propagate", path, "you", "--no-cache"); err != nil {
		t.Errorf("propagate = %v, want nil", err)
	}
}

func TestPathsCommand(t *testing.T) {
	path := writeGraphFile(t, diamondText)

	if err := execute(t, "paths", path, "you", "out"); err != nil {
		t.Errorf("paths = %v, want nil", err)
	}
}

func TestPathsCommand_Cyclic(t *testing.T) {
	path := writeGraphFile(t, "a: b\nb: a\n")

	if err := execute(t, "paths", path, "a", "b"); err == nil {
		t.Error("paths on cyclic graph should fail")
	}
}

func TestGraphStats(t *testing.T) {
	path := writeGraphFile(t, diamondText)

	if err := execute(t, "graph", "stats", path); err != nil {
		t.Errorf("graph stats = %v, want nil", err)
	}
}

func TestGraphCheck_Acyclic(t *testing.T) {
	path := writeGraphFile(t, diamondText)

	if err := execute(t, "graph", "check", path); err != nil {
		t.Errorf("graph check = %v, want nil", err)
	}
}

func TestGraphCheck_Cyclic(t *testing.T) {
	path := writeGraphFile(t, "a: b\nb: c\nc: a\n")

	if err := execute(t, "graph", "check", path); err == nil {
		t.Error("graph check on cyclic graph should fail")
	}
}

func TestGraphConvert(t *testing.T) {
	path := writeGraphFile(t, diamondText)
	out := filepath.Join(t.TempDir(), "graph.json")

	if err := execute(t, "graph", "convert", path, out); err != nil {
		t.Fatalf("graph convert = %v, want nil", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read converted file: %v", err)
	}
	if !strings.Contains(string(data), `"nodes"`) {
		t.Error("converted file should contain node-link JSON")
	}
}

func TestRenderCommand_DOT(t *testing.T) {
	path := writeGraphFile(t, diamondText)
	out := filepath.Join(t.TempDir(), "graph.dot")

	if err := execute(t, "render", path, "-f", "dot", "-o", out, "--ranks"); err != nil {
		t.Fatalf("render = %v, want nil", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read rendered file: %v", err)
	}
	if !strings.Contains(string(data), "digraph") {
		t.Error("rendered file should contain DOT output")
	}
}

func TestRenderCommand_InvalidFormat(t *testing.T) {
	path := writeGraphFile(t, diamondText)

	if err := execute(t, "render", path, "-f", "bmp"); err == nil {
		t.Error("render with invalid format should fail")
	}
}

func TestNewCache_NoCache(t *testing.T) {
	c, err := newCache(true)
	if err != nil {
		t.Fatalf("newCache(true) = %v, want nil", err)
	}
	defer c.Close()
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() = %v, want nil", err)
	}
	if filepath.Base(dir) != appName {
		t.Errorf("cacheDir() = %q, want a %q directory", dir, appName)
	}
}
