package graph

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/fanout/pkg/dag"
)

// ParseText reads the plain-text adjacency format into a DAG.
//
// Each line names a source node and its targets:
//
//	you: aaa bbb
//	aaa: out
//
// Sink nodes appear only on the right-hand side. Blank lines and lines
// starting with '#' are ignored. A duplicate target on one line is a
// duplicate edge and fails loudly.
func ParseText(r io.Reader) (*dag.DAG, error) {
	g := dag.New(nil)
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		src, rest, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("line %d: missing ':' separator", lineNo)
		}
		src = strings.TrimSpace(src)
		if src == "" {
			return nil, fmt.Errorf("line %d: empty source node", lineNo)
		}

		targets := strings.Fields(rest)
		if len(targets) == 0 {
			// A source with no targets still declares the node.
			if !g.HasNode(src) {
				if err := g.AddNode(dag.Node{ID: src}); err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
			}
			continue
		}

		for _, dst := range targets {
			if err := g.AddEdge(dag.Edge{From: src, To: dst}); err != nil {
				return nil, fmt.Errorf("line %d: edge %s→%s: %w", lineNo, src, dst, err)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return g, nil
}

// ReadTextFile reads a text-format graph file and returns the decoded DAG.
func ReadTextFile(path string) (*dag.DAG, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ParseText(f)
}

// FormatText renders a DAG in the text adjacency format.
// Sources are sorted by ID; targets keep their insertion order. Sink nodes
// produce no line since they are implied by the edges.
func FormatText(g *dag.DAG) []byte {
	var buf bytes.Buffer
	for _, id := range g.NodeIDs() {
		targets := g.Neighbors(id)
		if len(targets) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "%s: %s\n", id, strings.Join(targets, " "))
	}
	return buf.Bytes()
}

// ReadFile loads a graph from a file, detecting the format from the
// extension: .json for the node-link format, anything else is parsed as
// the text adjacency format.
func ReadFile(path string) (*dag.DAG, error) {
	if strings.HasSuffix(path, ".json") {
		return ReadGraphFile(path)
	}
	return ReadTextFile(path)
}
