package core

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ReadEdgeList builds a Graph from a whitespace-separated edge list.
//
// Each non-blank line not starting with '#' is either "u v [attrs...]" (an
// edge; trailing attribute tokens such as "{}" are ignored) or a single token
// "u" (an isolated vertex). Self-loops and duplicate edges are rejected with
// ErrBadEdgeList wrapping the core sentinel.
func ReadEdgeList(r io.Reader) (*Graph, error) {
	g := NewGraph()
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) == 1 {
			if err := g.AddVertex(fields[0]); err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrBadEdgeList, line, err)
			}
			continue
		}
		if _, err := g.AddEdge(fields[0], fields[1]); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrBadEdgeList, line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadEdgeList, err)
	}

	return g, nil
}

// WriteEdgeList writes g in the format accepted by ReadEdgeList: isolated
// vertices first as single tokens, then one "u v" line per edge.
func WriteEdgeList(w io.Writer, g *Graph) error {
	bw := bufio.NewWriter(w)
	for _, id := range g.Vertices() {
		if d, _ := g.Degree(id); d == 0 {
			if _, err := fmt.Fprintln(bw, id); err != nil {
				return err
			}
		}
	}
	for _, e := range g.Edges() {
		if _, err := fmt.Fprintf(bw, "%s %s\n", e.From, e.To); err != nil {
			return err
		}
	}

	return bw.Flush()
}
