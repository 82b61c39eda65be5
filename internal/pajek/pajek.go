// Package pajek reads and writes the Pajek arc-list format described in
// SPEC_FULL.md §6: a "*vertices N" header, optional vertex labels, an
// "*arcs" marker, then "tail head" lines, 1-based. This is one of the
// "external collaborators" the core spec names as out of scope for the
// estimation engine itself but still needs a concrete implementation to
// drive it end to end (SPEC_FULL.md §12.3).
package pajek

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gilchrisn/ergm-estimnet/internal/graph"
)

// Graph is the result of a Read: the digraph plus the vertex labels (if
// the file carried any), indexed 0..N-1 after renumbering.
type Graph struct {
	G      *graph.Digraph
	Labels []string // nil if the file had no labels
}

// Read parses a Pajek arc-list file. Node IDs are renumbered to 0..N-1 by
// subtracting one from each 1-based id, whatever order the vertex lines
// appear in (SPEC_FULL.md §6: "Node IDs are renumbered to 0..N-1 on load").
func Read(r io.Reader) (*Graph, error) {
	scanner := bufio.NewScanner(r)
	var n int
	var labels []string
	var g *graph.Digraph
	inArcs := false
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(lower, "*vertices"):
			fields := strings.Fields(line)
			if len(fields) < 2 {
				return nil, fmt.Errorf("pajek: line %d: malformed *vertices header %q: %w", lineNo, line, graph.ErrInput)
			}
			var err error
			n, err = strconv.Atoi(fields[1])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("pajek: line %d: invalid vertex count %q: %w", lineNo, fields[1], graph.ErrInput)
			}
			g = graph.New(n)
			labels = make([]string, n)
			inArcs = false

		case strings.HasPrefix(lower, "*arcs") || strings.HasPrefix(lower, "*edges"):
			inArcs = true

		case !inArcs && g != nil:
			// A vertex label line: `id "label"` or just `id`.
			id, label, err := parseVertexLine(line)
			if err != nil {
				return nil, fmt.Errorf("pajek: line %d: %w", lineNo, err)
			}
			if id < 1 || id > n {
				return nil, fmt.Errorf("pajek: line %d: vertex id %d out of range [1,%d]: %w", lineNo, id, n, graph.ErrInput)
			}
			labels[id-1] = label

		case inArcs && g != nil:
			tail, head, err := parseArcLine(line)
			if err != nil {
				return nil, fmt.Errorf("pajek: line %d: %w", lineNo, err)
			}
			if tail < 1 || tail > n || head < 1 || head > n {
				return nil, fmt.Errorf("pajek: line %d: arc %d %d out of range [1,%d]: %w", lineNo, tail, head, n, graph.ErrInput)
			}
			if err := g.InsertArc(int32(tail-1), int32(head-1)); err != nil {
				return nil, fmt.Errorf("pajek: line %d: %w", lineNo, err)
			}

		default:
			return nil, fmt.Errorf("pajek: line %d: arc or vertex data before *vertices header: %w", lineNo, graph.ErrInput)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("pajek: %w", err)
	}
	if g == nil {
		return nil, fmt.Errorf("pajek: missing *vertices header: %w", graph.ErrInput)
	}

	hasLabels := false
	for _, l := range labels {
		if l != "" {
			hasLabels = true
			break
		}
	}
	if !hasLabels {
		labels = nil
	}
	return &Graph{G: g, Labels: labels}, nil
}

func parseVertexLine(line string) (id int, label string, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, "", fmt.Errorf("empty vertex line: %w", graph.ErrInput)
	}
	id, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, "", fmt.Errorf("invalid vertex id %q: %w", fields[0], graph.ErrInput)
	}
	if len(fields) > 1 {
		label = strings.Trim(strings.Join(fields[1:], " "), `"`)
	}
	return id, label, nil
}

func parseArcLine(line string) (tail, head int, err error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, 0, fmt.Errorf("malformed arc line %q: %w", line, graph.ErrInput)
	}
	tail, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid tail %q: %w", fields[0], graph.ErrInput)
	}
	head, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid head %q: %w", fields[1], graph.ErrInput)
	}
	return tail, head, nil
}

// Write serializes g (and optional labels) back into Pajek arc-list
// format, 1-based, in the order SPEC_FULL.md §8's round-trip scenario
// expects: a reload of a written file must be arc-for-arc identical.
func Write(w io.Writer, g *graph.Digraph, labels []string) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "*vertices %d\n", g.N()); err != nil {
		return err
	}
	for i := 0; i < g.N(); i++ {
		if labels != nil && i < len(labels) && labels[i] != "" {
			if _, err := fmt.Fprintf(bw, "%d \"%s\"\n", i+1, labels[i]); err != nil {
				return err
			}
		}
	}
	if _, err := fmt.Fprint(bw, "*arcs\n"); err != nil {
		return err
	}
	for _, arc := range g.Arcs() {
		if _, err := fmt.Fprintf(bw, "%d %d\n", arc.Tail+1, arc.Head+1); err != nil {
			return err
		}
	}
	return bw.Flush()
}
