package fusion

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
)

// ToDOT converts the fusion graph to Graphviz DOT format: inputs and outputs
// as rounded boxes, one edge per matched source reference. Unmatched sources
// are omitted, mirroring the diagram's silent-skip behavior.
//
// This is a debugging view of the connector topology, not the styled diagram.
func ToDOT(inputs []InputNode, outputs []OutputNode) string {
	inputs = NormalizeInputs(inputs)

	var buf bytes.Buffer
	buf.WriteString("digraph fusion {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=rounded, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=1.0;\n")
	buf.WriteString("\n")

	keys := make(map[string]string, 2*len(inputs)) // key/label -> node id
	for _, in := range inputs {
		id := "in_" + in.Key
		fmt.Fprintf(&buf, "  %q [label=%q];\n", id, in.Badge+". "+in.Label)
		keys[in.Key] = id
		keys[in.Label] = id
	}
	for i, out := range outputs {
		label := out.Label
		if out.Alias != "" {
			label += " " + out.Alias
		}
		fmt.Fprintf(&buf, "  %q [label=%q, penwidth=1.5];\n", outID(i), label)
	}

	buf.WriteString("\n")
	for i, out := range outputs {
		for _, src := range out.Sources {
			id, ok := keys[src]
			if !ok {
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q;\n", id, outID(i))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func outID(i int) string {
	return fmt.Sprintf("out_%d", i)
}

// Unmatched returns the output source references that match no input key or
// label, in document order. ToDOT drops such references without comment, so
// exporters call this first to surface them as warnings or, under strict
// matching, errors.
func Unmatched(inputs []InputNode, outputs []OutputNode) []string {
	inputs = NormalizeInputs(inputs)
	known := make(map[string]bool, 2*len(inputs))
	for _, in := range inputs {
		known[in.Key] = true
		known[in.Label] = true
	}

	var missing []string
	for _, out := range outputs {
		for _, src := range out.Sources {
			if !known[src] {
				missing = append(missing, src)
			}
		}
	}
	return missing
}

// RenderDOT renders a DOT string to SVG using Graphviz.
func RenderDOT(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer func() { _ = g.Close() }()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// CountEdges reports the number of connector edges a DOT export contains.
// Used by tests and the CLI summary line.
func CountEdges(dot string) int {
	return strings.Count(dot, " -> ")
}
