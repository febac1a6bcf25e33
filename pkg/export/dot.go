package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// ToDOT converts a plan to Graphviz DOT format as a connection schematic:
// one node per circuit colored with its palette color, one node per plate,
// and an edge from each circuit to every plate it serves. The schematic
// complements the scale drawing when checking which plates a manifold
// port feeds.
func ToDOT(p *Plan) string {
	var buf bytes.Buffer
	buf.WriteString("digraph plan {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	for i, c := range p.Circuits {
		label := fmt.Sprintf("circuit %d\n%.1f m", i+1, c.LengthMM/1000)
		fmt.Fprintf(&buf, "  \"c%d\" [label=%q, fillcolor=%q, fontcolor=white];\n", i, label, c.Color)
	}

	buf.WriteString("\n")
	for _, pl := range platesOf(p) {
		fmt.Fprintf(&buf, "  \"p%d\" [label=\"plate %d\"];\n", pl, pl)
	}

	buf.WriteString("\n")
	for i, c := range p.Circuits {
		for _, pl := range c.Plates {
			fmt.Fprintf(&buf, "  \"c%d\" -> \"p%d\";\n", i, pl)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func platesOf(p *Plan) []int {
	var out []int
	for _, c := range p.Circuits {
		out = append(out, c.Plates...)
	}
	return out
}

// RenderDOT renders the schematic through Graphviz to the given format.
// Supported formats are [graphviz.SVG] and [graphviz.PNG].
func RenderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
