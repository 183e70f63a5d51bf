package devtools

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/Tim4270/ProceduralGenerationTools/pkg/generator"
)

// TreeToDOT returns a Graphviz DOT digraph of a partition tree.
// Internal nodes show their area; leaves are rounded boxes that also show
// their room, filled green when one was placed.
func TreeToDOT(t *generator.Tree) string {
	var buf bytes.Buffer
	buf.WriteString("digraph BSP {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"monospace\", fontsize=12, style=filled, fillcolor=white];\n")
	buf.WriteString("  edge [arrowhead=none];\n\n")

	if t != nil && t.Len() > 0 {
		writeDOTNode(&buf, t, generator.RootID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeDOTNode(buf *bytes.Buffer, t *generator.Tree, id generator.NodeID) {
	n := t.Node(id)
	area := fmt.Sprintf("%dx%d @ %d,%d", n.Area.W, n.Area.H, n.Area.X, n.Area.Y)

	if !n.IsLeaf() {
		fmt.Fprintf(buf, "  n%d [label=%q, shape=box];\n", id, area)
		for _, c := range []generator.NodeID{n.Child1, n.Child2} {
			fmt.Fprintf(buf, "  n%d -> n%d;\n", id, c)
			writeDOTNode(buf, t, c)
		}
		return
	}

	if n.HasRoom {
		label := area + "\nroom " + n.Room.String()
		fmt.Fprintf(buf, "  n%d [label=%q, shape=box, style=\"filled,rounded\", fillcolor=palegreen];\n", id, label)
		return
	}
	fmt.Fprintf(buf, "  n%d [label=%q, shape=box, style=\"filled,rounded,dashed\", fillcolor=lightgrey];\n", id, area+"\nno room")
}

// RenderTreeSVG renders DOT source to SVG using the embedded Graphviz
func RenderTreeSVG(ctx context.Context, dot string) ([]byte, error) {
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
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
