package hasse

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/posetrank/posetrank/pkg/order"
	"github.com/posetrank/posetrank/pkg/order/rank"
	"github.com/posetrank/posetrank/pkg/render"
)

// Options configures Hasse diagram rendering.
type Options struct {
	// Detailed annotates each node with its possible rank interval.
	// When false, only the element label is shown.
	Detailed bool
}

// ToDOT converts a partial order to Graphviz DOT format, drawing only its
// cover relation. Lesser elements appear below greater ones, following the
// usual Hasse diagram convention. The resulting DOT string can be rendered
// using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(p *order.PartialOrder, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i := 0; i < p.N(); i++ {
		label := fmtLabel(p, i, opts.Detailed)
		fmt.Fprintf(&buf, "  %q [label=%q];\n", p.Label(i), label)
	}

	buf.WriteString("\n")
	for _, c := range p.CoverPairs() {
		fmt.Fprintf(&buf, "  %q -- %q;\n", p.Label(c.Lower), p.Label(c.Upper))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(p *order.PartialOrder, i int, detailed bool) string {
	label := p.Label(i)
	if !detailed {
		return label
	}

	iv, err := rank.ElementInterval(p, i)
	if err != nil {
		return label
	}
	if iv.Min == iv.Max {
		return fmt.Sprintf("%s\nrank %d", label, iv.Min)
	}
	return fmt.Sprintf("%s\nranks %d..%d", label, iv.Min, iv.Max)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
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

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
