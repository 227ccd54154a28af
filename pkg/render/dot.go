package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

// DefaultMaxLabel is the label length used when Options.MaxLabel is zero.
const DefaultMaxLabel = 24

// Options configures diagram generation.
type Options struct {
	// Alphabet decodes node symbols. Defaults to DNA.
	Alphabet *seqgraph.Alphabet

	// Detailed adds the node index and its flat range to each label.
	Detailed bool

	// Path lists node indices to highlight. Edges between consecutive path
	// nodes are highlighted too.
	Path []int

	// MaxLabel abbreviates longer sequences; negative disables it.
	MaxLabel int
}

// ToDOT converts a sequence graph to Graphviz DOT.
func ToDOT(g *seqgraph.Graph, opts Options) string {
	alpha := opts.Alphabet
	if alpha == nil {
		alpha = seqgraph.DNA
	}
	maxLabel := opts.MaxLabel
	if maxLabel == 0 {
		maxLabel = DefaultMaxLabel
	}
	onPath := make(map[[2]int]bool, len(opts.Path))
	for k := 1; k < len(opts.Path); k++ {
		onPath[[2]int{opts.Path[k-1], opts.Path[k]}] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"monospace\", fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i := range g.NodeCount() {
		label := fmtLabel(g, i, alpha, maxLabel, opts.Detailed)
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if slices.Contains(opts.Path, i) {
			attrs = append(attrs, "fillcolor=\"#ffe08a\"", "penwidth=2")
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", i, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i := range g.NodeCount() {
		for _, j := range g.Successors(i) {
			if onPath[[2]int{i, j}] {
				fmt.Fprintf(&buf, "  n%d -> n%d [penwidth=2, color=\"#c98a00\"];\n", i, j)
				continue
			}
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", i, j)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(g *seqgraph.Graph, i int, alpha *seqgraph.Alphabet, maxLabel int, detailed bool) string {
	seq := alpha.Decode(g.NodeSequence(i))
	if maxLabel > 0 && len(seq) > maxLabel {
		half := (maxLabel - 3) / 2
		seq = seq[:half] + "..." + seq[len(seq)-(maxLabel-3-half):]
	}
	if !detailed {
		return seq
	}
	return fmt.Sprintf("%s\n#%d [%d,%d)", seq, i, g.NodeStart(i), g.NodeEnd(i))
}

// RenderSVG renders DOT source to SVG using Graphviz.
// The result can be converted further with [ToPDF] or [ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root tag so the drawing scales from the
// origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
