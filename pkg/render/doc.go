// Package render draws sequence graphs as node-link diagrams.
//
// # Overview
//
// Graphs are converted to Graphviz DOT with one box per node, labelled with
// the node's symbols, and laid out left to right in topological order. The
// DOT source can be rendered in-process to SVG and, through librsvg, to PDF
// or PNG.
//
//	dot := render.ToDOT(g, render.Options{})
//	svg, err := render.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(svg)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: labels also show the node index and its flat position range
//   - Path: nodes to highlight, for example the path of an aligned sequence
//   - MaxLabel: longer node sequences are abbreviated
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package render
