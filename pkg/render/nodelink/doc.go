// Package nodelink renders positioned node graphs as node-link diagrams.
//
// Unlike a layered layout, every node keeps the coordinates it already has:
// [ToDOT] pins each box with pos="x,y!" and [RenderSVG] uses the neato
// engine, which honours pinned positions. This makes the output a faithful
// preview of a cascade push.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Highlight: moves})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Graph coordinates are pixels with y growing downwards. DOT positions are
// points with y growing upwards, so y is negated; box sizes are converted to
// inches at 72 points per inch.
package nodelink
