// Package canvas defines the drawing surface used by the page and diagram
// renderers, with an SVG backend for document output and a raster backend
// (fogleman/gg) for PNG previews and pixel tests.
//
// The interface is deliberately small: the layout engines compute all
// geometry themselves and only need primitive draw calls. Keeping the
// backends behind this interface means the layout math never touches a
// rendering library.
package canvas

import "github.com/mkuehn/vitae/pkg/render/text"

// Canvas is a 2D drawing surface in point units with the origin at the top
// left and y growing downward.
//
// Draw order is z-order: later calls paint over earlier ones. Implementations
// are not safe for concurrent use.
type Canvas interface {
	// SetStroke sets the stroke color (hex, e.g. "#0F1C3F") and line width
	// for subsequent Line, Bezier, and RoundedRect calls.
	SetStroke(color string, width float64)

	// Line draws a straight stroked segment.
	Line(x1, y1, x2, y2 float64)

	// Bezier draws a stroked cubic curve from (x1,y1) to (x2,y2) with
	// control points (cx1,cy1) and (cx2,cy2).
	Bezier(x1, y1, cx1, cy1, cx2, cy2, x2, y2 float64)

	// RoundedRect strokes a rectangle with corner radius r. No fill.
	RoundedRect(x, y, w, h, r float64)

	// FillRect fills a rectangle with the given color, without stroking.
	FillRect(x, y, w, h float64, color string)

	// Text draws markup wrapped to width, top-anchored at (x, y), and
	// returns the height consumed. Span colors override the style color.
	Text(markup string, x, y, width float64, st text.Style) float64
}
