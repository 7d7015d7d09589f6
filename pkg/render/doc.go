// Package render turns CV content into document artifacts.
//
// # Overview
//
// The rendering pipeline is split into small subpackages:
//
//   - [text]: markup composition and deterministic text measurement
//   - [canvas]: drawing backends (SVG, raster PNG via fogleman/gg)
//   - [fusion]: the convergence diagram layout engine
//   - [page]: flowable content, pagination, and section builders
//
// # Format Conversion
//
// [ToPDF] converts rendered SVG pages to a single multi-page PDF using the
// external rsvg-convert tool (from librsvg). PNG output does not need the
// tool; it is rasterized in-process by the [canvas] raster backend.
//
//	pages := doc.RenderSVG(flow)
//	pdf, err := render.ToPDF(pages)
//
// [text]: github.com/mkuehn/vitae/pkg/render/text
// [canvas]: github.com/mkuehn/vitae/pkg/render/canvas
// [fusion]: github.com/mkuehn/vitae/pkg/render/fusion
// [page]: github.com/mkuehn/vitae/pkg/render/page
package render
