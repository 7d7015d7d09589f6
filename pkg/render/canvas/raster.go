package canvas

import (
	"bytes"

	"github.com/fogleman/gg"

	"github.com/mkuehn/vitae/pkg/render/text"
)

// Raster renders draw calls into a bitmap via fogleman/gg. Coordinates stay
// in points; scale controls the pixel density of the output (2.0 doubles the
// resolution without changing layout units).
type Raster struct {
	dc          *gg.Context
	m           *text.Measurer
	stroke      string
	strokeWidth float64
}

// NewRaster creates a raster canvas of the given size in points, with a white
// default background left to the caller (use FillRect for page backgrounds).
func NewRaster(width, height, scale float64, m *text.Measurer) *Raster {
	dc := gg.NewContext(int(width*scale+0.5), int(height*scale+0.5))
	dc.Scale(scale, scale)
	return &Raster{dc: dc, m: m, stroke: "#000000", strokeWidth: 1}
}

// SetStroke sets the stroke color and width for subsequent strokes.
func (r *Raster) SetStroke(color string, width float64) {
	r.stroke = color
	r.strokeWidth = width
}

// FillRect fills a rectangle.
func (r *Raster) FillRect(x, y, w, h float64, color string) {
	r.dc.SetHexColor(color)
	r.dc.DrawRectangle(x, y, w, h)
	r.dc.Fill()
}

// RoundedRect strokes a rounded rectangle.
func (r *Raster) RoundedRect(x, y, w, h, rad float64) {
	r.dc.SetHexColor(r.stroke)
	r.dc.SetLineWidth(r.strokeWidth)
	r.dc.DrawRoundedRectangle(x, y, w, h, rad)
	r.dc.Stroke()
}

// Line draws a stroked segment.
func (r *Raster) Line(x1, y1, x2, y2 float64) {
	r.dc.SetHexColor(r.stroke)
	r.dc.SetLineWidth(r.strokeWidth)
	r.dc.DrawLine(x1, y1, x2, y2)
	r.dc.Stroke()
}

// Bezier draws a stroked cubic curve.
func (r *Raster) Bezier(x1, y1, cx1, cy1, cx2, cy2, x2, y2 float64) {
	r.dc.SetHexColor(r.stroke)
	r.dc.SetLineWidth(r.strokeWidth)
	r.dc.MoveTo(x1, y1)
	r.dc.CubicTo(cx1, cy1, cx2, cy2, x2, y2)
	r.dc.Stroke()
}

// Text draws wrapped markup top-anchored at (x, y) and returns its height.
func (r *Raster) Text(markup string, x, y, width float64, st text.Style) float64 {
	lines := r.m.Wrap(markup, width, st)
	if len(lines) == 0 {
		return 0
	}

	family := r.m.Family()
	face := family.Face(st.Weight, st.Size)
	ascent := float64(face.Metrics().Ascent) / 64
	r.dc.SetFontFace(face)

	for i, line := range lines {
		baseline := y + float64(i)*st.Leading + ascent
		cx := x
		for _, sp := range line.Spans {
			color := st.Color
			if sp.Color != "" {
				color = sp.Color
			}
			r.dc.SetHexColor(color)
			r.dc.DrawString(sp.Text, cx, baseline)
			cx += r.m.Advance(sp.Text, st)
		}
	}
	return float64(len(lines)) * st.Leading
}

// PNG encodes the canvas as a PNG image.
func (r *Raster) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
