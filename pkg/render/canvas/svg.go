package canvas

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/mkuehn/vitae/pkg/render/text"
)

// SVG renders draw calls into an SVG document. Create one per page with
// NewSVG, issue draw calls, then take the result with Bytes.
type SVG struct {
	buf         bytes.Buffer
	m           *text.Measurer
	width       float64
	height      float64
	stroke      string
	strokeWidth float64
	closed      bool
}

// NewSVG creates an SVG canvas of the given size in points.
func NewSVG(width, height float64, m *text.Measurer) *SVG {
	s := &SVG{m: m, width: width, height: height, stroke: "#000000", strokeWidth: 1}
	fmt.Fprintf(&s.buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	return s
}

// SetStroke sets the stroke color and width for subsequent strokes.
func (s *SVG) SetStroke(color string, width float64) {
	s.stroke = color
	s.strokeWidth = width
}

// FillRect fills a rectangle without stroking it.
func (s *SVG) FillRect(x, y, w, h float64, color string) {
	fmt.Fprintf(&s.buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
		x, y, w, h, color)
}

// RoundedRect strokes a rounded rectangle.
func (s *SVG) RoundedRect(x, y, w, h, r float64) {
	fmt.Fprintf(&s.buf,
		`  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" fill="none" stroke="%s" stroke-width="%.2f"/>`+"\n",
		x, y, w, h, r, s.stroke, s.strokeWidth)
}

// Line draws a stroked segment.
func (s *SVG) Line(x1, y1, x2, y2 float64) {
	fmt.Fprintf(&s.buf,
		`  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f" stroke-linecap="round"/>`+"\n",
		x1, y1, x2, y2, s.stroke, s.strokeWidth)
}

// Bezier draws a stroked cubic curve.
func (s *SVG) Bezier(x1, y1, cx1, cy1, cx2, cy2, x2, y2 float64) {
	fmt.Fprintf(&s.buf,
		`  <path d="M %.2f %.2f C %.2f %.2f, %.2f %.2f, %.2f %.2f" fill="none" stroke="%s" stroke-width="%.2f"/>`+"\n",
		x1, y1, cx1, cy1, cx2, cy2, x2, y2, s.stroke, s.strokeWidth)
}

// Text draws wrapped markup top-anchored at (x, y) and returns its height.
func (s *SVG) Text(markup string, x, y, width float64, st text.Style) float64 {
	lines := s.m.Wrap(markup, width, st)
	if len(lines) == 0 {
		return 0
	}

	family := s.m.Family()
	face := family.Face(st.Weight, st.Size)
	ascent := float64(face.Metrics().Ascent) / 64

	for i, line := range lines {
		baseline := y + float64(i)*st.Leading + ascent
		fmt.Fprintf(&s.buf, `  <text x="%.2f" y="%.2f" font-family="%s" font-size="%.2f" fill="%s">`,
			x, baseline, family.FaceName(st.Weight), st.Size, st.Color)
		for _, sp := range line.Spans {
			if sp.Color != "" && sp.Color != st.Color {
				fmt.Fprintf(&s.buf, `<tspan fill="%s">%s</tspan>`, sp.Color, escapeXML(sp.Text))
			} else {
				s.buf.WriteString(escapeXML(sp.Text))
			}
		}
		s.buf.WriteString("</text>\n")
	}
	return float64(len(lines)) * st.Leading
}

// Bytes finalizes the document and returns the SVG markup.
// Further draw calls after Bytes are lost.
func (s *SVG) Bytes() []byte {
	if !s.closed {
		s.buf.WriteString("</svg>\n")
		s.closed = true
	}
	return s.buf.Bytes()
}

func escapeXML(v string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(v))
	return buf.String()
}
