package page

import (
	"github.com/mkuehn/vitae/pkg/render/canvas"
	"github.com/mkuehn/vitae/pkg/render/text"
)

// Point-unit page sizes.
const (
	A4Width  = 595.28
	A4Height = 841.89

	// Centimeter in points.
	CM = 28.3465
)

// Margins in points, clockwise from the top.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// DefaultMargins returns the executive layout margins (1.6cm vertical,
// 1.9cm horizontal).
func DefaultMargins() Margins {
	return Margins{Top: 1.6 * CM, Right: 1.9 * CM, Bottom: 1.6 * CM, Left: 1.9 * CM}
}

// Document paginates flowables onto fixed-size pages with a filled
// background.
type Document struct {
	Width, Height float64
	Margins       Margins
	Background    string
	Measurer      *text.Measurer
}

// NewDocument returns an A4 document with the default margins and page tint.
func NewDocument(m *text.Measurer) *Document {
	return &Document{
		Width:      A4Width,
		Height:     A4Height,
		Margins:    DefaultMargins(),
		Background: BackgroundTint,
		Measurer:   m,
	}
}

// ContentWidth returns the width available to flowables.
func (d *Document) ContentWidth() float64 {
	return d.Width - d.Margins.Left - d.Margins.Right
}

func (d *Document) contentHeight() float64 {
	return d.Height - d.Margins.Top - d.Margins.Bottom
}

// Paginate splits the flow into pages. A flowable that does not fit in the
// remaining space moves to the next page; one taller than a whole page is
// placed anyway and overflows. Spacers never open a page.
func (d *Document) Paginate(flow []Flowable) [][]Flowable {
	width := d.ContentWidth()
	limit := d.contentHeight()

	var pages [][]Flowable
	var current []Flowable
	used := 0.0

	for _, f := range flow {
		if _, isSpacer := f.(*Spacer); isSpacer && len(current) == 0 {
			continue
		}
		h := f.Height(width)
		if used+h > limit && len(current) > 0 {
			pages = append(pages, current)
			current = nil
			used = 0
			if _, isSpacer := f.(*Spacer); isSpacer {
				continue
			}
		}
		current = append(current, f)
		used += h
	}
	if len(current) > 0 {
		pages = append(pages, current)
	}
	if len(pages) == 0 {
		pages = [][]Flowable{nil}
	}
	return pages
}

// RenderSVG renders the flow and returns one SVG document per page.
func (d *Document) RenderSVG(flow []Flowable) [][]byte {
	width := d.ContentWidth()

	var out [][]byte
	for _, pageFlow := range d.Paginate(flow) {
		c := canvas.NewSVG(d.Width, d.Height, d.Measurer)
		d.drawPage(c, pageFlow, width)
		out = append(out, c.Bytes())
	}
	return out
}

// RenderPNG renders the flow and returns one PNG image per page, rasterized
// at the given scale factor.
func (d *Document) RenderPNG(flow []Flowable, scale float64) ([][]byte, error) {
	width := d.ContentWidth()

	var out [][]byte
	for _, pageFlow := range d.Paginate(flow) {
		c := canvas.NewRaster(d.Width, d.Height, scale, d.Measurer)
		d.drawPage(c, pageFlow, width)
		png, err := c.PNG()
		if err != nil {
			return nil, err
		}
		out = append(out, png)
	}
	return out, nil
}

func (d *Document) drawPage(c canvas.Canvas, flow []Flowable, width float64) {
	c.FillRect(0, 0, d.Width, d.Height, d.Background)
	y := d.Margins.Top
	for _, f := range flow {
		f.Draw(c, d.Margins.Left, y, width)
		y += f.Height(width)
	}
}
