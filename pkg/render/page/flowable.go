package page

import (
	"github.com/mkuehn/vitae/pkg/render/canvas"
	"github.com/mkuehn/vitae/pkg/render/fusion"
	"github.com/mkuehn/vitae/pkg/render/text"
)

// Flowable is a block of content that flows down the page. Height must be
// deterministic and must agree with what Draw consumes; the Document relies
// on it for page-break decisions.
type Flowable interface {
	Height(width float64) float64
	Draw(c canvas.Canvas, x, y, width float64)
}

// Alignment of a paragraph within its column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
)

// Paragraph is wrapped markup in one style.
type Paragraph struct {
	M          *text.Measurer
	Markup     string
	Style      text.Style
	Align      Alignment
	SpaceAfter float64
}

func (p *Paragraph) Height(width float64) float64 {
	return p.M.Height(p.Markup, width, p.Style) + p.SpaceAfter
}

func (p *Paragraph) Draw(c canvas.Canvas, x, y, width float64) {
	if p.Align == AlignLeft {
		c.Text(p.Markup, x, y, width, p.Style)
		return
	}

	// Centered: wrap here and place each line at its own x offset. The
	// per-line width passed to the canvas is generous so it never re-wraps.
	for _, line := range p.M.Wrap(p.Markup, width, p.Style) {
		c.Text(text.SpanMarkup(line.Spans), x+(width-line.Width)/2, y, width*2, p.Style)
		y += p.Style.Leading
	}
}

// Spacer is fixed vertical whitespace. Spacers at the top of a fresh page
// are dropped by the Document.
type Spacer struct {
	H float64
}

func (s *Spacer) Height(width float64) float64          { return s.H }
func (s *Spacer) Draw(canvas.Canvas, float64, float64, float64) {}

// Rule is a full-width horizontal line.
type Rule struct {
	Thickness float64
	Color     string
}

func (r *Rule) Height(width float64) float64 { return r.Thickness }

func (r *Rule) Draw(c canvas.Canvas, x, y, width float64) {
	c.SetStroke(r.Color, r.Thickness)
	c.Line(x, y+r.Thickness/2, x+width, y+r.Thickness/2)
}

// BulletList renders items as an indented list with a leading bullet glyph
// glued to the first word.
type BulletList struct {
	M           *text.Measurer
	Items       []string
	Style       text.Style
	Indent      float64
	ItemSpacing float64
}

func (b *BulletList) Height(width float64) float64 {
	itemWidth := width - b.Indent
	total := 0.0
	for _, item := range b.Items {
		total += b.M.Height(text.Bullet(item), itemWidth, b.Style)
	}
	if n := len(b.Items); n > 1 {
		total += b.ItemSpacing * float64(n-1)
	}
	return total
}

func (b *BulletList) Draw(c canvas.Canvas, x, y, width float64) {
	itemWidth := width - b.Indent
	for _, item := range b.Items {
		h := c.Text(text.Bullet(item), x+b.Indent, y, itemWidth, b.Style)
		y += h + b.ItemSpacing
	}
}

// Cell padding of a Table, uniform across cells.
type CellPadding struct {
	Left, Right, Top, Bottom float64
}

// Table lays flowables out in fixed-width columns. Row height is the tallest
// cell in the row plus vertical padding. No grid is drawn.
type Table struct {
	Rows      [][]Flowable
	ColWidths []float64
	Padding   CellPadding
}

func (t *Table) cellWidth(col int) float64 {
	return t.ColWidths[col] - t.Padding.Left - t.Padding.Right
}

func (t *Table) rowHeight(row []Flowable) float64 {
	h := 0.0
	for col, cell := range row {
		if cell == nil {
			continue
		}
		if ch := cell.Height(t.cellWidth(col)); ch > h {
			h = ch
		}
	}
	return h + t.Padding.Top + t.Padding.Bottom
}

func (t *Table) Height(width float64) float64 {
	total := 0.0
	for _, row := range t.Rows {
		total += t.rowHeight(row)
	}
	return total
}

func (t *Table) Draw(c canvas.Canvas, x, y, width float64) {
	for _, row := range t.Rows {
		cx := x
		for col, cell := range row {
			if cell != nil {
				cell.Draw(c, cx+t.Padding.Left, y+t.Padding.Top, t.cellWidth(col))
			}
			cx += t.ColWidths[col]
		}
		y += t.rowHeight(row)
	}
}

// Group stacks flowables as one unit, used for composite table cells.
type Group struct {
	Items []Flowable
}

func (g *Group) Height(width float64) float64 {
	total := 0.0
	for _, f := range g.Items {
		total += f.Height(width)
	}
	return total
}

func (g *Group) Draw(c canvas.Canvas, x, y, width float64) {
	for _, f := range g.Items {
		f.Draw(c, x, y, width)
		y += f.Height(width)
	}
}

// Diagram wraps a computed fusion layout as a flowable.
type Diagram struct {
	Layout *fusion.Layout
	Config fusion.Config
}

func (d *Diagram) Height(width float64) float64 { return d.Layout.Height }

func (d *Diagram) Draw(c canvas.Canvas, x, y, width float64) {
	fusion.Draw(c, d.Layout, d.Config, x, y)
}
