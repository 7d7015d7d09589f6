package fusion

import (
	"math"

	"github.com/mkuehn/vitae/pkg/render/canvas"
)

// Draw replays a computed layout onto c, translated by (x0, y0).
//
// Draw order matters: connectors and arrows go down first so box outlines
// paint over the curve endpoints, matching the intended z-order.
func Draw(c canvas.Canvas, l *Layout, cfg Config, x0, y0 float64) {
	c.SetStroke(cfg.Color, cfg.LineWidth)

	for _, conn := range l.Connectors {
		c.Bezier(
			x0+conn.Start.X, y0+conn.Start.Y,
			x0+conn.C1.X, y0+conn.C1.Y,
			x0+conn.C2.X, y0+conn.C2.Y,
			x0+conn.End.X, y0+conn.End.Y,
		)
	}
	for _, a := range l.Arrows {
		drawArrow(c, cfg, x0+a.Start.X, y0+a.Start.Y, x0+a.End.X, y0+a.End.Y)
	}

	for _, in := range l.Inputs {
		drawInput(c, cfg, in, x0, y0)
	}
	for _, out := range l.Outputs {
		drawOutput(c, cfg, out, x0, y0)
	}
}

func drawInput(c canvas.Canvas, cfg Config, in PlacedInput, x0, y0 float64) {
	b := in.Box
	c.RoundedRect(x0+b.X, y0+b.Y, b.W, b.H, cfg.InputCornerRadius)

	contentWidth := b.W - 2*cfg.InputPadding
	x := x0 + b.X + cfg.InputPadding
	y := y0 + b.Y + cfg.InputPadding

	labelH := c.Text(in.LabelMarkup, x, y, contentWidth, cfg.InputLabelStyle)
	if len(in.BulletMarkups) == 0 {
		return
	}

	cursor := y + labelH + cfg.InputBulletGap
	for _, markup := range in.BulletMarkups {
		h := c.Text(markup, x, cursor, contentWidth, cfg.InputBulletStyle)
		cursor += h + cfg.BulletSpacing
	}
}

func drawOutput(c canvas.Canvas, cfg Config, out PlacedOutput, x0, y0 float64) {
	b := out.Box
	c.RoundedRect(x0+b.X, y0+b.Y, b.W, b.H, cfg.OutputCornerRadius)

	labelWidth := b.W - 2*cfg.OutputLabelInset
	bulletWidth := b.W - cfg.OutputBulletInset - cfg.OutputLabelInset
	top := y0 + b.Y + cfg.OutputPaddingTop

	labelH := c.Text(out.LabelMarkup, x0+b.X+cfg.OutputLabelInset, top, labelWidth, cfg.OutputLabelStyle)

	cursor := top + labelH + cfg.OutputBulletGap
	for _, markup := range out.BulletMarkups {
		h := c.Text(markup, x0+b.X+cfg.OutputBulletInset, cursor, bulletWidth, cfg.OutputBulletStyle)
		cursor += h + cfg.BulletSpacing
	}
}

// drawArrow draws the junction→box segment and its open-V head: two strokes
// swept back from the tip at ±ArrowheadAngle from the segment direction.
func drawArrow(c canvas.Canvas, cfg Config, x1, y1, x2, y2 float64) {
	c.Line(x1, y1, x2, y2)

	angle := math.Atan2(y2-y1, x2-x1)
	size := cfg.ArrowheadSize
	for _, a := range []float64{angle + cfg.ArrowheadAngle, angle - cfg.ArrowheadAngle} {
		c.Line(x2, y2, x2-size*math.Cos(a), y2-size*math.Sin(a))
	}
}
