package fusion

import (
	"strings"

	"github.com/mkuehn/vitae/pkg/errors"
)

// Point is a position in diagram coordinates (origin top-left, y down).
type Point struct {
	X, Y float64
}

// Box is an axis-aligned rectangle identified by its top-left corner.
type Box struct {
	X, Y, W, H float64
}

// CenterY returns the vertical center of the box.
func (b Box) CenterY() float64 { return b.Y + b.H/2 }

// Right returns the x-coordinate of the box's right edge.
func (b Box) Right() float64 { return b.X + b.W }

// PlacedInput is a measured input node with its box position fixed.
type PlacedInput struct {
	MeasuredInput
	Box Box
}

// PlacedOutput is a measured output node with its box position fixed.
type PlacedOutput struct {
	MeasuredOutput
	Box Box
}

// Connector is the cubic curve from an input's right-edge anchor to an
// output's junction point.
type Connector struct {
	Start, C1, C2, End Point
}

// Arrow is the straight arrowheaded segment from the junction line to the
// output box's left edge.
type Arrow struct {
	Start, End Point
}

// Layout is the fully computed diagram: positioned boxes, routed connectors,
// and total extent. It contains no drawing state.
type Layout struct {
	Width, Height float64
	Inputs        []PlacedInput
	Outputs       []PlacedOutput
	Connectors    []Connector
	Arrows        []Arrow

	// Unmatched lists output source references that matched no input key or
	// label. In non-strict mode these are skipped, not errors, but callers
	// should surface them as warnings: they are almost always authoring
	// mistakes in the source data.
	Unmatched []string
}

// Compute measures and positions the diagram. Inputs are normalized first
// (key and badge defaults), so callers may pass raw nodes.
//
// In strict mode an unmatched source reference yields an UNMATCHED_SOURCE
// error; otherwise the offending connector is skipped and recorded in
// Layout.Unmatched.
func Compute(inputs []InputNode, outputs []OutputNode, cfg Config, measure MeasureFunc) (*Layout, error) {
	mi := measureInputs(NormalizeInputs(inputs), cfg, measure)
	mo := measureOutputs(outputs, cfg, measure)

	inTotal := columnHeight(len(mi), cfg.InputGap, func(i int) float64 { return mi[i].Height })
	outTotal := columnHeight(len(mo), cfg.OutputGap, func(i int) float64 { return mo[i].Height })

	diagram := inTotal
	if outTotal > diagram {
		diagram = outTotal
	}

	l := &Layout{
		Width:  cfg.Width,
		Height: cfg.TopPadding + diagram + cfg.BottomPadding,
	}

	// Stack each column from its centered top offset.
	y := cfg.TopPadding + (diagram-inTotal)/2
	for _, m := range mi {
		l.Inputs = append(l.Inputs, PlacedInput{
			MeasuredInput: m,
			Box:           Box{X: 0, Y: y, W: cfg.InputBoxWidth, H: m.Height},
		})
		y += m.Height + cfg.InputGap
	}

	y = cfg.TopPadding + (diagram-outTotal)/2
	for _, m := range mo {
		l.Outputs = append(l.Outputs, PlacedOutput{
			MeasuredOutput: m,
			Box:            Box{X: cfg.OutputLeft, Y: y, W: cfg.OutputBoxWidth(), H: m.Height},
		})
		y += m.Height + cfg.OutputGap
	}

	if err := l.route(cfg); err != nil {
		return nil, err
	}
	return l, nil
}

// columnHeight is the stacked height of a column: the sum of node heights
// plus one gap between each adjacent pair. An empty column has height 0.
func columnHeight(n int, gap float64, height func(int) float64) float64 {
	if n == 0 {
		return 0
	}
	total := gap * float64(n-1)
	for i := 0; i < n; i++ {
		total += height(i)
	}
	return total
}

// route computes connectors and arrows. Anchors are keyed by both the
// input's key and its label; a source string must match one exactly.
func (l *Layout) route(cfg Config) error {
	anchors := make(map[string]Point, 2*len(l.Inputs))
	for _, in := range l.Inputs {
		p := Point{X: in.Box.Right(), Y: in.Box.CenterY()}
		if in.Key != "" {
			anchors[in.Key] = p
		}
		if in.Label != "" {
			anchors[in.Label] = p
		}
	}

	junctionX := cfg.JunctionX()
	ctrl := (junctionX - cfg.InputRight()) * cfg.CurveControlFraction
	if ctrl < cfg.CurveMinOffset {
		ctrl = cfg.CurveMinOffset
	}

	for _, out := range l.Outputs {
		end := Point{X: junctionX, Y: out.Box.CenterY()}
		for _, src := range out.Sources {
			start, ok := anchors[src]
			if !ok {
				l.Unmatched = append(l.Unmatched, src)
				continue
			}
			l.Connectors = append(l.Connectors, Connector{
				Start: start,
				C1:    Point{X: start.X + ctrl, Y: start.Y},
				C2:    Point{X: end.X - ctrl, Y: end.Y},
				End:   end,
			})
		}
		l.Arrows = append(l.Arrows, Arrow{
			Start: end,
			End:   Point{X: cfg.OutputLeft - cfg.ArrowInset, Y: end.Y},
		})
	}

	if cfg.Strict && len(l.Unmatched) > 0 {
		return errors.New(errors.ErrCodeUnmatchedSource,
			"no input matches source reference(s): %s", strings.Join(l.Unmatched, ", "))
	}
	return nil
}
