package fusion

import (
	"math"

	"github.com/mkuehn/vitae/pkg/fonts"
	"github.com/mkuehn/vitae/pkg/render/text"
)

// Config holds every geometry and style constant of the convergence diagram.
// All distances are in points. Passing the full configuration in, rather than
// reading package-level state, keeps the layout unit-testable with varied
// geometries.
type Config struct {
	// Width is the total diagram width (the page content width).
	Width float64

	// Input column.
	InputBoxWidth     float64 // fixed width of input boxes
	InputMinHeight    float64 // floor for input box height
	InputGap          float64 // vertical gap between input boxes
	InputPadding      float64 // inner padding of input boxes
	InputBulletGap    float64 // gap between input label and first bullet
	InputCornerRadius float64

	// Output column. The column occupies [OutputLeft, Width].
	OutputLeft          float64
	OutputMinHeight     float64 // floor for output box height
	OutputGap           float64 // vertical gap between output boxes
	OutputPaddingTop    float64
	OutputPaddingBottom float64
	OutputLabelInset    float64 // x inset of the label inside the box
	OutputBulletInset   float64 // x inset of bullets inside the box
	OutputBulletGap     float64 // gap between output label and first bullet
	OutputCornerRadius  float64

	BulletSpacing float64 // vertical spacing between consecutive bullets

	// Connector routing.
	JunctionOffset       float64 // junction line sits this far left of OutputLeft
	ArrowInset           float64 // arrow tip stops this far left of the output box
	ArrowheadSize        float64 // length of the two arrowhead strokes
	ArrowheadAngle       float64 // half-angle of the open-V arrowhead
	CurveControlFraction float64 // control-point offset as a fraction of the input→junction gap
	CurveMinOffset       float64 // floor for the control-point offset

	// Frame.
	TopPadding    float64
	BottomPadding float64

	// Stroke.
	Color     string
	LineWidth float64

	// Strict makes an output source that matches no input an error instead
	// of a silently skipped connector.
	Strict bool

	// Text styles.
	InputLabelStyle   text.Style
	InputBulletStyle  text.Style
	OutputLabelStyle  text.Style
	OutputBulletStyle text.Style
}

// DefaultAccent is the stroke and label color of the default theme.
const DefaultAccent = "#0F1C3F"

// DefaultConfig returns the diagram configuration for the given content
// width, using the canonical geometry of the executive CV layout.
func DefaultConfig(width float64) Config {
	return Config{
		Width: width,

		InputBoxWidth:     152,
		InputMinHeight:    32,
		InputGap:          22,
		InputPadding:      8,
		InputBulletGap:    6,
		InputCornerRadius: 6,

		OutputLeft:          152 + 110,
		OutputMinHeight:     38,
		OutputGap:           26,
		OutputPaddingTop:    8,
		OutputPaddingBottom: 8,
		OutputLabelInset:    8,
		OutputBulletInset:   12,
		OutputBulletGap:     6,
		OutputCornerRadius:  8,

		BulletSpacing: 3,

		JunctionOffset:       45,
		ArrowInset:           6,
		ArrowheadSize:        6,
		ArrowheadAngle:       math.Pi / 8,
		CurveControlFraction: 0.6,
		CurveMinOffset:       18,

		TopPadding:    8,
		BottomPadding: 8,

		Color:     DefaultAccent,
		LineWidth: 1.1,

		InputLabelStyle:   text.Style{Weight: fonts.SemiBold, Size: 10, Leading: 12, Color: DefaultAccent},
		InputBulletStyle:  text.Style{Weight: fonts.Regular, Size: 9, Leading: 11, Color: "#4A4A4A"},
		OutputLabelStyle:  text.Style{Weight: fonts.SemiBold, Size: 10.5, Leading: 13, Color: DefaultAccent},
		OutputBulletStyle: text.Style{Weight: fonts.Regular, Size: 9, Leading: 12, Color: "#1C1C1C"},
	}
}

// OutputBoxWidth returns the width of the output boxes.
func (c Config) OutputBoxWidth() float64 { return c.Width - c.OutputLeft }

// JunctionX returns the x-coordinate of the shared junction line where all
// curves entering an output converge.
func (c Config) JunctionX() float64 { return c.OutputLeft - c.JunctionOffset }

// InputRight returns the x-coordinate of the input boxes' right edge, the
// anchor from which connectors depart.
func (c Config) InputRight() float64 { return c.InputBoxWidth }
