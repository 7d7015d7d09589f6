package fusion

import (
	"math"
	"testing"

	"github.com/mkuehn/vitae/pkg/errors"
	"github.com/mkuehn/vitae/pkg/render/text"
)

// stubMeasure is a deterministic stand-in for the text measurer: it wraps by
// character count at half the font size per glyph. Good enough to exercise
// the layout math without loading fonts.
func stubMeasure(markup string, width float64, st text.Style) float64 {
	plain := text.PlainText(markup)
	if plain == "" || width <= 0 {
		return 0
	}
	perLine := int(width / (st.Size * 0.5))
	if perLine < 1 {
		perLine = 1
	}
	n := len([]rune(plain))
	lines := (n + perLine - 1) / perLine
	return float64(lines) * st.Leading
}

func testConfig() Config {
	return DefaultConfig(500)
}

func TestNormalizeInputs(t *testing.T) {
	nodes := NormalizeInputs([]InputNode{
		{Label: "Consulting"},
		{Label: "Operations", Key: "ops", Badge: "B"},
		{Label: "Finance"},
	})

	if nodes[0].Key != "Consulting" {
		t.Errorf("nodes[0].Key = %q, want label fallback", nodes[0].Key)
	}
	if nodes[0].Badge != "1" || nodes[2].Badge != "3" {
		t.Errorf("ordinal badges = %q, %q, want 1 and 3", nodes[0].Badge, nodes[2].Badge)
	}
	if nodes[1].Key != "ops" || nodes[1].Badge != "B" {
		t.Errorf("explicit key/badge overwritten: %+v", nodes[1])
	}
}

func TestColumnHeightSums(t *testing.T) {
	heights := []float64{40, 32, 55}
	got := columnHeight(len(heights), 22, func(i int) float64 { return heights[i] })
	want := 40 + 32 + 55 + 2*22.0
	if got != want {
		t.Errorf("columnHeight() = %v, want %v", got, want)
	}

	if got := columnHeight(0, 22, nil); got != 0 {
		t.Errorf("columnHeight(empty) = %v, want 0", got)
	}
}

func TestEmptyDiagram(t *testing.T) {
	cfg := testConfig()
	l, err := Compute(nil, nil, cfg, stubMeasure)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if l.Height != cfg.TopPadding+cfg.BottomPadding {
		t.Errorf("Height = %v, want padding only", l.Height)
	}
	if len(l.Inputs) != 0 || len(l.Outputs) != 0 || len(l.Connectors) != 0 || len(l.Arrows) != 0 {
		t.Errorf("empty diagram produced elements: %+v", l)
	}
}

func TestDiagramHeightIsTallerColumnPlusPadding(t *testing.T) {
	cfg := testConfig()
	inputs := []InputNode{{Label: "A"}, {Label: "B"}, {Label: "C"}}
	outputs := []OutputNode{{Label: "Focus"}}

	l, err := Compute(inputs, outputs, cfg, stubMeasure)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	inTotal := 0.0
	for _, in := range l.Inputs {
		inTotal += in.Box.H
	}
	inTotal += cfg.InputGap * float64(len(l.Inputs)-1)

	outTotal := l.Outputs[0].Box.H

	want := math.Max(inTotal, outTotal) + cfg.TopPadding + cfg.BottomPadding
	if l.Height != want {
		t.Errorf("Height = %v, want %v", l.Height, want)
	}
}

// centerOfColumn returns the midpoint between the first box's top and the
// last box's bottom.
func centerOfColumn(first, last Box) float64 {
	return (first.Y + last.Y + last.H) / 2
}

func TestShorterColumnIsCentered(t *testing.T) {
	cfg := testConfig()

	t.Run("one input, three outputs", func(t *testing.T) {
		l, err := Compute(
			[]InputNode{{Label: "Solo"}},
			[]OutputNode{{Label: "X"}, {Label: "Y"}, {Label: "Z"}},
			cfg, stubMeasure)
		if err != nil {
			t.Fatalf("Compute() error: %v", err)
		}

		inCenter := centerOfColumn(l.Inputs[0].Box, l.Inputs[0].Box)
		outCenter := centerOfColumn(l.Outputs[0].Box, l.Outputs[2].Box)
		if math.Abs(inCenter-outCenter) > 1e-9 {
			t.Errorf("input column center %v != output column center %v", inCenter, outCenter)
		}
	})

	t.Run("three inputs, one output", func(t *testing.T) {
		l, err := Compute(
			[]InputNode{{Label: "A"}, {Label: "B"}, {Label: "C"}},
			[]OutputNode{{Label: "Merged"}},
			cfg, stubMeasure)
		if err != nil {
			t.Fatalf("Compute() error: %v", err)
		}

		inCenter := centerOfColumn(l.Inputs[0].Box, l.Inputs[2].Box)
		outCenter := centerOfColumn(l.Outputs[0].Box, l.Outputs[0].Box)
		if math.Abs(inCenter-outCenter) > 1e-9 {
			t.Errorf("input column center %v != output column center %v", inCenter, outCenter)
		}
	})
}

func TestNoVerticalOverlapAndOrderPreserved(t *testing.T) {
	cfg := testConfig()
	inputs := []InputNode{
		{Label: "First", Bullets: []string{"a long bullet point that wraps a few times over"}},
		{Label: "Second"},
		{Label: "Third", Bullets: []string{"x", "y", "z"}},
	}

	l, err := Compute(inputs, nil, cfg, stubMeasure)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	for i := 1; i < len(l.Inputs); i++ {
		prev, cur := l.Inputs[i-1].Box, l.Inputs[i].Box
		if cur.Y < prev.Y+prev.H {
			t.Errorf("box %d (y=%v) overlaps box %d (bottom=%v)", i, cur.Y, i-1, prev.Y+prev.H)
		}
		if got := cur.Y - (prev.Y + prev.H); math.Abs(got-cfg.InputGap) > 1e-9 {
			t.Errorf("gap between boxes %d and %d = %v, want %v", i-1, i, got, cfg.InputGap)
		}
	}
	for i, in := range l.Inputs {
		if in.Label != inputs[i].Label {
			t.Errorf("order not preserved: position %d has %q", i, in.Label)
		}
	}
}

func TestMinimumBoxHeights(t *testing.T) {
	cfg := testConfig()
	l, err := Compute(
		[]InputNode{{Label: "Hi"}},
		[]OutputNode{{Label: "Yo"}},
		cfg, stubMeasure)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	if l.Inputs[0].Box.H != cfg.InputMinHeight {
		t.Errorf("input height = %v, want floor %v", l.Inputs[0].Box.H, cfg.InputMinHeight)
	}
	if l.Outputs[0].Box.H != cfg.OutputMinHeight {
		t.Errorf("output height = %v, want floor %v", l.Outputs[0].Box.H, cfg.OutputMinHeight)
	}
}

func TestConnectorMatching(t *testing.T) {
	cfg := testConfig()
	inputs := []InputNode{{Label: "Consulting", Key: "consult"}}

	tests := []struct {
		name          string
		source        string
		wantCurves    int
		wantUnmatched int
	}{
		{"match by key", "consult", 1, 0},
		{"match by label", "Consulting", 1, 0},
		{"no match silently skipped", "Banking", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Compute(inputs,
				[]OutputNode{{Label: "Out", Sources: []string{tt.source}}},
				cfg, stubMeasure)
			if err != nil {
				t.Fatalf("Compute() error: %v", err)
			}
			if len(l.Connectors) != tt.wantCurves {
				t.Errorf("connectors = %d, want %d", len(l.Connectors), tt.wantCurves)
			}
			if len(l.Unmatched) != tt.wantUnmatched {
				t.Errorf("unmatched = %v, want %d entries", l.Unmatched, tt.wantUnmatched)
			}
			// The junction arrow is drawn per output regardless of matches.
			if len(l.Arrows) != 1 {
				t.Errorf("arrows = %d, want 1", len(l.Arrows))
			}
		})
	}
}

func TestStrictModeRejectsUnmatched(t *testing.T) {
	cfg := testConfig()
	cfg.Strict = true

	_, err := Compute(
		[]InputNode{{Label: "A"}},
		[]OutputNode{{Label: "Out", Sources: []string{"A", "Missing"}}},
		cfg, stubMeasure)
	if err == nil {
		t.Fatal("Compute() error = nil, want UNMATCHED_SOURCE")
	}
	if !errors.Is(err, errors.ErrCodeUnmatchedSource) {
		t.Errorf("error code = %v, want UNMATCHED_SOURCE", errors.GetCode(err))
	}
}

func TestCurveGeometry(t *testing.T) {
	cfg := testConfig()
	l, err := Compute(
		[]InputNode{{Label: "A"}},
		[]OutputNode{{Label: "Out", Sources: []string{"A"}}},
		cfg, stubMeasure)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if len(l.Connectors) != 1 {
		t.Fatalf("connectors = %d, want 1", len(l.Connectors))
	}

	conn := l.Connectors[0]
	if conn.Start.X != cfg.InputRight() {
		t.Errorf("curve starts at x=%v, want input right edge %v", conn.Start.X, cfg.InputRight())
	}
	if conn.End.X != cfg.JunctionX() {
		t.Errorf("curve ends at x=%v, want junction %v", conn.End.X, cfg.JunctionX())
	}

	// The S-curve departs and arrives horizontally.
	if conn.C1.Y != conn.Start.Y || conn.C2.Y != conn.End.Y {
		t.Errorf("control points not horizontal: %+v", conn)
	}

	wantCtrl := (cfg.JunctionX() - cfg.InputRight()) * cfg.CurveControlFraction
	if wantCtrl < cfg.CurveMinOffset {
		wantCtrl = cfg.CurveMinOffset
	}
	if got := conn.C1.X - conn.Start.X; math.Abs(got-wantCtrl) > 1e-9 {
		t.Errorf("control offset = %v, want %v", got, wantCtrl)
	}
}

func TestCurveControlOffsetFloor(t *testing.T) {
	cfg := testConfig()
	// Squeeze the columns together so the fractional offset drops below the floor.
	cfg.OutputLeft = cfg.InputBoxWidth + cfg.JunctionOffset + 10

	l, err := Compute(
		[]InputNode{{Label: "A"}},
		[]OutputNode{{Label: "Out", Sources: []string{"A"}}},
		cfg, stubMeasure)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	conn := l.Connectors[0]
	if got := conn.C1.X - conn.Start.X; got != cfg.CurveMinOffset {
		t.Errorf("control offset = %v, want clamped floor %v", got, cfg.CurveMinOffset)
	}
}

func TestMergingArrowsEndToEnd(t *testing.T) {
	cfg := testConfig()
	inputs := []InputNode{
		{Label: "A", Bullets: []string{"one supporting detail"}},
		{Label: "B"},
	}
	outputs := []OutputNode{
		{Label: "Synthesis", Sources: []string{"A", "B"}, Bullets: []string{"first", "second"}},
	}

	l, err := Compute(inputs, outputs, cfg, stubMeasure)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	if len(l.Connectors) != 2 {
		t.Fatalf("connectors = %d, want 2", len(l.Connectors))
	}

	outCenter := l.Outputs[0].Box.CenterY()
	for i, conn := range l.Connectors {
		if conn.End.Y != outCenter {
			t.Errorf("connector %d ends at y=%v, want output center %v", i, conn.End.Y, outCenter)
		}
		if conn.End.X != cfg.JunctionX() {
			t.Errorf("connector %d ends at x=%v, want junction %v", i, conn.End.X, cfg.JunctionX())
		}
	}

	// Output box height respects both the floor and its content.
	out := l.Outputs[0]
	if out.Box.H < cfg.OutputMinHeight {
		t.Errorf("output height %v below floor %v", out.Box.H, cfg.OutputMinHeight)
	}
	labelH := stubMeasure(out.LabelMarkup, cfg.OutputBoxWidth()-2*cfg.OutputLabelInset, cfg.OutputLabelStyle)
	bulletW := cfg.OutputBoxWidth() - cfg.OutputBulletInset - cfg.OutputLabelInset
	bulletsH := 0.0
	for _, m := range out.BulletMarkups {
		bulletsH += stubMeasure(m, bulletW, cfg.OutputBulletStyle)
	}
	bulletsH += cfg.BulletSpacing
	minContent := cfg.OutputPaddingTop + labelH + cfg.OutputBulletGap + bulletsH + cfg.OutputPaddingBottom
	if out.Box.H < minContent {
		t.Errorf("output height %v below content height %v", out.Box.H, minContent)
	}
}

func TestEscapedLabelsMeasureCleanly(t *testing.T) {
	cfg := testConfig()
	l, err := Compute(
		[]InputNode{{Label: `M&A <lead> "integration"`}},
		[]OutputNode{{Label: "Growth & Scale", Sources: []string{`M&A <lead> "integration"`}}},
		cfg, stubMeasure)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	if l.Inputs[0].Box.H <= 0 {
		t.Error("escaped input label measured to zero height")
	}
	if len(l.Connectors) != 1 {
		t.Errorf("connectors = %d, want 1 (label with specials still matches)", len(l.Connectors))
	}
}
