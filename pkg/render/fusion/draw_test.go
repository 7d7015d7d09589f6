package fusion

import (
	"testing"

	"github.com/mkuehn/vitae/pkg/render/text"
)

// recordingCanvas captures draw calls in order for z-order assertions.
type recordingCanvas struct {
	ops     []string
	lines   int
	beziers int
	rects   int
	texts   []string
}

func (r *recordingCanvas) SetStroke(color string, width float64) {
	r.ops = append(r.ops, "stroke")
}

func (r *recordingCanvas) Line(x1, y1, x2, y2 float64) {
	r.ops = append(r.ops, "line")
	r.lines++
}

func (r *recordingCanvas) Bezier(x1, y1, cx1, cy1, cx2, cy2, x2, y2 float64) {
	r.ops = append(r.ops, "bezier")
	r.beziers++
}

func (r *recordingCanvas) RoundedRect(x, y, w, h, rad float64) {
	r.ops = append(r.ops, "rect")
	r.rects++
}

func (r *recordingCanvas) FillRect(x, y, w, h float64, color string) {
	r.ops = append(r.ops, "fill")
}

func (r *recordingCanvas) Text(markup string, x, y, width float64, st text.Style) float64 {
	r.ops = append(r.ops, "text")
	r.texts = append(r.texts, markup)
	return st.Leading
}

func TestDrawElementCounts(t *testing.T) {
	cfg := testConfig()
	l, err := Compute(
		[]InputNode{
			{Label: "A", Bullets: []string{"detail"}},
			{Label: "B"},
		},
		[]OutputNode{{Label: "Out", Sources: []string{"A", "B"}}},
		cfg, stubMeasure)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	rec := &recordingCanvas{}
	Draw(rec, l, cfg, 0, 0)

	if rec.rects != 3 {
		t.Errorf("rects = %d, want 3 (2 inputs + 1 output)", rec.rects)
	}
	if rec.beziers != 2 {
		t.Errorf("beziers = %d, want 2", rec.beziers)
	}
	// One arrow: shaft plus two arrowhead strokes.
	if rec.lines != 3 {
		t.Errorf("lines = %d, want 3", rec.lines)
	}
}

func TestDrawZOrdersBoxesOverCurves(t *testing.T) {
	cfg := testConfig()
	l, err := Compute(
		[]InputNode{{Label: "A"}},
		[]OutputNode{{Label: "Out", Sources: []string{"A"}}},
		cfg, stubMeasure)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	rec := &recordingCanvas{}
	Draw(rec, l, cfg, 0, 0)

	lastCurve, firstRect := -1, -1
	for i, op := range rec.ops {
		switch op {
		case "bezier", "line":
			lastCurve = i
		case "rect":
			if firstRect == -1 {
				firstRect = i
			}
		}
	}
	if firstRect < lastCurve {
		t.Errorf("box drawn at op %d before curve at op %d; boxes must paint over curves", firstRect, lastCurve)
	}
}

func TestDrawEmitsBadgedLabelsAndBullets(t *testing.T) {
	cfg := testConfig()
	l, err := Compute(
		[]InputNode{{Label: "Strategy", Bullets: []string{"growth"}}},
		[]OutputNode{{Label: "Leadership"}},
		cfg, stubMeasure)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	rec := &recordingCanvas{}
	Draw(rec, l, cfg, 0, 0)

	want := []string{"1. Strategy", text.Bullet("growth"), "Leadership"}
	if len(rec.texts) != len(want) {
		t.Fatalf("texts = %v, want %d entries", rec.texts, len(want))
	}
	for i, w := range want {
		if rec.texts[i] != w {
			t.Errorf("texts[%d] = %q, want %q", i, rec.texts[i], w)
		}
	}
}
