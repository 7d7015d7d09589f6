// Package text provides markup composition and deterministic text
// measurement for CV rendering.
//
// Measurement is split from drawing so the layout stage can be tested
// without any rendering backend: given markup, a maximum width, and a
// Style, the Measurer computes the wrapped line set and its height using
// real glyph advances from the loaded typeface. Nothing here draws.
package text

import (
	"strings"
	"sync"

	"golang.org/x/image/font"

	"github.com/mkuehn/vitae/pkg/fonts"
)

// Style describes how a run of text is set.
type Style struct {
	Weight  fonts.Weight // face within the family
	Size    float64      // font size in points
	Leading float64      // line height in points
	Color   string       // default fill color (hex)
}

// Line is one wrapped line of styled text.
type Line struct {
	Spans []Span  // colored runs, in order
	Width float64 // advance width in points
}

// Measurer wraps markup to a width and reports the resulting height.
// It is safe for concurrent use; the underlying font faces are guarded by a
// mutex because truetype faces cache glyph data without locking.
type Measurer struct {
	family *fonts.Family
	mu     sync.Mutex
}

// NewMeasurer creates a Measurer over the given font family.
func NewMeasurer(family *fonts.Family) *Measurer {
	return &Measurer{family: family}
}

// Family returns the font family measurements are based on.
func (m *Measurer) Family() *fonts.Family { return m.family }

// Height returns the height in points that markup occupies when wrapped to
// width. Empty markup yields 0.
func (m *Measurer) Height(markup string, width float64, st Style) float64 {
	return float64(len(m.Wrap(markup, width, st))) * st.Leading
}

// Advance returns the advance width of plain text in the given style.
func (m *Measurer) Advance(s string, st Style) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.advanceLocked(s, st)
}

func (m *Measurer) advanceLocked(s string, st Style) float64 {
	face := m.family.Face(st.Weight, st.Size)
	return float64(font.MeasureString(face, s)) / 64
}

// token is a word or a breaking space produced by tokenize.
type token struct {
	text    string
	color   string
	isSpace bool
}

// tokenize splits spans into words and single breaking spaces. Non-breaking
// spaces stay inside their word, which is what keeps bullet glyphs glued to
// the first word of an item.
func tokenize(spans []Span) []token {
	var toks []token
	for _, sp := range spans {
		rest := sp.Text
		for rest != "" {
			if rest[0] == ' ' {
				toks = append(toks, token{text: " ", color: sp.Color, isSpace: true})
				rest = rest[1:]
				continue
			}
			cut := strings.IndexByte(rest, ' ')
			if cut < 0 {
				toks = append(toks, token{text: rest, color: sp.Color})
				rest = ""
			} else {
				toks = append(toks, token{text: rest[:cut], color: sp.Color})
				rest = rest[cut:]
			}
		}
	}
	return toks
}

// Wrap greedily breaks markup into lines no wider than width. A single word
// wider than the line is placed alone and allowed to overflow, matching the
// behavior of paragraph engines rather than erroring.
func (m *Measurer) Wrap(markup string, width float64, st Style) []Line {
	toks := tokenize(Parse(markup))
	if len(toks) == 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var lines []Line
	var cur Line
	var pendingSpace []token
	pendingWidth := 0.0

	appendSpan := func(l *Line, text, color string, w float64) {
		if n := len(l.Spans); n > 0 && l.Spans[n-1].Color == color {
			l.Spans[n-1].Text += text
		} else {
			l.Spans = append(l.Spans, Span{Text: text, Color: color})
		}
		l.Width += w
	}

	for _, tk := range toks {
		if tk.isSpace {
			// Leading spaces on an empty line are dropped.
			if len(cur.Spans) == 0 {
				continue
			}
			pendingSpace = append(pendingSpace, tk)
			pendingWidth += m.advanceLocked(tk.text, st)
			continue
		}

		w := m.advanceLocked(tk.text, st)
		if len(cur.Spans) > 0 && cur.Width+pendingWidth+w > width {
			lines = append(lines, cur)
			cur = Line{}
			pendingSpace = nil
			pendingWidth = 0
		}
		for _, sp := range pendingSpace {
			appendSpan(&cur, sp.text, sp.color, m.advanceLocked(sp.text, st))
		}
		pendingSpace = nil
		pendingWidth = 0
		appendSpan(&cur, tk.text, tk.color, w)
	}
	if len(cur.Spans) > 0 {
		lines = append(lines, cur)
	}
	return lines
}
