package text

import (
	"reflect"
	"testing"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ampersand", "M&A Advisory", "M&amp;A Advisory"},
		{"angle brackets", "a < b > c", "a &lt; b &gt; c"},
		{"quotes", `say "hi" y'all`, "say &quot;hi&quot; y&#39;all"},
		{"clean text", "nothing special", "nothing special"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Escape(tt.in); got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   []Span
	}{
		{
			name:   "plain",
			markup: "hello world",
			want:   []Span{{Text: "hello world"}},
		},
		{
			name:   "entities",
			markup: "&bull;&nbsp;Fish &amp; Chips",
			want:   []Span{{Text: "• Fish & Chips"}},
		},
		{
			name:   "colored span",
			markup: `a <span color="#B3B3B3">|</span> b`,
			want: []Span{
				{Text: "a "},
				{Text: "|", Color: "#B3B3B3"},
				{Text: " b"},
			},
		},
		{
			name:   "unknown tag dropped",
			markup: "x<font>y</font>z",
			want:   []Span{{Text: "xyz"}},
		},
		{
			name:   "unknown entity passes through",
			markup: "a&copy;b",
			want:   []Span{{Text: "a&copy;b"}},
		},
		{
			name:   "empty",
			markup: "",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.markup); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.markup, got, tt.want)
			}
		})
	}
}

func TestEscapeThenParseRoundTrip(t *testing.T) {
	raw := `P&L <owner> of "core"`
	got := PlainText(Escape(raw))
	if got != raw {
		t.Errorf("round trip = %q, want %q", got, raw)
	}
}

func TestSoftenPipes(t *testing.T) {
	got := SoftenPipes("a | b", "#B3B3B3")
	want := `a <span color="#B3B3B3">|</span> b`
	if got != want {
		t.Errorf("SoftenPipes() = %q, want %q", got, want)
	}

	spans := Parse(got)
	if len(spans) != 3 || spans[1].Color != "#B3B3B3" {
		t.Errorf("parsed spans = %#v", spans)
	}
}

func TestBullet(t *testing.T) {
	got := Bullet("Led M&A")
	if got != "&bull;&nbsp;Led M&amp;A" {
		t.Errorf("Bullet() = %q", got)
	}
	if PlainText(got) != "• Led M&A" {
		t.Errorf("PlainText(Bullet()) = %q", PlainText(got))
	}
}
