package text

import "strings"

// Span is a run of text with a uniform color. An empty Color means the
// enclosing style's color applies.
type Span struct {
	Text  string
	Color string
}

// Escape replaces markup-reserved characters so raw data can be embedded in
// markup strings. Labels routinely contain '&' (e.g. "M&A"), so skipping this
// step corrupts everything drawn after the label.
func Escape(s string) string {
	return markupEscaper.Replace(s)
}

var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// SoftenPipes wraps every '|' in an already-escaped markup string in a muted
// color span. Used for tagline and contact separators.
func SoftenPipes(markup, color string) string {
	return strings.ReplaceAll(markup, "|", `<span color="`+color+`">|</span>`)
}

// Bullet prefixes escaped text with a bullet glyph and a non-breaking space,
// so the marker never wraps away from the first word.
func Bullet(raw string) string {
	return "&bull;&nbsp;" + Escape(raw)
}

// entities maps supported markup entities to their replacement runes.
var entities = map[string]string{
	"&amp;":  "&",
	"&lt;":   "<",
	"&gt;":   ">",
	"&quot;": `"`,
	"&#39;":  "'",
	"&nbsp;": " ",
	"&bull;": "•",
}

// Parse decomposes a markup string into colored spans. Supported syntax is a
// flat (non-nested) <span color="#rrggbb">...</span> element and the entities
// listed above. Unknown tags are dropped, unknown entities pass through
// verbatim.
func Parse(markup string) []Span {
	var spans []Span
	var cur strings.Builder
	color := ""

	flush := func() {
		if cur.Len() > 0 {
			spans = append(spans, Span{Text: cur.String(), Color: color})
			cur.Reset()
		}
	}

	i := 0
	for i < len(markup) {
		c := markup[i]
		switch c {
		case '<':
			end := strings.IndexByte(markup[i:], '>')
			if end < 0 {
				cur.WriteByte(c)
				i++
				continue
			}
			tag := markup[i : i+end+1]
			switch {
			case strings.HasPrefix(tag, `<span color="`):
				flush()
				color = strings.TrimSuffix(strings.TrimPrefix(tag, `<span color="`), `">`)
			case tag == "</span>":
				flush()
				color = ""
			}
			i += end + 1
		case '&':
			if end := strings.IndexByte(markup[i:], ';'); end >= 0 && end <= 6 {
				if repl, ok := entities[markup[i:i+end+1]]; ok {
					cur.WriteString(repl)
					i += end + 1
					continue
				}
			}
			cur.WriteByte(c)
			i++
		default:
			cur.WriteByte(c)
			i++
		}
	}
	flush()
	return spans
}

// SpanMarkup re-serializes parsed spans into markup: text re-escaped, color
// runs restored. Feeding the result back through Parse yields the same spans.
func SpanMarkup(spans []Span) string {
	var b strings.Builder
	for _, sp := range spans {
		if sp.Color != "" {
			b.WriteString(`<span color="` + sp.Color + `">`)
		}
		b.WriteString(Escape(sp.Text))
		if sp.Color != "" {
			b.WriteString("</span>")
		}
	}
	return b.String()
}

// PlainText returns the text content of a markup string with tags removed and
// entities resolved.
func PlainText(markup string) string {
	var b strings.Builder
	for _, s := range Parse(markup) {
		b.WriteString(s.Text)
	}
	return b.String()
}
