package fusion

import "github.com/mkuehn/vitae/pkg/render/text"

// MeasureFunc returns the height that markup occupies when wrapped to width
// in the given style. It must be deterministic and must not draw; a
// text.Measurer's Height method satisfies it.
type MeasureFunc func(markup string, width float64, st text.Style) float64

// MeasuredInput is an input node with its markup composed and height fixed.
type MeasuredInput struct {
	InputNode
	LabelMarkup   string
	BulletMarkups []string
	Height        float64
}

// MeasuredOutput is an output node with its markup composed and height fixed.
type MeasuredOutput struct {
	OutputNode
	LabelMarkup   string
	BulletMarkups []string
	Height        float64
}

func measureInputs(nodes []InputNode, cfg Config, measure MeasureFunc) []MeasuredInput {
	contentWidth := cfg.InputBoxWidth - 2*cfg.InputPadding
	out := make([]MeasuredInput, len(nodes))

	for i, n := range nodes {
		labelMarkup := text.Escape(n.Badge) + ". " + text.Escape(n.Label)
		labelH := measure(labelMarkup, contentWidth, cfg.InputLabelStyle)

		markups, bulletsH := measureBullets(n.Bullets, contentWidth, cfg.InputBulletStyle, cfg.BulletSpacing, measure)

		h := 2*cfg.InputPadding + labelH
		if len(markups) > 0 {
			h += cfg.InputBulletGap + bulletsH
		}
		if h < cfg.InputMinHeight {
			h = cfg.InputMinHeight
		}

		out[i] = MeasuredInput{
			InputNode:     n,
			LabelMarkup:   labelMarkup,
			BulletMarkups: markups,
			Height:        h,
		}
	}
	return out
}

func measureOutputs(nodes []OutputNode, cfg Config, measure MeasureFunc) []MeasuredOutput {
	labelWidth := cfg.OutputBoxWidth() - 2*cfg.OutputLabelInset
	bulletWidth := cfg.OutputBoxWidth() - cfg.OutputBulletInset - cfg.OutputLabelInset
	out := make([]MeasuredOutput, len(nodes))

	for i, n := range nodes {
		labelMarkup := text.Escape(n.Label)
		if n.Alias != "" {
			labelMarkup += " " + text.Escape(n.Alias)
		}
		labelH := measure(labelMarkup, labelWidth, cfg.OutputLabelStyle)

		markups, bulletsH := measureBullets(n.Bullets, bulletWidth, cfg.OutputBulletStyle, cfg.BulletSpacing, measure)

		h := cfg.OutputPaddingTop + labelH + bulletsH + cfg.OutputPaddingBottom
		if len(markups) > 0 {
			h += cfg.OutputBulletGap
		}
		if h < cfg.OutputMinHeight {
			h = cfg.OutputMinHeight
		}

		out[i] = MeasuredOutput{
			OutputNode:    n,
			LabelMarkup:   labelMarkup,
			BulletMarkups: markups,
			Height:        h,
		}
	}
	return out
}

// measureBullets composes bullet markup and returns the markups plus their
// total height including inter-bullet spacing.
func measureBullets(bullets []string, width float64, st text.Style, spacing float64, measure MeasureFunc) ([]string, float64) {
	if len(bullets) == 0 {
		return nil, 0
	}
	markups := make([]string, len(bullets))
	total := 0.0
	for i, b := range bullets {
		markups[i] = text.Bullet(b)
		total += measure(markups[i], width, st)
	}
	total += spacing * float64(len(bullets)-1)
	return markups, total
}
