// Package config loads the optional theme configuration file.
//
// A vitae.toml next to the profile can override colors, fonts, margins, and
// diagram geometry. Everything has a default; the file only states
// deviations, which are merged over the defaults field by field.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/mkuehn/vitae/pkg/errors"
	"github.com/mkuehn/vitae/pkg/render/fusion"
	"github.com/mkuehn/vitae/pkg/render/page"
)

// DefaultFileName is the theme file looked up next to the profile.
const DefaultFileName = "vitae.toml"

// Theme is the merged theme configuration.
type Theme struct {
	Colors  Colors  `toml:"colors"`
	Fonts   Fonts   `toml:"fonts"`
	Page    Page    `toml:"page"`
	Diagram Diagram `toml:"diagram"`
}

// Colors overrides palette entries. Empty fields keep their default.
type Colors struct {
	Accent     string `toml:"accent"`
	Background string `toml:"background"`
	Divider    string `toml:"divider"`
	Body       string `toml:"body"`
}

// Fonts selects the typeface.
type Fonts struct {
	Dir    string `toml:"dir"`
	Family string `toml:"family"`
}

// Page overrides page margins, in centimeters to match how designers think
// about print layouts. Zero values keep the defaults.
type Page struct {
	MarginTopCM    float64 `toml:"margin_top_cm"`
	MarginBottomCM float64 `toml:"margin_bottom_cm"`
	MarginLeftCM   float64 `toml:"margin_left_cm"`
	MarginRightCM  float64 `toml:"margin_right_cm"`
}

// Diagram overrides convergence-diagram geometry. Zero values keep the
// defaults.
type Diagram struct {
	InputBoxWidth  float64 `toml:"input_box_width"`
	InputGap       float64 `toml:"input_gap"`
	OutputLeft     float64 `toml:"output_left"`
	OutputGap      float64 `toml:"output_gap"`
	JunctionOffset float64 `toml:"junction_offset"`
	LineWidth      float64 `toml:"line_width"`
}

// Default returns the theme with no overrides applied.
func Default() *Theme {
	return &Theme{
		Colors: Colors{
			Accent:     page.AccentColor,
			Background: page.BackgroundTint,
			Divider:    page.DividerColor,
			Body:       page.BodyColor,
		},
		Fonts: Fonts{Dir: "fonts", Family: "EBGaramond"},
	}
}

// Load reads a theme file and merges it over the defaults. A missing file is
// not an error; the defaults are returned unchanged.
func Load(path string) (*Theme, error) {
	t := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return t, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read theme %s", path)
	}

	var overrides Theme
	if err := toml.Unmarshal(data, &overrides); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "parse theme %s", path)
	}
	t.merge(&overrides)
	return t, nil
}

func (t *Theme) merge(o *Theme) {
	mergeString(&t.Colors.Accent, o.Colors.Accent)
	mergeString(&t.Colors.Background, o.Colors.Background)
	mergeString(&t.Colors.Divider, o.Colors.Divider)
	mergeString(&t.Colors.Body, o.Colors.Body)
	mergeString(&t.Fonts.Dir, o.Fonts.Dir)
	mergeString(&t.Fonts.Family, o.Fonts.Family)
	mergeFloat(&t.Page.MarginTopCM, o.Page.MarginTopCM)
	mergeFloat(&t.Page.MarginBottomCM, o.Page.MarginBottomCM)
	mergeFloat(&t.Page.MarginLeftCM, o.Page.MarginLeftCM)
	mergeFloat(&t.Page.MarginRightCM, o.Page.MarginRightCM)
	mergeFloat(&t.Diagram.InputBoxWidth, o.Diagram.InputBoxWidth)
	mergeFloat(&t.Diagram.InputGap, o.Diagram.InputGap)
	mergeFloat(&t.Diagram.OutputLeft, o.Diagram.OutputLeft)
	mergeFloat(&t.Diagram.OutputGap, o.Diagram.OutputGap)
	mergeFloat(&t.Diagram.JunctionOffset, o.Diagram.JunctionOffset)
	mergeFloat(&t.Diagram.LineWidth, o.Diagram.LineWidth)
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func mergeFloat(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

// ApplyMargins returns margins with the theme's centimeter overrides applied.
func (t *Theme) ApplyMargins(m page.Margins) page.Margins {
	if t.Page.MarginTopCM != 0 {
		m.Top = t.Page.MarginTopCM * page.CM
	}
	if t.Page.MarginBottomCM != 0 {
		m.Bottom = t.Page.MarginBottomCM * page.CM
	}
	if t.Page.MarginLeftCM != 0 {
		m.Left = t.Page.MarginLeftCM * page.CM
	}
	if t.Page.MarginRightCM != 0 {
		m.Right = t.Page.MarginRightCM * page.CM
	}
	return m
}

// ApplyDiagram returns a fusion config with the theme's overrides applied.
func (t *Theme) ApplyDiagram(cfg fusion.Config) fusion.Config {
	if t.Colors.Accent != "" {
		cfg.Color = t.Colors.Accent
		cfg.InputLabelStyle.Color = t.Colors.Accent
		cfg.OutputLabelStyle.Color = t.Colors.Accent
	}
	mergeFloat(&cfg.InputBoxWidth, t.Diagram.InputBoxWidth)
	mergeFloat(&cfg.InputGap, t.Diagram.InputGap)
	mergeFloat(&cfg.OutputLeft, t.Diagram.OutputLeft)
	mergeFloat(&cfg.OutputGap, t.Diagram.OutputGap)
	mergeFloat(&cfg.JunctionOffset, t.Diagram.JunctionOffset)
	mergeFloat(&cfg.LineWidth, t.Diagram.LineWidth)
	return cfg
}
