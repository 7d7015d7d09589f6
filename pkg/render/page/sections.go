package page

import (
	"strings"

	"github.com/mkuehn/vitae/pkg/profile"
	"github.com/mkuehn/vitae/pkg/render/fusion"
	"github.com/mkuehn/vitae/pkg/render/text"
)

// Builder composes a profile into the document flow. Optional sections are
// omitted when their data is absent.
type Builder struct {
	M            *text.Measurer
	Styles       *Styles
	Width        float64 // content width in points
	FusionConfig fusion.Config

	// Unmatched collects fusion source references that matched no input
	// during the last Build, for callers to surface as warnings.
	Unmatched []string
}

// NewBuilder returns a Builder with the default stylesheet and fusion
// geometry for the given content width.
func NewBuilder(m *text.Measurer, width float64) *Builder {
	return &Builder{
		M:            m,
		Styles:       DefaultStyles(),
		Width:        width,
		FusionConfig: fusion.DefaultConfig(width),
	}
}

// Build assembles the full document flow for a profile.
func (b *Builder) Build(p *profile.Profile) ([]Flowable, error) {
	var flow []Flowable

	flow = append(flow, b.Header(p)...)
	flow = append(flow, &Spacer{H: 12})
	flow = append(flow, b.divider()...)

	flow = append(flow, b.sectionTitle("Executive Summary"))
	flow = append(flow, b.bulletList(p.Summary))
	flow = append(flow, &Spacer{H: 10})

	fusionFlow, err := b.FusionSection(p.ExperienceFusion)
	if err != nil {
		return nil, err
	}
	flow = append(flow, fusionFlow...)
	flow = append(flow, b.divider()...)

	if len(p.SignatureHighlights) > 0 {
		flow = append(flow, b.sectionTitle("Signature Highlights"))
		flow = append(flow, b.Highlights(p.SignatureHighlights))
		flow = append(flow, &Spacer{H: 10})
		flow = append(flow, b.divider()...)
	}

	flow = append(flow, b.sectionTitle("Experience"))
	flow = append(flow, b.Experience(p.Experience)...)
	flow = append(flow, b.divider()...)

	if len(p.Education) > 0 {
		flow = append(flow, b.sectionTitle("Education"))
		flow = append(flow, b.Education(p.Education))
	}

	if len(p.Skills) > 0 {
		flow = append(flow, b.sectionTitle("Skills"))
		flow = append(flow, b.Skills(p.Skills))
	}

	if len(p.Languages) > 0 || len(p.Interests) > 0 {
		flow = append(flow, b.sectionTitle("Additional"))
		flow = append(flow, b.compactInfo("Languages", p.Languages)...)
		flow = append(flow, b.compactInfo("Interests", p.Interests)...)
	}

	return flow, nil
}

// Header builds the centered name, role, tagline, and contact block.
func (b *Builder) Header(p *profile.Profile) []Flowable {
	flow := []Flowable{
		&Paragraph{M: b.M, Markup: text.Escape(p.Name), Style: b.Styles.HeaderName, Align: AlignCenter, SpaceAfter: 6},
		&Paragraph{M: b.M, Markup: text.Escape(p.Role), Style: b.Styles.HeaderRole, Align: AlignCenter, SpaceAfter: 8},
	}
	if p.Positioning != "" {
		flow = append(flow, &Paragraph{
			M:          b.M,
			Markup:     text.SoftenPipes(text.Escape(p.Positioning), MutedPipeColor),
			Style:      b.Styles.HeaderContact,
			Align:      AlignCenter,
			SpaceAfter: 4,
		})
	}
	if line := p.ContactLine(); line != "" {
		flow = append(flow, &Paragraph{
			M:          b.M,
			Markup:     text.SoftenPipes(text.Escape(line), MutedPipeColor),
			Style:      b.Styles.HeaderContact,
			Align:      AlignCenter,
			SpaceAfter: 4,
		})
	}
	return flow
}

// FusionSection builds the convergence diagram section, or nothing when the
// profile carries no fusion data.
func (b *Builder) FusionSection(f *profile.Fusion) ([]Flowable, error) {
	if f == nil || (len(f.Inputs) == 0 && len(f.Outputs) == 0) {
		return nil, nil
	}

	flow := []Flowable{b.sectionTitle(f.SectionTitle())}
	if f.Description != "" {
		flow = append(flow,
			&Paragraph{M: b.M, Markup: text.Escape(f.Description), Style: b.Styles.Body},
			&Spacer{H: 6})
	}

	inputs, outputs := FusionNodes(f)
	layout, err := fusion.Compute(inputs, outputs, b.FusionConfig, b.M.Height)
	if err != nil {
		return nil, err
	}
	b.Unmatched = layout.Unmatched

	flow = append(flow,
		&Diagram{Layout: layout, Config: b.FusionConfig},
		&Spacer{H: 8})
	return flow, nil
}

// FusionNodes converts profile fusion data into diagram nodes.
func FusionNodes(f *profile.Fusion) ([]fusion.InputNode, []fusion.OutputNode) {
	inputs := make([]fusion.InputNode, len(f.Inputs))
	for i, in := range f.Inputs {
		inputs[i] = fusion.InputNode{
			Key:     in.Key,
			Label:   in.Label,
			Badge:   in.Badge,
			Bullets: in.Bullets,
		}
	}
	outputs := make([]fusion.OutputNode, len(f.Outputs))
	for i, out := range f.Outputs {
		outputs[i] = fusion.OutputNode{
			Label:   out.Label,
			Alias:   out.Alias,
			Bullets: out.Bullets,
			Sources: out.Sources,
		}
	}
	return inputs, outputs
}

// Highlights builds the two-column signature-highlights grid.
func (b *Builder) Highlights(items []profile.Highlight) Flowable {
	cell := func(h profile.Highlight) Flowable {
		return &Group{Items: []Flowable{
			&Paragraph{M: b.M, Markup: text.Escape(h.Title), Style: b.Styles.SignatureTitle, SpaceAfter: 2},
			&Paragraph{M: b.M, Markup: text.Escape(h.Detail), Style: b.Styles.SignatureDetail},
		}}
	}

	var rows [][]Flowable
	var row []Flowable
	for _, item := range items {
		row = append(row, cell(item))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, append(row, nil))
	}

	half := b.Width / 2
	return &Table{
		Rows:      rows,
		ColWidths: []float64{half, half},
		Padding:   CellPadding{Left: 6, Right: 10, Top: 4, Bottom: 4},
	}
}

// Experience builds the positions list: role line, meta line, bullets.
func (b *Builder) Experience(items []profile.Experience) []Flowable {
	var flow []Flowable
	for _, item := range items {
		title := text.SoftenPipes(text.Escape(item.Role+" | "+item.Company), MutedPipeColor)
		meta := text.Escape(item.Period + "  •  " + item.Location)

		flow = append(flow,
			&Paragraph{M: b.M, Markup: title, Style: b.Styles.ExperienceRole, SpaceAfter: 2},
			&Paragraph{M: b.M, Markup: meta, Style: b.Styles.ExperienceMeta, SpaceAfter: 6})
		if len(item.Bullets) > 0 {
			flow = append(flow, b.bulletList(item.Bullets))
		}
		flow = append(flow, &Spacer{H: 6})
	}
	return flow
}

// Education builds the school / degree / period table.
func (b *Builder) Education(items []profile.Education) Flowable {
	rows := make([][]Flowable, len(items))
	for i, item := range items {
		rows[i] = []Flowable{
			&Paragraph{M: b.M, Markup: text.Escape(item.School), Style: b.Styles.ExperienceRole},
			&Paragraph{M: b.M, Markup: text.Escape(item.Degree), Style: b.Styles.Body},
			&Paragraph{M: b.M, Markup: text.Escape(item.Period), Style: b.Styles.EducationPeriod},
		}
	}
	return &Table{
		Rows:      rows,
		ColWidths: []float64{5.5 * CM, 7.5 * CM, 3.0 * CM},
		Padding:   CellPadding{Right: 4, Top: 6, Bottom: 4},
	}
}

// Skills builds the category / items table.
func (b *Builder) Skills(groups []profile.SkillGroup) Flowable {
	rows := make([][]Flowable, len(groups))
	for i, g := range groups {
		rows[i] = []Flowable{
			&Paragraph{M: b.M, Markup: text.Escape(g.Category), Style: b.Styles.ExperienceRole},
			&Paragraph{M: b.M, Markup: text.Escape(strings.Join(g.Items, ", ")), Style: b.Styles.Body},
		}
	}
	return &Table{
		Rows:      rows,
		ColWidths: []float64{5.2 * CM, 10.8 * CM},
		Padding:   CellPadding{Right: 4, Top: 6, Bottom: 4},
	}
}

func (b *Builder) compactInfo(title string, values []string) []Flowable {
	if len(values) == 0 {
		return nil
	}
	return []Flowable{
		&Paragraph{M: b.M, Markup: text.Escape(title), Style: b.Styles.ExperienceRole, SpaceAfter: 2},
		&Paragraph{M: b.M, Markup: text.Escape(strings.Join(values, ", ")), Style: b.Styles.Body},
		&Spacer{H: 4},
	}
}

func (b *Builder) sectionTitle(title string) Flowable {
	return &Paragraph{
		M:          b.M,
		Markup:     text.Escape(strings.ToUpper(title)),
		Style:      b.Styles.SectionTitle,
		SpaceAfter: 6,
	}
}

func (b *Builder) bulletList(items []string) Flowable {
	return &BulletList{
		M:           b.M,
		Items:       items,
		Style:       b.Styles.Body,
		Indent:      14,
		ItemSpacing: 2,
	}
}

func (b *Builder) divider() []Flowable {
	return []Flowable{
		&Spacer{H: 12},
		&Rule{Thickness: 0.3, Color: DividerColor},
		&Spacer{H: 12},
	}
}
