package pipeline

import (
	"github.com/mkuehn/vitae/pkg/render"
	"github.com/mkuehn/vitae/pkg/render/fusion"
	"github.com/mkuehn/vitae/pkg/render/page"
)

// rendered holds the output of one layout-and-render pass.
type rendered struct {
	pages     [][]byte
	artifacts map[string][]byte
	unmatched []string
}

// renderArtifacts runs the layout and render stages: build the flowable
// document, paginate to SVG, then convert per requested format.
func renderArtifacts(in *inputs, opts Options) (*rendered, error) {
	paper := ValidPapers[opts.Paper]

	doc := page.NewDocument(in.measurer)
	doc.Width = paper.Width
	doc.Height = paper.Height
	doc.Margins = in.theme.ApplyMargins(doc.Margins)
	doc.Background = in.theme.Colors.Background

	builder := page.NewBuilder(in.measurer, doc.ContentWidth())
	builder.FusionConfig = in.theme.ApplyDiagram(builder.FusionConfig)
	builder.FusionConfig.Strict = opts.Strict

	flow, err := builder.Build(in.profile)
	if err != nil {
		return nil, err
	}
	pages := doc.RenderSVG(flow)

	out := &rendered{
		pages:     pages,
		artifacts: make(map[string][]byte),
		unmatched: builder.Unmatched,
	}

	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			// Pages are returned as-is; the caller writes one file each.
		case FormatPDF:
			pdf, err := render.ToPDF(pages)
			if err != nil {
				return nil, err
			}
			out.artifacts[FormatPDF] = pdf
		case FormatPNG:
			// PNG previews cover the first page only, rasterized in-process.
			pngs, err := doc.RenderPNG(flow, opts.Scale)
			if err != nil {
				return nil, err
			}
			out.artifacts[FormatPNG] = pngs[0]
		case FormatDOT:
			if dot := fusionDOT(in); dot != "" {
				out.artifacts[FormatDOT] = []byte(dot)
			}
		}
	}
	return out, nil
}

// fusionDOT exports the fusion graph as DOT, or "" when the profile has no
// fusion section.
func fusionDOT(in *inputs) string {
	if !in.profile.HasFusion() {
		return ""
	}
	nodes, outputs := page.FusionNodes(in.profile.ExperienceFusion)
	return fusion.ToDOT(nodes, outputs)
}
