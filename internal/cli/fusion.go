package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkuehn/vitae/pkg/config"
	"github.com/mkuehn/vitae/pkg/errors"
	"github.com/mkuehn/vitae/pkg/fonts"
	"github.com/mkuehn/vitae/pkg/output"
	"github.com/mkuehn/vitae/pkg/pipeline"
	"github.com/mkuehn/vitae/pkg/profile"
	"github.com/mkuehn/vitae/pkg/render/canvas"
	"github.com/mkuehn/vitae/pkg/render/fusion"
	"github.com/mkuehn/vitae/pkg/render/page"
	"github.com/mkuehn/vitae/pkg/render/text"
)

// fusionOpts holds the command-line flags for the fusion command.
type fusionOpts struct {
	output     string  // output file (default: dated name in the working directory)
	format     string  // svg, png, or dot
	width      float64 // diagram width in points
	scale      float64 // PNG scale factor
	theme      string  // theme file path
	fontsDir   string  // font directory override
	fontFamily string  // font family override
	strict     bool    // fail on unmatched fusion sources
	graphviz   bool    // let Graphviz lay out the SVG instead of the column layout
	noArchive  bool    // overwrite colliding outputs without archiving
}

// fusionCommand creates the fusion command, which renders the convergence
// diagram on its own. Useful for iterating on the experience_fusion section
// without re-rendering the whole document.
func (c *CLI) fusionCommand() *cobra.Command {
	opts := fusionOpts{
		format: pipeline.FormatSVG,
		scale:  pipeline.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "fusion [profile.yaml]",
		Short: "Render only the convergence diagram",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := resolveProfileArg(args)
			if err != nil {
				return err
			}
			switch opts.format {
			case pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatDOT:
			default:
				return fmt.Errorf("invalid format: %s (must be 'svg', 'png', or 'dot')", opts.format)
			}
			return c.runFusion(cmd.Context(), input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: fusion_<date>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), png, dot")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "diagram width in points (default: page content width)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "theme file (defaults to vitae.toml next to the profile)")
	cmd.Flags().StringVar(&opts.fontsDir, "fonts", "", "font directory override")
	cmd.Flags().StringVar(&opts.fontFamily, "font-family", "", "font family override")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail when a fusion source matches no input")
	cmd.Flags().BoolVar(&opts.graphviz, "graphviz", false, "use Graphviz layout instead of the column layout")
	cmd.Flags().BoolVar(&opts.noArchive, "no-archive", false, "overwrite existing outputs without archiving")

	return cmd
}

// runFusion renders the diagram to the requested format and writes it.
func (c *CLI) runFusion(ctx context.Context, input string, opts *fusionOpts) error {
	prog := newProgress(loggerFromContext(ctx))

	p, err := profile.Load(input)
	if err != nil {
		return err
	}
	if !p.HasFusion() {
		return fmt.Errorf("profile %s has no experience_fusion section", input)
	}
	inputs, outputs := page.FusionNodes(p.ExperienceFusion)

	var data []byte
	switch {
	case opts.format == pipeline.FormatDOT:
		if err := checkSources(inputs, outputs, opts.strict); err != nil {
			return err
		}
		data = []byte(fusion.ToDOT(inputs, outputs))
	case opts.graphviz:
		if err := checkSources(inputs, outputs, opts.strict); err != nil {
			return err
		}
		data, err = fusion.RenderDOT(ctx, fusion.ToDOT(inputs, outputs))
		if err != nil {
			return err
		}
	default:
		data, err = drawDiagram(input, inputs, outputs, opts)
		if err != nil {
			return err
		}
	}

	path := opts.output
	if path == "" {
		path = output.Resolve(".", "fusion", time.Now(), opts.format)
	}
	archived, err := output.WriteArtifact(path, data, time.Now(), !opts.noArchive)
	if err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Rendered fusion diagram (%s)", opts.format))
	printSuccess("Rendered fusion diagram for %s", p.Name)
	printFile(path)
	if archived != "" {
		printDetail("archived previous version: %s", archived)
	}
	printStats(0, fusion.CountEdges(fusion.ToDOT(inputs, outputs)), false)
	return nil
}

// checkSources surfaces source references that match no input. The DOT export
// drops them silently, so both Graphviz paths run this check up front; the
// column layout performs the same check itself during Compute.
func checkSources(inputs []fusion.InputNode, outputs []fusion.OutputNode, strict bool) error {
	unmatched := fusion.Unmatched(inputs, outputs)
	if strict && len(unmatched) > 0 {
		return errors.New(errors.ErrCodeUnmatchedSource,
			"no input matches source reference(s): %s", strings.Join(unmatched, ", "))
	}
	for _, src := range unmatched {
		printWarning("fusion source %q matches no input", src)
	}
	return nil
}

// drawDiagram runs the column layout and rasterizes when PNG is requested.
func drawDiagram(input string, inputs []fusion.InputNode, outputs []fusion.OutputNode, opts *fusionOpts) ([]byte, error) {
	themePath := opts.theme
	if themePath == "" {
		themePath = filepath.Join(filepath.Dir(input), config.DefaultFileName)
	}
	theme, err := config.Load(themePath)
	if err != nil {
		return nil, err
	}

	fontsDir := opts.fontsDir
	if fontsDir == "" {
		fontsDir = theme.Fonts.Dir
	}
	family := opts.fontFamily
	if family == "" {
		family = theme.Fonts.Family
	}
	fam, err := fonts.Load(fontsDir, family)
	if err != nil {
		return nil, err
	}
	m := text.NewMeasurer(fam)

	width := opts.width
	if width <= 0 {
		margins := page.DefaultMargins()
		width = page.A4Width - margins.Left - margins.Right
	}
	cfg := theme.ApplyDiagram(fusion.DefaultConfig(width))
	cfg.Strict = opts.strict

	layout, err := fusion.Compute(inputs, outputs, cfg, m.Height)
	if err != nil {
		return nil, err
	}
	for _, src := range layout.Unmatched {
		printWarning("fusion source %q matches no input", src)
	}

	if opts.format == pipeline.FormatPNG {
		rc := canvas.NewRaster(layout.Width, layout.Height, opts.scale, m)
		rc.FillRect(0, 0, layout.Width, layout.Height, theme.Colors.Background)
		fusion.Draw(rc, layout, cfg, 0, 0)
		return rc.PNG()
	}

	cv := canvas.NewSVG(layout.Width, layout.Height, m)
	cv.FillRect(0, 0, layout.Width, layout.Height, theme.Colors.Background)
	fusion.Draw(cv, layout, cfg, 0, 0)
	return cv.Bytes(), nil
}
