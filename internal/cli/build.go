package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkuehn/vitae/pkg/output"
	"github.com/mkuehn/vitae/pkg/pipeline"
	"github.com/mkuehn/vitae/pkg/render/fusion"
	"github.com/mkuehn/vitae/pkg/render/page"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	outputDir  string   // directory receiving dated artifacts
	name       string   // artifact base name ("cv" → cv_20260830.pdf)
	formats    []string // output formats: pdf, svg, png, dot
	paper      string   // paper size: a4 or letter
	scale      float64  // PNG scale factor
	theme      string   // theme file path (defaults to vitae.toml next to the profile)
	fontsDir   string   // font directory override
	fontFamily string   // font family override
	strict     bool     // fail on unmatched fusion sources
	refresh    bool     // bypass the artifact cache
	noCache    bool     // disable the artifact cache entirely
	noArchive  bool     // overwrite colliding outputs without archiving
}

// buildCommand creates the build command for rendering a profile into CV
// artifacts. Existing outputs for the same day are moved into an archive/
// directory before being replaced, so iterating on a profile never loses
// the previous version.
func (c *CLI) buildCommand() *cobra.Command {
	var formatsStr string
	opts := buildOpts{
		outputDir: ".",
		name:      pipeline.DefaultBaseName,
		paper:     pipeline.DefaultPaper,
		scale:     pipeline.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "build [profile.yaml]",
		Short: "Render a profile into CV artifacts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := resolveProfileArg(args)
			if err != nil {
				return err
			}
			opts.formats = parseFormats(formatsStr)
			for _, f := range opts.formats {
				if err := pipeline.ValidateFormat(f); err != nil {
					return err
				}
			}
			return c.runBuild(cmd.Context(), input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outputDir, "output", "o", opts.outputDir, "output directory for artifacts")
	cmd.Flags().StringVar(&opts.name, "name", opts.name, "artifact base name")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): pdf (default), svg, png, dot (comma-separated)")
	cmd.Flags().StringVar(&opts.paper, "paper", opts.paper, "paper size: a4 (default), letter")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "theme file (defaults to vitae.toml next to the profile)")
	cmd.Flags().StringVar(&opts.fontsDir, "fonts", "", "font directory override")
	cmd.Flags().StringVar(&opts.fontFamily, "font-family", "", "font family override")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail when a fusion source matches no input")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when a cached artifact exists")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.noArchive, "no-archive", false, "overwrite existing outputs without archiving")

	return cmd
}

// runBuild executes the pipeline and writes the requested artifacts.
func (c *CLI) runBuild(ctx context.Context, input string, opts *buildOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	pipeOpts := pipeline.Options{
		DataPath:   input,
		ThemePath:  opts.theme,
		FontsDir:   opts.fontsDir,
		FontFamily: opts.fontFamily,
		Strict:     opts.strict,
		Refresh:    opts.refresh,
		Formats:    opts.formats,
		Paper:      opts.paper,
		Scale:      opts.scale,
		Logger:     logger,
	}

	spin := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s", filepath.Base(input)))
	spin.Start()
	result, err := runner.Execute(ctx, pipeOpts)
	if err != nil {
		spin.StopWithError(fmt.Sprintf("Render failed: %v", err))
		return err
	}
	spin.StopWithSuccess(fmt.Sprintf("Rendered %s", result.Profile.Name))

	for _, src := range result.Unmatched {
		printWarning("fusion source %q matches no input", src)
	}

	if err := os.MkdirAll(opts.outputDir, 0o755); err != nil {
		return err
	}

	now := time.Now()
	for _, format := range opts.formats {
		if format == pipeline.FormatSVG {
			if err := writePages(result.SVGPages, opts, now); err != nil {
				return err
			}
			continue
		}
		data, ok := result.Artifacts[format]
		if !ok {
			if format == pipeline.FormatDOT {
				printWarning("profile has no fusion section; skipped DOT export")
			}
			continue
		}
		if err := writeArtifact(opts.outputDir, opts.name, format, data, now, !opts.noArchive); err != nil {
			return err
		}
	}

	printStats(result.Stats.PageCount, fusionEdges(result), result.CacheInfo.RenderHit)
	return nil
}

// writePages writes one SVG file per page, numbering them when the document
// spans more than one page.
func writePages(pages [][]byte, opts *buildOpts, now time.Time) error {
	for i, pg := range pages {
		base := pagedName(opts.name, i, len(pages))
		if err := writeArtifact(opts.outputDir, base, pipeline.FormatSVG, pg, now, !opts.noArchive); err != nil {
			return err
		}
	}
	return nil
}

// writeArtifact resolves the dated target path, archives any colliding
// artifact, writes the data, and reports both to the terminal.
func writeArtifact(dir, base, ext string, data []byte, now time.Time, archive bool) error {
	path := output.Resolve(dir, base, now, ext)
	archived, err := output.WriteArtifact(path, data, now, archive)
	if err != nil {
		return err
	}
	printFile(path)
	if archived != "" {
		printDetail("archived previous version: %s", archived)
	}
	return nil
}

// pagedName returns the base name for page i, adding a page suffix only for
// multi-page documents.
func pagedName(base string, i, total int) string {
	if total <= 1 {
		return base
	}
	return fmt.Sprintf("%s_p%02d", base, i+1)
}

// fusionEdges counts connector edges for the summary line.
func fusionEdges(result *pipeline.Result) int {
	if result.Profile == nil || !result.Profile.HasFusion() {
		return 0
	}
	inputs, outputs := page.FusionNodes(result.Profile.ExperienceFusion)
	return fusion.CountEdges(fusion.ToDOT(inputs, outputs))
}

// resolveProfileArg returns the profile path from args, or discovers one in
// the working directory, prompting when several candidates exist.
func resolveProfileArg(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	candidates, err := findProfiles(".")
	if err != nil {
		return "", err
	}
	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("no profile found; pass a YAML file or create one in the current directory")
	case 1:
		return candidates[0], nil
	default:
		return pickProfile(candidates)
	}
}
