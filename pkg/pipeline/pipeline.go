// Package pipeline provides the core rendering pipeline for vitae.
//
// This package implements the complete load → layout → render flow used by
// every CLI entry point. Centralizing it ensures the build and fusion
// commands behave identically and share one caching strategy.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read and validate the profile, theme, and fonts
//  2. Layout: build the flowable document and paginate it
//  3. Render: produce artifacts per requested format (SVG, PDF, PNG, DOT)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    DataPath: "cv.yaml",
//	    Formats:  []string{"pdf"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pdf := result.Artifacts["pdf"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mkuehn/vitae/pkg/cache"
	"github.com/mkuehn/vitae/pkg/errors"
	"github.com/mkuehn/vitae/pkg/profile"
)

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPDF = "pdf"
	FormatPNG = "png"
	FormatDOT = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPDF: true,
	FormatPNG: true,
	FormatDOT: true,
}

// PaperSize is a page size in points.
type PaperSize struct {
	Width, Height float64
}

// ValidPapers maps supported paper names to their dimensions.
var ValidPapers = map[string]PaperSize{
	"a4":     {Width: 595.28, Height: 841.89},
	"letter": {Width: 612, Height: 792},
}

// Default values shared by every entry point.
const (
	// DefaultPaper is the default page size.
	DefaultPaper = "a4"

	// DefaultScale is the default PNG scale factor (2x resolution).
	DefaultScale = 2.0

	// DefaultBaseName is the artifact filename stem ("cv" → cv_20260830.pdf).
	DefaultBaseName = "cv"
)

// Options contains all configuration for the rendering pipeline.
type Options struct {
	// Load options
	DataPath   string `json:"data_path"`
	ThemePath  string `json:"theme_path,omitempty"`
	FontsDir   string `json:"fonts_dir,omitempty"`
	FontFamily string `json:"font_family,omitempty"`

	// Strict turns unmatched fusion source references into errors.
	Strict bool `json:"strict,omitempty"`

	// Refresh bypasses the artifact cache.
	Refresh bool `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Paper   string   `json:"paper,omitempty"`
	Scale   float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this execution in logs.
	RunID string

	// Profile is the loaded CV data.
	Profile *profile.Profile

	// ProfileHash is the content hash of the raw profile bytes.
	ProfileHash string

	// SVGPages holds the rendered pages. Populated whenever rendering ran;
	// empty when every requested artifact came from cache.
	SVGPages [][]byte

	// Artifacts contains converted outputs keyed by format (pdf, png, dot).
	Artifacts map[string][]byte

	// Unmatched lists fusion source references that matched no input.
	Unmatched []string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PageCount  int
	LoadTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	// RenderHit is true when every requested artifact came from cache and
	// no layout work was needed.
	RenderHit bool
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, pdf, png, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePaper checks that a paper size is supported.
func ValidatePaper(paper string) error {
	if _, ok := ValidPapers[paper]; !ok {
		return errors.New(errors.ErrCodeInvalidPaper,
			"invalid paper: %q (must be one of: a4, letter)", paper)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.DataPath == "" {
		return errors.New(errors.ErrCodeInvalidPath, "data path is required")
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPDF}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	if o.Paper == "" {
		o.Paper = DefaultPaper
	}
	if err := ValidatePaper(o.Paper); err != nil {
		return err
	}

	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for one format. themeHash keys
// theme overrides so a changed vitae.toml invalidates cached artifacts.
func (o *Options) ArtifactKeyOpts(format, themeHash string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format: format,
		Paper:  o.Paper,
		Strict: o.Strict,
		Theme:  themeHash,
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// cacheable reports whether a format's artifact is worth caching. SVG pages
// are regenerated on every layout run and DOT is trivial to derive, so only
// the conversions that shell out to librsvg are cached.
func cacheable(format string) bool {
	return format == FormatPDF || format == FormatPNG
}
