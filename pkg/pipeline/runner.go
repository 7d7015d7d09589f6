package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mkuehn/vitae/pkg/cache"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := r.Logger.With("run", runID[:8])

	result := &Result{
		RunID:     runID,
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	in, err := loadInputs(opts)
	if err != nil {
		return nil, err
	}
	result.Profile = in.profile
	result.ProfileHash = cache.Hash(in.raw)
	result.Stats.LoadTime = time.Since(loadStart)

	logger.Info("loaded profile",
		"name", in.profile.Name,
		"fusion", in.profile.HasFusion(),
		"duration", result.Stats.LoadTime)

	// Try serving every requested artifact from cache. SVG pages are never
	// cached, so any svg request forces a render pass.
	renderStart := time.Now()
	if !opts.Refresh && r.fillFromCache(ctx, result, opts, in.themeHash) {
		result.Stats.RenderTime = time.Since(renderStart)
		result.CacheInfo.RenderHit = true
		logger.Info("artifacts served from cache", "formats", opts.Formats)
		return result, nil
	}

	// Stage 2+3: Layout and render
	out, err := renderArtifacts(in, opts)
	if err != nil {
		return nil, err
	}
	result.SVGPages = out.pages
	result.Artifacts = out.artifacts
	result.Unmatched = out.unmatched
	result.Stats.PageCount = len(out.pages)
	result.Stats.RenderTime = time.Since(renderStart)

	for _, src := range out.unmatched {
		logger.Warn("fusion source matches no input", "source", src)
	}

	for format, data := range out.artifacts {
		if !cacheable(format) {
			continue
		}
		key := r.Keyer.ArtifactKey(result.ProfileHash, opts.ArtifactKeyOpts(format, in.themeHash))
		_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
	}

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"pages", result.Stats.PageCount,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// fillFromCache attempts to satisfy every requested format from the artifact
// cache. It reports success only when no render pass is needed at all.
func (r *Runner) fillFromCache(ctx context.Context, result *Result, opts Options, themeHash string) bool {
	for _, format := range opts.Formats {
		if !cacheable(format) {
			return false
		}
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(result.ProfileHash, opts.ArtifactKeyOpts(format, themeHash))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			return false
		}
		artifacts[format] = data
	}

	result.Artifacts = artifacts
	return true
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
