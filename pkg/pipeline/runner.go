package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/tilefield/tilefield/pkg/cache"
	"github.com/tilefield/tilefield/pkg/config"
	"github.com/tilefield/tilefield/pkg/observability"
)

// Runner executes jobs with caching.
//
// The Runner is stateless except for the cache and logger, so one Runner can
// serve concurrent calls with different options.
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

// GenerateSite resolves and generates the named variants of site (all when
// names is empty). Variants run concurrently; results keep the order of the
// selected variants. Formats configured in the site file apply unless
// opts.Formats is set.
func (r *Runner) GenerateSite(ctx context.Context, site *config.File, names []string, opts Options) ([]*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	jobs, err := ResolveJobs(site, names, nil)
	if err != nil {
		return nil, err
	}

	perJob := make([]Options, len(jobs))
	for i, job := range jobs {
		perJob[i] = opts
		if len(opts.Formats) == 0 {
			v, _ := site.Lookup(job.Variant)
			perJob[i].Formats = site.FormatsFor(v)
		}
	}
	return r.run(ctx, jobs, perJob, opts.Concurrency)
}

// ExecuteAll generates jobs concurrently with the same options.
func (r *Runner) ExecuteAll(ctx context.Context, jobs []Job, opts Options) ([]*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	perJob := make([]Options, len(jobs))
	for i := range jobs {
		perJob[i] = opts
	}
	return r.run(ctx, jobs, perJob, opts.Concurrency)
}

func (r *Runner) run(ctx context.Context, jobs []Job, opts []Options, limit int) ([]*Result, error) {
	results := make([]*Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, job := range jobs {
		g.Go(func() error {
			res, err := r.Execute(ctx, job, opts[i])
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Execute runs layout and rendering for one job, serving every format from
// the cache when possible.
func (r *Runner) Execute(ctx context.Context, job Job, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := opts.Logger.With("run", opts.RunID, "variant", job.Variant)

	hash, err := cache.HashJSON(job)
	if err != nil {
		return nil, fmt.Errorf("hash config: %w", err)
	}

	result := &Result{
		RunID:      opts.RunID,
		Variant:    job.Variant,
		ConfigHash: hash,
	}

	if !opts.Refresh {
		if artifacts, ok := r.cached(ctx, hash, opts, logger); ok {
			result.Artifacts = artifacts
			result.CacheInfo = CacheInfo{Hits: len(artifacts), RenderHit: true}
			logger.Info("served from cache", "formats", opts.formats())
			return result, nil
		}
	}

	// Stage 1: Layout
	hooks := observability.Pipeline()
	layoutStart := time.Now()
	hooks.OnLayoutStart(ctx, job.Variant)
	field, err := Layout(job)
	result.Stats.LayoutTime = time.Since(layoutStart)
	if err != nil {
		hooks.OnLayoutComplete(ctx, job.Variant, observability.LayoutStats{}, result.Stats.LayoutTime, err)
		return nil, err
	}
	result.Field = field
	result.Stats.Cells = len(field.Cells)
	result.Stats.Dropped = field.Dropped
	result.Stats.Excluded = field.Excluded
	result.Stats.Icons = field.IconCount()
	hooks.OnLayoutComplete(ctx, job.Variant, observability.LayoutStats{
		Cells:    result.Stats.Cells,
		Dropped:  result.Stats.Dropped,
		Excluded: result.Stats.Excluded,
		Icons:    result.Stats.Icons,
	}, result.Stats.LayoutTime, nil)

	logger.Info("computed layout",
		"cells", result.Stats.Cells,
		"dropped", result.Stats.Dropped,
		"excluded", result.Stats.Excluded,
		"icons", result.Stats.Icons,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	rend := renderer{field: field, variant: job.Variant, opts: opts}
	result.Artifacts = make(map[string][]byte)
	for _, format := range opts.formats() {
		start := time.Now()
		hooks.OnRenderStart(ctx, job.Variant, format)
		data, err := rend.render(format)
		hooks.OnRenderComplete(ctx, job.Variant, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, err
		}
		result.Artifacts[format] = data
		r.store(ctx, r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format)), data, logger)
	}
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered outputs",
		"formats", opts.formats(),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// cached returns every requested format from the cache, or false if any is
// missing.
func (r *Runner) cached(ctx context.Context, hash string, opts Options, logger *log.Logger) (map[string][]byte, bool) {
	hooks := observability.Cache()
	artifacts := make(map[string][]byte)
	for _, format := range opts.formats() {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			hooks.OnCacheError(ctx, keyTypeArtifact, err)
			logger.Debug("cache read failed", "format", format, "err", err)
			return nil, false
		}
		if !hit {
			hooks.OnCacheMiss(ctx, keyTypeArtifact)
			return nil, false
		}
		hooks.OnCacheHit(ctx, keyTypeArtifact)
		artifacts[format] = data
	}
	return artifacts, true
}

func (r *Runner) store(ctx context.Context, key string, data []byte, logger *log.Logger) {
	if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
		observability.Cache().OnCacheError(ctx, keyTypeArtifact, err)
		logger.Debug("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
