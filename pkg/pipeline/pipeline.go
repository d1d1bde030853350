// Package pipeline turns background variants into rendered artifacts.
//
// A run resolves each variant to a [tiles.Config], lays out the field and
// renders it in the requested formats. The same code backs the generate and
// serve commands.
//
// # Stages
//
//  1. Resolve: load the icon directory and apply the variant's overrides on
//     top of [tiles.DefaultConfig]
//  2. Layout: compute the field with [tiles.Layout]
//  3. Render: emit SVG, JSON and HTML with package sink
//
// Generation is deterministic, so artifacts are cached under the hash of the
// resolved configuration. A cache hit skips layout and rendering entirely.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	results, err := runner.GenerateSite(ctx, site, nil, pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	for _, res := range results {
//	    paths, err := pipeline.WriteArtifacts(site.Output(), res)
//	    ...
//	}
package pipeline

import (
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tilefield/tilefield/pkg/cache"
	"github.com/tilefield/tilefield/pkg/tiles"
	"github.com/tilefield/tilefield/pkg/tiles/sink"
)

// Cache key type reported to observability hooks.
const keyTypeArtifact = "artifact"

// Options controls rendering and execution. The zero value renders SVG only.
type Options struct {
	// Formats overrides the formats configured per variant.
	Formats []string `json:"formats,omitempty"`

	// ClassPrefix replaces the "tile" CSS class prefix.
	ClassPrefix string `json:"class_prefix,omitempty"`

	// Animation embeds the default grow-then-shrink stylesheet in the SVG.
	Animation bool `json:"animation,omitempty"`

	// HTMLTemplate replaces sink.DefaultHTMLTemplate.
	HTMLTemplate string `json:"html_template,omitempty"`

	// Refresh skips cache reads. Fresh output is still written back.
	Refresh bool `json:"refresh,omitempty"`

	// Concurrency bounds how many variants are generated at once
	// (default GOMAXPROCS).
	Concurrency int `json:"concurrency,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	RunID  string      `json:"-"`

	validated bool
}

// Job is a fully resolved variant.
type Job struct {
	Variant string
	Config  tiles.Config
}

// Result contains the outputs of one variant.
type Result struct {
	RunID      string
	Variant    string
	ConfigHash string

	// Field is the computed layout. It is nil when every artifact came from
	// the cache.
	Field *tiles.Field

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains execution statistics for one variant.
type Stats struct {
	Cells      int
	Dropped    int
	Excluded   int
	Icons      int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache use for one variant.
type CacheInfo struct {
	Hits      int  // artifacts served from cache
	RenderHit bool // whether every artifact came from cache
}

// ValidateAndSetDefaults checks the formats and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := sink.ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.SetDefaults()
	o.validated = true
	return nil
}

// SetDefaults fills in the logger, run id and concurrency.
func (o *Options) SetDefaults() {
	if o.Concurrency <= 0 {
		o.Concurrency = runtime.GOMAXPROCS(0)
	}
	if o.RunID == "" {
		o.RunID = uuid.NewString()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// formats returns the formats to render, falling back to SVG.
func (o *Options) formats() []string {
	if len(o.Formats) == 0 {
		return []string{sink.FormatSVG}
	}
	return o.Formats
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:      format,
		ClassPrefix: o.ClassPrefix,
		Animation:   o.Animation,
	}
	if format == sink.FormatHTML && o.HTMLTemplate != "" {
		opts.Template = cache.Hash([]byte(o.HTMLTemplate))
	}
	return opts
}
