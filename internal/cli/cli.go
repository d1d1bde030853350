// Package cli implements the tilefield command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tilefield/tilefield/pkg/buildinfo"
	"github.com/tilefield/tilefield/pkg/cache"
	"github.com/tilefield/tilefield/pkg/config"
	"github.com/tilefield/tilefield/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "tilefield"

// envCacheURL selects a Redis cache when set (e.g. redis://localhost:6379/0).
const envCacheURL = "TILEFIELD_CACHE_URL"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Tilefield generates deterministic tile backgrounds",
		Long:         `Tilefield lays out seeded grids of rounded tiles with icons and emits them as static SVG, ready to be embedded by a site at build time.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.defaultsCommand())
	root.AddCommand(c.variantsCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags are shared by commands that generate artifacts.
type cacheFlags struct {
	noCache  bool
	cacheURL string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&f.cacheURL, "cache-url", os.Getenv(envCacheURL), "redis URL for a shared cache (default: local file cache)")
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, flags cacheFlags) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, flags)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, flags cacheFlags) (cache.Cache, error) {
	if flags.noCache {
		return cache.NewNullCache(), nil
	}
	if flags.cacheURL != "" {
		rc, err := cache.NewRedisCache(ctx, flags.cacheURL)
		if err != nil {
			c.Logger.Debug("redis connect failed", "url", flags.cacheURL, "err", err)
			printWarning("Redis cache unavailable, caching disabled")
			return cache.NewNullCache(), nil
		}
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/tilefield/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Site Config
// =============================================================================

// loadSite loads the site file named by args, or tilefield.toml in the
// working directory. Without either, a single default variant is used.
func (c *CLI) loadSite(args []string) (*config.File, error) {
	path := config.DefaultFile
	if len(args) > 0 {
		path = args[0]
	} else if _, err := os.Stat(path); os.IsNotExist(err) {
		c.Logger.Debug("no site file, using defaults", "file", path)
		return config.Default(), nil
	}
	site, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded site file", "file", path, "variants", len(site.Variants))
	return site, nil
}

// parseFormats parses a comma-separated format string into a slice. An empty
// string selects the formats configured per variant.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
