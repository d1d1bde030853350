package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tilefield/tilefield/pkg/config"
	"github.com/tilefield/tilefield/pkg/pipeline"
	"github.com/tilefield/tilefield/pkg/tiles/sink"
)

// generateOpts holds the flags of the generate command.
type generateOpts struct {
	variants  []string // variants to generate; all when empty
	formats   string   // comma-separated override of the configured formats
	outputDir string   // overrides output_dir from the site file
	cache     cacheFlags
	pipeline  pipeline.Options
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate [config]",
		Short: "Generate background variants",
		Long: `Generate background variants from a site file.

The site file (tilefield.toml by default, or .yaml/.yml/.json) lists named
variants. Each variant is written to <output_dir>/<variant>.<format>.

Output is deterministic: the same configuration always produces the same
bytes, so results are cached locally between runs.`,
		Example: `  tilefield generate
  tilefield generate site/tilefield.toml --variant hero --format svg,html
  tilefield generate --output-dir public/generated --no-cache`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.pipeline.Formats = parseFormats(opts.formats)
			if err := sink.ValidateFormats(opts.pipeline.Formats); err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.variants, "variant", nil, "variant(s) to generate (default: all)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg, json, html (comma-separated; default: per variant)")
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "output directory (default: output_dir from the site file)")
	cmd.Flags().StringVar(&opts.pipeline.ClassPrefix, "class-prefix", "", "CSS class prefix (default: tile)")
	cmd.Flags().BoolVar(&opts.pipeline.Animation, "animate", false, "embed the default grow/shrink animation")
	cmd.Flags().BoolVar(&opts.pipeline.Refresh, "refresh", false, "ignore cached artifacts")
	cmd.Flags().IntVarP(&opts.pipeline.Concurrency, "jobs", "j", 0, "variants generated in parallel (default: number of CPUs)")
	opts.cache.register(cmd)

	completeSite(cmd, "variant")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, args []string, opts generateOpts) error {
	site, err := c.loadSite(args)
	if err != nil {
		return err
	}
	outputDir := opts.outputDir
	if outputDir == "" {
		outputDir = site.Output()
	}

	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.pipeline.Logger = c.Logger
	prog := newProgress(c.Logger)

	spin := newSpinner(ctx, "Generating backgrounds...")
	spin.Start()
	results, err := runner.GenerateSite(ctx, site, opts.variants, opts.pipeline)
	if err != nil {
		if spin.Cancelled() {
			spin.Stop()
			return ctx.Err()
		}
		spin.Fail("Generation failed")
		return err
	}
	spin.Stop()

	for _, res := range results {
		paths, err := pipeline.WriteArtifacts(outputDir, res)
		if err != nil {
			return err
		}
		printSuccess("%s", StyleHighlight.Render(res.Variant))
		printStats(res.Stats, res.CacheInfo.RenderHit)
		for _, p := range paths {
			printFile(p)
		}
	}

	prog.done(fmt.Sprintf("Generated %d variant(s)", len(results)))
	if len(args) == 0 && len(site.Variants) == 1 && site.Variants[0].Name == config.DefaultVariant {
		printNextStep("Customize", "tilefield defaults > "+config.DefaultFile)
	}
	return nil
}
