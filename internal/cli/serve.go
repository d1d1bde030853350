package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/tilefield/tilefield/internal/server"
	"github.com/tilefield/tilefield/pkg/observability"
	"github.com/tilefield/tilefield/pkg/pipeline"
)

// serveOpts holds the flags of the serve command.
type serveOpts struct {
	addr      string
	noMetrics bool
	cache     cacheFlags
	pipeline  pipeline.Options
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve [config]",
		Short: "Serve variants over HTTP",
		Long: `Serve the variants of a site file over HTTP.

Artifacts are generated on first request and cached. Point --cache-url at a
Redis instance to share the cache between replicas.`,
		Example: `  tilefield serve
  tilefield serve site/tilefield.yaml --addr :9000
  curl localhost:8080/variants/default.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&opts.noMetrics, "no-metrics", false, "disable the /metrics endpoint")
	cmd.Flags().StringVar(&opts.pipeline.ClassPrefix, "class-prefix", "", "CSS class prefix (default: tile)")
	cmd.Flags().BoolVar(&opts.pipeline.Animation, "animate", false, "embed the default grow/shrink animation")
	opts.cache.register(cmd)
	completeSite(cmd, "")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, args []string, opts serveOpts) error {
	site, err := c.loadSite(args)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	cfg := server.Config{
		Site:    site,
		Runner:  runner,
		Options: opts.pipeline,
		Logger:  c.Logger,
	}
	if !opts.noMetrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		observability.NewPrometheus(reg).Register()
		defer observability.Reset()
		cfg.Metrics = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	srv, err := server.New(cfg)
	if err != nil {
		return err
	}

	printInfo("Serving %d variant(s)", len(site.Variants))
	printKeyValue("Address", opts.addr)
	printKeyValue("Variants", StyleLink.Render(fmt.Sprintf("http://localhost%s/variants", displayAddr(opts.addr))))
	if !opts.noMetrics {
		printKeyValue("Metrics", StyleLink.Render(fmt.Sprintf("http://localhost%s/metrics", displayAddr(opts.addr))))
	}
	printNewline()

	if err := srv.ListenAndServe(ctx, opts.addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	printSuccess("Server stopped")
	return nil
}

// displayAddr strips the host from addr so it can follow "localhost".
func displayAddr(addr string) string {
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		return addr[i:]
	}
	return ":" + addr
}
