// Package server serves generated backgrounds over HTTP.
//
// Routes:
//
//	GET /healthz                   liveness and build version
//	GET /variants                  JSON list of variants
//	GET /variants/{name}.{format}  one rendered artifact (svg, json, html)
//	GET /metrics                   Prometheus metrics, when enabled
//
// Artifacts are generated on first request through the pipeline runner and
// served from its cache afterwards. Responses carry the configuration hash as
// a strong ETag.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tilefield/tilefield/pkg/buildinfo"
	"github.com/tilefield/tilefield/pkg/config"
	tferrors "github.com/tilefield/tilefield/pkg/errors"
	"github.com/tilefield/tilefield/pkg/pipeline"
	"github.com/tilefield/tilefield/pkg/tiles/sink"
)

// Config configures a Server.
type Config struct {
	Site    *config.File
	Runner  *pipeline.Runner
	Options pipeline.Options // render options applied to every request
	Logger  *log.Logger

	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
}

// Server is an HTTP front end for a site file.
type Server struct {
	site    *config.File
	runner  *pipeline.Runner
	opts    pipeline.Options
	logger  *log.Logger
	metrics http.Handler
	jobs    map[string]pipeline.Job
}

// New resolves every variant of the site up front so icon and configuration
// errors surface before the server starts listening.
func New(cfg Config) (*Server, error) {
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Logger == nil {
		cfg.Logger = cfg.Runner.Logger
	}
	cfg.Options.Logger = cfg.Logger

	jobs, err := pipeline.ResolveJobs(cfg.Site, nil, nil)
	if err != nil {
		return nil, err
	}
	s := &Server{
		site:    cfg.Site,
		runner:  cfg.Runner,
		opts:    cfg.Options,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
		jobs:    make(map[string]pipeline.Job, len(jobs)),
	}
	for _, job := range jobs {
		s.jobs[job.Variant] = job
	}
	return s, nil
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/variants", s.handleList)
	r.Get("/variants/{name}.{format}", s.handleArtifact)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", addr, "variants", len(s.jobs))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

type variantInfo struct {
	Name    string   `json:"name"`
	Grid    [2]int   `json:"grid"`
	Width   float64  `json:"width"`
	Height  float64  `json:"height"`
	Icons   int      `json:"icons"`
	Formats []string `json:"formats"`
	URLs    []string `json:"urls"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	out := make([]variantInfo, 0, len(s.jobs))
	for _, name := range s.site.Names() {
		job := s.jobs[name]
		v, _ := s.site.Lookup(name)
		info := variantInfo{
			Name:    name,
			Grid:    [2]int{job.Config.CountX, job.Config.CountY},
			Width:   job.Config.Width(),
			Height:  job.Config.Height(),
			Icons:   len(job.Config.Icons),
			Formats: s.site.FormatsFor(v),
		}
		for _, f := range info.Formats {
			info.URLs = append(info.URLs, "/variants/"+sink.Filename(name, f))
		}
		out = append(out, info)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	format := chi.URLParam(r, "format")

	if err := sink.ValidateFormats([]string{format}); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	job, ok := s.jobs[name]
	if !ok {
		writeError(w, http.StatusNotFound, tferrors.New(tferrors.ErrCodeInvalidVariant, "unknown variant: %q", name))
		return
	}

	opts := s.opts
	opts.Formats = []string{format}
	opts.RunID = middleware.GetReqID(r.Context())
	res, err := s.runner.Execute(r.Context(), job, opts)
	if err != nil {
		s.logger.Error("generate failed", "variant", name, "format", format, "err", err)
		writeError(w, statusFor(err), err)
		return
	}

	etag := `"` + res.ConfigHash[:16] + "-" + format + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", sink.ContentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	code := tferrors.GetCode(err)
	if code == "" {
		code = tferrors.ErrCodeInternal
	}
	writeJSON(w, status, errorBody{Code: string(code), Message: tferrors.UserMessage(err)})
}

func statusFor(err error) int {
	switch {
	case tferrors.IsConfigError(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled):
		return 499
	}
	return http.StatusInternalServerError
}
