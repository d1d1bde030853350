package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tilefield/tilefield/pkg/cache"
	"github.com/tilefield/tilefield/pkg/config"
	"github.com/tilefield/tilefield/pkg/errors"
	"github.com/tilefield/tilefield/pkg/tiles"
)

// memCache is an in-memory cache that counts operations.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

var _ cache.Cache = (*memCache)(nil)

func smallJob(t *testing.T, name string) Job {
	t.Helper()
	cfg, err := tiles.NewBuilder().Grid(9, 4).Icons("<a/>", "<b/>", "<c/>").Build()
	if err != nil {
		t.Fatal(err)
	}
	return Job{Variant: name, Config: cfg}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"default", nil, false},
		{"all", []string{"svg", "json", "html"}, false},
		{"png", []string{"png"}, true},
		{"case", []string{"SVG"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{Formats: tt.formats}
			err := opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && (opts.RunID == "" || opts.Logger == nil || opts.Concurrency < 1) {
				t.Errorf("defaults not set: %+v", opts)
			}
		})
	}
}

func TestArtifactKeyOptsTemplate(t *testing.T) {
	opts := Options{HTMLTemplate: "<div>{{svg}}</div>"}
	if opts.ArtifactKeyOpts("svg").Template != "" {
		t.Error("template should not affect svg keys")
	}
	if opts.ArtifactKeyOpts("html").Template == "" {
		t.Error("template should affect html keys")
	}
}

func TestExecuteRendersFormats(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), smallJob(t, "hero"), Options{Formats: []string{"svg", "json", "html"}})
	if err != nil {
		t.Fatal(err)
	}

	if res.Field == nil {
		t.Fatal("Field should be set on a fresh run")
	}
	for _, f := range []string{"svg", "json", "html"} {
		if len(res.Artifacts[f]) == 0 {
			t.Errorf("missing %s artifact", f)
		}
	}
	if !strings.Contains(string(res.Artifacts["html"]), string(res.Artifacts["svg"])) {
		t.Error("html should embed the svg")
	}
	if !strings.Contains(string(res.Artifacts["html"]), `id="tilefield-hero"`) {
		t.Error("html container id should name the variant")
	}
	if res.Stats.Cells != len(res.Field.Cells) || res.Stats.Cells == 0 {
		t.Errorf("Stats.Cells = %d", res.Stats.Cells)
	}
	if res.Stats.Cells+res.Stats.Dropped != 9*4 {
		t.Errorf("cells %d + dropped %d != 36", res.Stats.Cells, res.Stats.Dropped)
	}
	if res.RunID == "" || res.ConfigHash == "" {
		t.Error("run id and config hash should be set")
	}
}

func TestExecuteDeterministic(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	a, err := r.Execute(context.Background(), smallJob(t, "hero"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := r.Execute(context.Background(), smallJob(t, "hero"), Options{})
	if string(a.Artifacts["svg"]) != string(b.Artifacts["svg"]) {
		t.Error("same job produced different svg")
	}
	if a.ConfigHash != b.ConfigHash {
		t.Error("same job produced different hashes")
	}
}

func TestExecuteUsesCache(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := NewRunner(mc, nil, nil)
	opts := Options{Formats: []string{"svg", "json"}}

	first, err := r.Execute(ctx, smallJob(t, "hero"), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run should miss")
	}
	if mc.sets != 2 {
		t.Errorf("sets = %d, want 2", mc.sets)
	}

	second, err := r.Execute(ctx, smallJob(t, "hero"), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.RenderHit || second.CacheInfo.Hits != 2 {
		t.Errorf("second run CacheInfo = %+v", second.CacheInfo)
	}
	if second.Field != nil {
		t.Error("cached run should skip layout")
	}
	if string(first.Artifacts["svg"]) != string(second.Artifacts["svg"]) {
		t.Error("cached svg differs")
	}

	refreshed, err := r.Execute(ctx, smallJob(t, "hero"), Options{Formats: opts.Formats, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.CacheInfo.RenderHit || refreshed.Field == nil {
		t.Error("refresh should bypass cache reads")
	}

	// A different config misses.
	other := smallJob(t, "hero")
	other.Config.Seeds.Missing = 42
	res, _ := r.Execute(ctx, other, opts)
	if res.CacheInfo.RenderHit {
		t.Error("changed seed should miss")
	}
}

func TestExecuteInvalidRect(t *testing.T) {
	job := smallJob(t, "bad")
	job.Config.Exclusions = []tiles.Rect{{X: 2, X2: -2}}

	mc := newMemCache()
	_, err := NewRunner(mc, nil, nil).Execute(context.Background(), job, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidRect) {
		t.Fatalf("error = %v, want INVALID_RECT", err)
	}
	if mc.sets != 0 {
		t.Error("nothing should be cached on failure")
	}
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewRunner(nil, nil, nil).Execute(ctx, smallJob(t, "x"), Options{}); err != context.Canceled {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestExecuteAllKeepsOrder(t *testing.T) {
	jobs := []Job{smallJob(t, "a"), smallJob(t, "b"), smallJob(t, "c")}
	jobs[1].Config.Seeds.Color = 77

	results, err := NewRunner(nil, nil, nil).ExecuteAll(context.Background(), jobs, Options{Concurrency: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	for i, res := range results {
		if res.Variant != jobs[i].Variant {
			t.Errorf("results[%d] = %s, want %s", i, res.Variant, jobs[i].Variant)
		}
		if res.RunID != results[0].RunID {
			t.Error("all results of a run should share its id")
		}
	}
}

func writeSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	iconDir := filepath.Join(dir, "icons")
	if err := os.MkdirAll(iconDir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"b.svg", "a.svg"} {
		body := "<svg id=\"" + strings.TrimSuffix(name, ".svg") + "\"/>"
		if err := os.WriteFile(filepath.Join(iconDir, name), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	site := `
output_dir = "out"
icons = "icons"

[[variant]]
name = "hero"
formats = ["svg", "html"]
count_x = 11
count_y = 5

[[variant]]
name = "plain"
icons = ""
count_x = 5
count_y = 3
`
	path := filepath.Join(dir, "tilefield.toml")
	if err := os.WriteFile(path, []byte(site), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolveJobs(t *testing.T) {
	site, err := config.Load(writeSite(t))
	if err != nil {
		t.Fatal(err)
	}

	loads := 0
	counting := func(dir string) ([]string, error) {
		loads++
		return LoadIcons(dir)
	}
	jobs, err := ResolveJobs(site, nil, counting)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 2 || jobs[0].Variant != "hero" || jobs[1].Variant != "plain" {
		t.Fatalf("jobs = %+v", jobs)
	}
	if got := jobs[0].Config.Icons; len(got) != 2 || got[0] != `<svg id="a"/>` {
		t.Errorf("hero icons = %v", got)
	}
	if len(jobs[1].Config.Icons) != 0 {
		t.Errorf("plain should have no icons, got %v", jobs[1].Config.Icons)
	}
	if jobs[0].Config.CountX != 11 || jobs[0].Config.TileSize != tiles.DefaultConfig().TileSize {
		t.Errorf("hero config = %+v", jobs[0].Config)
	}
	if loads != 2 {
		t.Errorf("loads = %d, want 2", loads)
	}

	if _, err := ResolveJobs(site, []string{"missing"}, nil); !errors.Is(err, errors.ErrCodeInvalidVariant) {
		t.Errorf("unknown variant error = %v", err)
	}
}

func TestResolveJobsMissingIcons(t *testing.T) {
	path := writeSite(t)
	if err := os.RemoveAll(filepath.Join(filepath.Dir(path), "icons")); err != nil {
		t.Fatal(err)
	}
	site, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ResolveJobs(site, []string{"hero"}, nil); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestGenerateSiteAndWrite(t *testing.T) {
	site, err := config.Load(writeSite(t))
	if err != nil {
		t.Fatal(err)
	}

	results, err := NewRunner(nil, nil, nil).GenerateSite(context.Background(), site, nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if len(results[0].Artifacts) != 2 || len(results[1].Artifacts) != 1 {
		t.Errorf("artifact counts = %d, %d", len(results[0].Artifacts), len(results[1].Artifacts))
	}

	var written []string
	for _, res := range results {
		paths, err := WriteArtifacts(site.Output(), res)
		if err != nil {
			t.Fatal(err)
		}
		written = append(written, paths...)
	}
	want := []string{"hero.html", "hero.svg", "plain.svg"}
	if len(written) != len(want) {
		t.Fatalf("written = %v", written)
	}
	for i, p := range written {
		if filepath.Base(p) != want[i] {
			t.Errorf("written[%d] = %s, want %s", i, filepath.Base(p), want[i])
		}
		data, err := os.ReadFile(p)
		if err != nil || len(data) == 0 {
			t.Errorf("read %s: %v", p, err)
		}
	}
}

func TestGenerateSiteFormatOverride(t *testing.T) {
	site, err := config.Load(writeSite(t))
	if err != nil {
		t.Fatal(err)
	}
	results, err := NewRunner(nil, nil, nil).GenerateSite(context.Background(), site, []string{"hero"}, Options{Formats: []string{"json"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || len(results[0].Artifacts) != 1 || results[0].Artifacts["json"] == nil {
		t.Errorf("artifacts = %v", results[0].Artifacts)
	}
}

func TestRendererFormats(t *testing.T) {
	field, err := Layout(smallJob(t, "hero"))
	if err != nil {
		t.Fatal(err)
	}
	r := renderer{field: field, variant: "hero", opts: Options{ClassPrefix: "bg"}}

	svg, err := r.render("svg")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svg), `class="bg-field"`) {
		t.Error("svg ignores the class prefix")
	}

	html, err := r.render("html")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(html), string(svg)) {
		t.Error("html does not embed the rendered svg")
	}
	if !strings.Contains(string(html), `id="tilefield-hero"`) {
		t.Error("html container id does not name the variant")
	}

	if _, err := r.render("png"); err == nil {
		t.Error("render(png) = nil error, want unsupported format")
	}
}
