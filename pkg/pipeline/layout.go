package pipeline

import (
	"fmt"

	"github.com/tilefield/tilefield/pkg/config"
	"github.com/tilefield/tilefield/pkg/icons"
	"github.com/tilefield/tilefield/pkg/tiles"
)

// =============================================================================
// Resolve
// =============================================================================

// IconLoader returns the icon pool for a directory.
type IconLoader func(dir string) ([]string, error)

// LoadIcons reads the icon pool from dir. An empty dir means no icons.
func LoadIcons(dir string) ([]string, error) {
	if dir == "" {
		return nil, nil
	}
	list, err := icons.Load(dir)
	if err != nil {
		return nil, err
	}
	return icons.Markup(list), nil
}

// ResolveJobs resolves the named variants of site (all when names is empty).
// Icon directories shared by several variants are read once.
func ResolveJobs(site *config.File, names []string, load IconLoader) ([]Job, error) {
	if load == nil {
		load = LoadIcons
	}
	variants, err := site.Select(names...)
	if err != nil {
		return nil, err
	}

	pools := make(map[string][]string)
	jobs := make([]Job, 0, len(variants))
	for _, v := range variants {
		dir := site.IconDir(v)
		pool, ok := pools[dir]
		if !ok {
			if pool, err = load(dir); err != nil {
				return nil, fmt.Errorf("variant %s: %w", v.Name, err)
			}
			pools[dir] = pool
		}

		cfg, err := v.Config(tiles.DefaultConfig(), pool)
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", v.Name, err)
		}
		jobs = append(jobs, Job{Variant: v.Name, Config: cfg})
	}
	return jobs, nil
}

// =============================================================================
// Layout
// =============================================================================

// Layout computes the field for a job.
func Layout(job Job) (*tiles.Field, error) {
	f, err := tiles.Layout(job.Config)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", job.Variant, err)
	}
	return f, nil
}
