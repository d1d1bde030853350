package pipeline

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/tilefield/tilefield/pkg/errors"
	"github.com/tilefield/tilefield/pkg/tiles/sink"
)

// WriteArtifacts writes every artifact of res to dir as <variant>.<format>
// and returns the written paths in format order.
func WriteArtifacts(dir string, res *Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create output dir %s", dir)
	}

	formats := make([]string, 0, len(res.Artifacts))
	for f := range res.Artifacts {
		formats = append(formats, f)
	}
	slices.Sort(formats)

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := filepath.Join(dir, sink.Filename(res.Variant, format))
		if err := os.WriteFile(path, res.Artifacts[format], 0644); err != nil {
			return paths, errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
