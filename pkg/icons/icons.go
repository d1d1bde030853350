// Package icons reads icon fragments from disk for the tile generator.
//
// Icons are plain SVG files, one per icon. Their contents are treated as
// opaque markup; only the order of the resulting pool matters to the layout.
// Files are sorted by name so the pool is identical on every platform,
// regardless of the order in which the filesystem lists directory entries.
package icons

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/tilefield/tilefield/pkg/errors"
)

// Ext is the file extension of icon files.
const Ext = ".svg"

var (
	xmlDeclRegex = regexp.MustCompile(`^<\?xml[^>]*\?>`)
	doctypeRegex = regexp.MustCompile(`^<!DOCTYPE[^>]*>`)
)

// Icon is one loaded fragment.
type Icon struct {
	Name   string // file name, without directory
	Markup string // normalized fragment
}

// Load reads every icon file in dir. A missing directory is a FILE_NOT_FOUND
// error; any unreadable file aborts the load.
func Load(dir string) ([]Icon, error) {
	return LoadFS(os.DirFS(dir), ".")
}

// LoadFS reads every icon file in dir within fsys, sorted by file name.
// Subdirectories and files without the .svg extension are skipped.
func LoadFS(fsys fs.FS, dir string) ([]Icon, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "icon directory %s", dir)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "list icon directory %s", dir)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.EqualFold(path.Ext(e.Name()), Ext) {
			continue
		}
		names = append(names, e.Name())
	}
	slices.Sort(names)

	icons := make([]Icon, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "read icon %s", name)
		}
		icons = append(icons, Icon{Name: name, Markup: Normalize(string(data))})
	}
	return icons, nil
}

// Markup returns the fragments of icons in order.
func Markup(icons []Icon) []string {
	out := make([]string, len(icons))
	for i, ic := range icons {
		out[i] = ic.Markup
	}
	return out
}

// Normalize trims whitespace and strips a leading XML declaration and
// DOCTYPE, which are not allowed inside another SVG document.
func Normalize(s string) string {
	s = strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
	s = strings.TrimSpace(xmlDeclRegex.ReplaceAllString(s, ""))
	s = strings.TrimSpace(doctypeRegex.ReplaceAllString(s, ""))
	return s
}
