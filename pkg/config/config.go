// Package config loads site configuration files describing background
// variants.
//
// A site file names an output directory, a default icon directory and any
// number of variants. Every tile parameter of a variant is optional: unset
// fields keep the values of [github.com/tilefield/tilefield/pkg/tiles.DefaultConfig].
//
//	output_dir = "public/generated"
//	icons = "public/img/icon"
//
//	[[variant]]
//	name = "hero"
//	formats = ["svg", "html"]
//	exclusions = [{x = -6, y = 2, x2 = 6, y2 = 6}]
//
//	[variant.seeds]
//	missing = 11
//
// TOML, YAML and JSON are accepted; the format is chosen by file extension.
package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/tilefield/tilefield/pkg/errors"
	"github.com/tilefield/tilefield/pkg/tiles/sink"
)

// DefaultFile is the config file name looked up when none is given.
const DefaultFile = "tilefield.toml"

// DefaultOutputDir is used when a site file does not set output_dir.
const DefaultOutputDir = "generated"

// DefaultVariant names the variant used when a site file defines none.
const DefaultVariant = "default"

// Supported encodings.
const (
	EncodingTOML = "toml"
	EncodingYAML = "yaml"
	EncodingJSON = "json"
)

// File is a decoded site configuration.
type File struct {
	OutputDir string    `json:"output_dir,omitempty" toml:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	Icons     string    `json:"icons,omitempty" toml:"icons,omitempty" yaml:"icons,omitempty"`
	Formats   []string  `json:"formats,omitempty" toml:"formats,omitempty" yaml:"formats,omitempty"`
	Variants  []Variant `json:"variants" toml:"variant" yaml:"variants"`

	dir string // directory of the file, for resolving relative paths
}

// Default returns a site file with a single default variant.
func Default() *File {
	return &File{
		OutputDir: DefaultOutputDir,
		Variants:  []Variant{{Name: DefaultVariant}},
	}
}

// Load reads and validates the site file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read config %s", path)
	}
	enc, err := EncodingFor(path)
	if err != nil {
		return nil, err
	}
	f, err := Decode(bytes.NewReader(data), enc)
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	f.dir = filepath.Dir(path)
	return f, nil
}

// EncodingFor picks the encoding from the file extension.
func EncodingFor(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return EncodingTOML, nil
	case ".yaml", ".yml":
		return EncodingYAML, nil
	case ".json":
		return EncodingJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "unsupported config extension: %q (use .toml, .yaml, .yml or .json)", filepath.Ext(path))
}

// Decode reads a site file in the given encoding and validates it.
func Decode(r io.Reader, encoding string) (*File, error) {
	var f File
	switch encoding {
	case EncodingTOML:
		md, err := toml.NewDecoder(r).Decode(&f)
		if err != nil {
			return nil, err
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown key: %s", keys[0])
		}
	case EncodingYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && err != io.EOF {
			return nil, err
		}
	case EncodingJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown encoding: %q", encoding)
	}
	if len(f.Variants) == 0 {
		f.Variants = []Variant{{Name: DefaultVariant}}
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks names, paths and formats. Tile parameters are validated when
// a variant is resolved with [Variant.Config].
func (f *File) Validate() error {
	if f.OutputDir != "" {
		if err := errors.ValidatePath(f.OutputDir); err != nil {
			return err
		}
	}
	if f.Icons != "" {
		if err := errors.ValidatePath(f.Icons); err != nil {
			return err
		}
	}
	if err := sink.ValidateFormats(f.Formats); err != nil {
		return err
	}

	seen := make(map[string]bool, len(f.Variants))
	for _, v := range f.Variants {
		if err := errors.ValidateVariantName(v.Name); err != nil {
			return err
		}
		if seen[v.Name] {
			return errors.New(errors.ErrCodeInvalidVariant, "duplicate variant: %s", v.Name)
		}
		seen[v.Name] = true
		if err := sink.ValidateFormats(v.Formats); err != nil {
			return err
		}
		if v.Icons != nil && *v.Icons != "" {
			if err := errors.ValidatePath(*v.Icons); err != nil {
				return err
			}
		}
	}
	return nil
}

// Names returns the variant names in file order.
func (f *File) Names() []string {
	names := make([]string, len(f.Variants))
	for i, v := range f.Variants {
		names[i] = v.Name
	}
	return names
}

// Lookup returns the variant with the given name.
func (f *File) Lookup(name string) (Variant, error) {
	for _, v := range f.Variants {
		if v.Name == name {
			return v, nil
		}
	}
	return Variant{}, errors.New(errors.ErrCodeInvalidVariant, "unknown variant: %q (have %s)", name, strings.Join(f.Names(), ", "))
}

// Select returns the named variants, or all of them when names is empty.
func (f *File) Select(names ...string) ([]Variant, error) {
	if len(names) == 0 {
		return f.Variants, nil
	}
	out := make([]Variant, 0, len(names))
	for _, n := range names {
		v, err := f.Lookup(n)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Output returns the resolved output directory.
func (f *File) Output() string {
	if f.OutputDir == "" {
		return f.Resolve(DefaultOutputDir)
	}
	return f.Resolve(f.OutputDir)
}

// IconDir returns the icon directory for v, or "" if v uses no icons.
func (f *File) IconDir(v Variant) string {
	dir := f.Icons
	if v.Icons != nil {
		dir = *v.Icons
	}
	if dir == "" {
		return ""
	}
	return f.Resolve(dir)
}

// FormatsFor returns the formats to render for v: its own list, else the
// file-level list, else SVG.
func (f *File) FormatsFor(v Variant) []string {
	switch {
	case len(v.Formats) > 0:
		return v.Formats
	case len(f.Formats) > 0:
		return f.Formats
	}
	return []string{sink.FormatSVG}
}

// Resolve makes a relative path relative to the directory of the file.
func (f *File) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || f.dir == "" {
		return path
	}
	return filepath.Join(f.dir, path)
}

// Dir returns the directory the file was loaded from.
func (f *File) Dir() string { return f.dir }

// Encode writes f in the given encoding.
func Encode(w io.Writer, f *File, encoding string) error {
	switch encoding {
	case EncodingTOML:
		return toml.NewEncoder(w).Encode(f)
	case EncodingYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return err
		}
		return enc.Close()
	case EncodingJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(f)
	}
	return errors.New(errors.ErrCodeInvalidConfig, "unknown encoding: %q", encoding)
}
