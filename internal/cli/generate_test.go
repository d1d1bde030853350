package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tilefield/tilefield/pkg/errors"
)

func TestGenerateWritesConfiguredFormats(t *testing.T) {
	site := writeSiteFile(t)
	out := filepath.Join(t.TempDir(), "public")

	if _, err := execute(t, "generate", site, "--no-cache", "-o", out); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"hero.svg", "hero.json", "footer.html"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "footer.svg")); !os.IsNotExist(err) {
		t.Error("footer.svg written although footer only lists html")
	}
}

func TestGenerateSelectedVariantAndFormat(t *testing.T) {
	site := writeSiteFile(t)
	out := t.TempDir()

	if _, err := execute(t, "generate", site, "--no-cache", "-o", out, "--variant", "footer", "-f", "svg"); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "footer.svg" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("wrote %v, want [footer.svg]", names)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	site := writeSiteFile(t)
	a, b := t.TempDir(), t.TempDir()

	for _, out := range []string{a, b} {
		if _, err := execute(t, "generate", site, "--no-cache", "-o", out, "-f", "svg"); err != nil {
			t.Fatal(err)
		}
	}
	first, err := os.ReadFile(filepath.Join(a, "hero.svg"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(filepath.Join(b, "hero.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Error("two runs produced different SVG")
	}
}

func TestGenerateErrors(t *testing.T) {
	site := writeSiteFile(t)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad format", []string{"generate", site, "--no-cache", "-f", "png"}, errors.ErrCodeInvalidFormat},
		{"unknown variant", []string{"generate", site, "--no-cache", "--variant", "nope"}, errors.ErrCodeInvalidVariant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append(tt.args, "-o", t.TempDir())...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestDefaultsRoundTrip(t *testing.T) {
	for _, enc := range []string{"toml", "yaml", "json"} {
		t.Run(enc, func(t *testing.T) {
			out, err := execute(t, "defaults", "--encoding", enc, "--name", "hero")
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out, "hero") {
				t.Fatalf("output does not name the variant:\n%s", out)
			}

			path := filepath.Join(t.TempDir(), "site."+enc)
			if err := os.WriteFile(path, []byte(out), 0644); err != nil {
				t.Fatal(err)
			}
			table, err := execute(t, "variants", path)
			if err != nil {
				t.Fatalf("printed defaults do not load: %v", err)
			}
			if !strings.Contains(table, "41x14") {
				t.Errorf("variants table missing default grid:\n%s", table)
			}
		})
	}
}

func TestDefaultsBadEncoding(t *testing.T) {
	if _, err := execute(t, "defaults", "--encoding", "xml"); err == nil {
		t.Error("expected error for unknown encoding")
	}
}
