package sink

import (
	"testing"

	"github.com/tilefield/tilefield/pkg/errors"
)

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"none", nil, false},
		{"svg", []string{"svg"}, false},
		{"all", []string{"svg", "json", "html"}, false},
		{"png", []string{"png"}, true},
		{"mixed", []string{"svg", "pdf"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("wrong error code: %v", err)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("hero", "svg"); got != "hero.svg" {
		t.Errorf("Filename() = %q", got)
	}
}

func TestContentTypesCoverFormats(t *testing.T) {
	for f := range ValidFormats {
		if ContentTypes[f] == "" {
			t.Errorf("no content type for %s", f)
		}
	}
}
