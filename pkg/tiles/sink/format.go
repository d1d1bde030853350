package sink

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tilefield/tilefield/pkg/errors"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatHTML = "html"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
	FormatHTML: true,
}

// ContentTypes maps formats to HTTP content types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatJSON: "application/json",
	FormatHTML: "text/html; charset=utf-8",
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", f, formatList())
		}
	}
	return nil
}

func formatList() string {
	var names []string
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}

// Filename returns the output file name for a variant and format.
func Filename(variant, format string) string {
	return fmt.Sprintf("%s.%s", variant, format)
}
