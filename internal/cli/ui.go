package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tilefield/tilefield/pkg/pipeline"
)

// =============================================================================
// Colors and Styles
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// Shared styles for command output.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleLink      = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand  = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey      = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// stdout receives all status output. Tests may swap it.
var stdout io.Writer = os.Stdout

func writeLine(s string) { fmt.Fprintln(stdout, s) }

// =============================================================================
// Status Lines
// =============================================================================

func printSuccess(format string, args ...any) {
	writeLine(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	writeLine(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	writeLine(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	writeLine("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	writeLine("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	writeLine(styleKey.Render(key) + " " + StyleValue.Render(value))
}

func printNextStep(description, cmd string) {
	writeLine(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() { writeLine("") }

// =============================================================================
// Stats
// =============================================================================

// printStats prints one line of field statistics. Cached artifacts skip the
// layout, so only their status is shown.
func printStats(stats pipeline.Stats, cached bool) {
	writeLine("  " + statsLine(stats, cached))
}

func statsLine(stats pipeline.Stats, cached bool) string {
	if cached {
		return styleCached.Render("cached")
	}
	parts := []string{
		fmt.Sprintf("%d tiles", stats.Cells),
		fmt.Sprintf("%d icons", stats.Icons),
	}
	if stats.Dropped > 0 {
		parts = append(parts, fmt.Sprintf("%d dropped", stats.Dropped))
	}
	if stats.Excluded > 0 {
		parts = append(parts, fmt.Sprintf("%d excluded", stats.Excluded))
	}
	parts = append(parts, "fresh")

	sep := StyleDim.Render(" · ")
	for i, p := range parts[:len(parts)-1] {
		parts[i] = StyleDim.Render(p)
	}
	parts[len(parts)-1] = styleComputed.Render(parts[len(parts)-1])
	return strings.Join(parts, sep)
}
