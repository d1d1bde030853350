package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tilefield/tilefield/pkg/pipeline"
	"github.com/tilefield/tilefield/pkg/tiles"
)

// previewCommand opens an interactive terminal preview of one variant.
func (c *CLI) previewCommand() *cobra.Command {
	var variant string

	cmd := &cobra.Command{
		Use:   "preview [config]",
		Short: "Preview a variant in the terminal",
		Long: `Preview a variant in the terminal.

Each tile is drawn with a shade matching its opacity; icon tiles are drawn as
diamonds. Keys re-seed individual random streams so the effect of every seed
can be explored without touching the site file:

  m  missing tiles     o  opacity     c  colors
  i  center icons      s  side icons  r  reset seeds
  x  show exclusions   q  quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := c.loadSite(args)
			if err != nil {
				return err
			}
			if variant == "" {
				variant = site.Variants[0].Name
			}
			jobs, err := pipeline.ResolveJobs(site, []string{variant}, nil)
			if err != nil {
				return err
			}
			m := newPreviewModel(jobs[0])
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&variant, "variant", "", "variant to preview (default: first in the site file)")
	completeSite(cmd, "variant")

	return cmd
}

// =============================================================================
// previewModel - Interactive field preview
// =============================================================================

var (
	previewKeyStyle  = lipgloss.NewStyle().Foreground(colorBlue)
	previewHelpStyle = lipgloss.NewStyle().Foreground(colorDim)
	previewErrStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// shades are indexed by rendered opacity, lightest first.
var shades = []string{"░░", "▒▒", "▓▓", "██"}

type previewModel struct {
	name         string
	base         tiles.Config
	cfg          tiles.Config
	field        *tiles.Field
	err          error
	showExcluded bool
}

func newPreviewModel(job pipeline.Job) previewModel {
	m := previewModel{name: job.Variant, base: job.Config, cfg: job.Config.Clone()}
	m.relayout()
	return m
}

func (m *previewModel) relayout() {
	m.field, m.err = tiles.Layout(m.cfg)
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	seeds := &m.cfg.Seeds
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "m":
		seeds.Missing++
	case "o":
		seeds.Opacity++
	case "c":
		seeds.Color++
	case "i":
		seeds.CenterIcons++
	case "s":
		seeds.SideIcons++
	case "r":
		m.cfg.Seeds = m.base.Seeds
	case "x":
		m.showExcluded = !m.showExcluded
		return m, nil
	default:
		return m, nil
	}
	m.relayout()
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("tilefield · " + m.name))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(previewErrStyle.Render(m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.grid())
	b.WriteString("\n")

	s := m.cfg.Seeds
	b.WriteString(previewHelpStyle.Render(fmt.Sprintf(
		"seeds  missing=%d opacity=%d color=%d center=%d side=%d",
		s.Missing, s.Opacity, s.Color, s.CenterIcons, s.SideIcons)))
	b.WriteString("\n")
	b.WriteString(previewHelpStyle.Render(fmt.Sprintf(
		"tiles  %d kept · %d dropped · %d excluded · %d icons",
		len(m.field.Cells), m.field.Dropped, m.field.Excluded, m.field.IconCount())))
	b.WriteString("\n\n")

	keys := []string{"m", "o", "c", "i", "s", "r", "x", "q"}
	labels := []string{"missing", "opacity", "color", "center", "side", "reset", "exclusions", "quit"}
	for i := range keys {
		b.WriteString(previewKeyStyle.Render(keys[i]) + " " + previewHelpStyle.Render(labels[i]) + "  ")
	}
	b.WriteString("\n")
	return b.String()
}

// grid draws one two-column glyph per cell.
func (m previewModel) grid() string {
	cfg := m.field.Config
	cx, _ := cfg.Center()

	var b strings.Builder
	for row := 0; row < cfg.CountY; row++ {
		for col := 0; col < cfg.CountX; col++ {
			cell, ok := m.field.Cells[tiles.Coord{Col: col, Row: row}]
			if !ok {
				if m.showExcluded && excluded(cfg.Exclusions, col-cx, row) {
					b.WriteString(previewHelpStyle.Render("··"))
				} else {
					b.WriteString("  ")
				}
				continue
			}
			b.WriteString(cellGlyph(cell))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func cellGlyph(c tiles.Cell) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color))
	if c.HasIcon() {
		if c.Group == tiles.IconCenter {
			return style.Foreground(colorCyan).Render("◆◆")
		}
		return style.Foreground(colorGray).Render("◇◇")
	}
	i := int(c.Opacity * float64(len(shades)))
	i = max(0, min(i, len(shades)-1))
	return style.Render(shades[i])
}

func excluded(rects []tiles.Rect, locX, row int) bool {
	for _, r := range rects {
		if r.Contains(locX, row) {
			return true
		}
	}
	return false
}
