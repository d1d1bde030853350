package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/tilefield/tilefield/pkg/config"
	"github.com/tilefield/tilefield/pkg/tiles"
)

// variantsCommand lists the variants of a site file.
func (c *CLI) variantsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "variants [config]",
		Short: "List the variants of a site file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := c.loadSite(args)
			if err != nil {
				return err
			}
			out, err := variantTable(site)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	completeSite(cmd, "")
	return cmd
}

// variantTable renders one row per variant with its resolved grid. Icons are
// not loaded; the column shows the configured directory.
func variantTable(site *config.File) (string, error) {
	rows := make([][]string, 0, len(site.Variants))
	for _, v := range site.Variants {
		cfg, err := v.Config(tiles.DefaultConfig(), nil)
		if err != nil {
			return "", fmt.Errorf("variant %s: %w", v.Name, err)
		}
		icons := site.IconDir(v)
		if icons == "" {
			icons = "—"
		}
		rows = append(rows, []string{
			v.Name,
			fmt.Sprintf("%dx%d", cfg.CountX, cfg.CountY),
			fmt.Sprintf("%gx%g", cfg.Width(), cfg.Height()),
			fmt.Sprintf("%d", len(cfg.Exclusions)),
			strings.Join(site.FormatsFor(v), ","),
			icons,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Variant", "Grid", "Pixels", "Excl", "Formats", "Icons").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleHighlight
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		})
	return t.Render(), nil
}
