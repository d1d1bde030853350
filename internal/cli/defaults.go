package cli

import (
	"github.com/spf13/cobra"

	"github.com/tilefield/tilefield/pkg/config"
	"github.com/tilefield/tilefield/pkg/tiles"
)

// defaultsCommand prints a site file with every tile parameter of the default
// variant spelled out.
func (c *CLI) defaultsCommand() *cobra.Command {
	var (
		encoding string
		name     string
	)

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the default variant as a site file",
		Long: `Print a site file whose single variant spells out every default tile
parameter. Redirect it to tilefield.toml as a starting point.`,
		Example: `  tilefield defaults > tilefield.toml
  tilefield defaults --encoding yaml --name hero`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			site := config.Default()
			site.Variants = []config.Variant{config.FromConfig(name, tiles.DefaultConfig())}
			if err := site.Validate(); err != nil {
				return err
			}
			return config.Encode(cmd.OutOrStdout(), site, encoding)
		},
	}

	cmd.Flags().StringVarP(&encoding, "encoding", "e", config.EncodingTOML, "output encoding: toml, yaml, json")
	cmd.Flags().StringVar(&name, "name", config.DefaultVariant, "variant name")
	_ = cmd.RegisterFlagCompletionFunc("encoding", completeEncodings)

	return cmd
}
