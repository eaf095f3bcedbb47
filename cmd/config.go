package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := wireApp(cmd, opts)
			if err != nil {
				return err
			}

			encoded, err := app.config.MarshalTOML()
			if err != nil {
				return err
			}

			if app.config.Source != "" {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "# source: %s\n", app.config.Source); err != nil {
					return err
				}
			}

			_, err = cmd.OutOrStdout().Write(encoded)
			return err
		},
	}
}
