package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vodtools/vodindex/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or write the config file",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "save",
			Short: "Write the effective settings to the config file",
			Long:  "Writes the persistent settings (language, quality, categories, paths, rate limit) to " + config.DefaultPath() + " so they apply to every future run.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := config.Save(settings); err != nil {
					return err
				}
				ok("wrote %s", config.DefaultPath())
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file path",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Println(config.DefaultPath())
			},
		},
	)
	return cmd
}
