package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vodtools/vodindex/internal/mediator"
)

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List available language codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := mediator.New(settings.APIBase, settings.UTCOffset)
			langs, err := client.Languages()
			if err != nil {
				return err
			}
			for _, l := range langs {
				fmt.Printf("%3s  %s\n", l.Code, l.Name)
			}
			return nil
		},
	}
}
