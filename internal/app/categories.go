package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vodtools/vodindex/internal/config"
	"github.com/vodtools/vodindex/internal/mediator"
)

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories [KEY]",
		Short: "List the subcategories of a category",
		Long:  "List key and name of every child of KEY (default: the video-on-demand root).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := config.CategoryDefault
			if len(args) == 1 {
				key = args[0]
			}
			client := mediator.New(settings.APIBase, settings.UTCOffset)
			cat, err := client.GetCategory(settings.Lang, key)
			if err != nil {
				return err
			}
			for _, sub := range cat.Subcategories {
				fmt.Printf("%s  %s\n", sub.Key, sub.Name)
			}
			return nil
		},
	}
}
