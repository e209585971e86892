package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFiltersCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "show the values available for each filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := opts.requestContext()
			defer cancel()

			catalog, err := opts.client().Filters(ctx)
			if err != nil {
				return fmt.Errorf("get filters: %w", err)
			}

			renderCatalog(opts.out, catalog)
			return nil
		},
	}
}
