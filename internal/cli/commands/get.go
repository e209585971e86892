package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	salesclient "github.com/mamadbah2/salesboard/pkg/clients/sales"
)

func newGetCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "show one sale by document id or transaction id",
		Example: `  $ salesctl get 1001
  $ salesctl get 6412f0c2a1b2c3d4e5f60718`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.requestContext()
			defer cancel()

			sale, err := opts.client().GetSale(ctx, args[0])
			if errors.Is(err, salesclient.ErrNotFound) {
				return fmt.Errorf("sale %s not found", args[0])
			}
			if err != nil {
				return fmt.Errorf("get sale: %w", err)
			}

			renderSale(opts.out, sale)
			return nil
		},
	}
}
