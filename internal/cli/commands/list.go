package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/salesboard/internal/domain/models"
)

func newListCommand(opts *options) *cobra.Command {
	var params models.ListParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "list sales matching search and filters",
		Long: `List one page of sales. Multi-value filters take comma-separated values;
values inside one filter are alternatives, different filters must all match.`,
		Example: `  $ salesctl list --search rao
  $ salesctl list --tags organic,skincare --payment UPI --page 2
  $ salesctl list --age-min 25 --age-max 40 --start-date 2023-01-01 --end-date 2023-03-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := opts.requestContext()
			defer cancel()

			page, err := opts.client().ListSales(ctx, params)
			if err != nil {
				return fmt.Errorf("list sales: %w", err)
			}

			renderPage(opts.out, page)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&params.Search, "search", "q", "", "substring of customer name or phone number")
	f.StringVar(&params.Region, "region", "", "customer regions")
	f.StringVar(&params.Gender, "gender", "", "genders")
	f.StringVar(&params.AgeMin, "age-min", "", "minimum age")
	f.StringVar(&params.AgeMax, "age-max", "", "maximum age")
	f.StringVar(&params.Category, "category", "", "product categories")
	f.StringVar(&params.Tags, "tags", "", "tags")
	f.StringVar(&params.Payment, "payment", "", "payment methods")
	f.StringVar(&params.StartDate, "start-date", "", "earliest date (YYYY-MM-DD)")
	f.StringVar(&params.EndDate, "end-date", "", "latest date, whole day included (YYYY-MM-DD)")
	f.StringVar(&params.SortBy, "sort-by", "", "date, quantity or customerName")
	f.StringVar(&params.SortOrder, "sort-order", "", "asc or desc")
	f.StringVarP(&params.Page, "page", "p", "", "page number")
	f.StringVarP(&params.Limit, "limit", "l", "", "records per page")

	return cmd
}
