// Package commands implements the salesctl command tree.
package commands

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	salesclient "github.com/mamadbah2/salesboard/pkg/clients/sales"
)

const version = "0.1.0"

// ClientFactory builds an API client for a server base URL.
type ClientFactory func(server string, timeout time.Duration) salesclient.Client

type options struct {
	server    string
	timeout   time.Duration
	newClient ClientFactory
	out       io.Writer
}

func (o *options) client() salesclient.Client {
	return o.newClient(o.server, o.timeout)
}

func (o *options) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), o.timeout+5*time.Second)
}

// NewRootCommand builds salesctl. A nil factory uses the resty client; a nil
// out writes to stdout.
func NewRootCommand(factory ClientFactory, out io.Writer) *cobra.Command {
	if factory == nil {
		factory = func(server string, timeout time.Duration) salesclient.Client {
			return salesclient.NewClient(server, timeout)
		}
	}
	if out == nil {
		out = os.Stdout
	}
	opts := &options{newClient: factory, out: out}

	root := &cobra.Command{
		Use:     "salesctl",
		Short:   "Browse sales records from the terminal",
		Version: version,
		Long: `A command-line client for the salesboard API. Lists sales with the same
search, filters, sorting and pagination as the dashboard, looks up single
records and shows the available filter values.`,
		Example: `  # First page, newest first
  $ salesctl list

  # Two regions, sorted by quantity
  $ salesctl list --region North,East --sort-by quantity --sort-order desc

  # One record by transaction id
  $ salesctl get 1001`,
		SilenceUsage: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(out)

	root.PersistentFlags().StringVarP(&opts.server, "server", "s", envOr("SALES_API_URL", "http://localhost:4000"), "salesboard API base URL")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 15*time.Second, "request timeout")

	root.AddCommand(newListCommand(opts))
	root.AddCommand(newGetCommand(opts))
	root.AddCommand(newFiltersCommand(opts))

	return root
}

// Execute runs salesctl with the process arguments.
func Execute() error {
	return NewRootCommand(nil, nil).Execute()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
