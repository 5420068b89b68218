// Command libctl manages the library catalog from the terminal through the
// same pages the admin panel uses.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"library-admin/internal/apiclient"
	"library-admin/internal/config"
	"library-admin/internal/logger"
	"library-admin/internal/notify"
	"library-admin/internal/page"
)

type cli struct {
	api     string
	timeout time.Duration
	debug   bool
	confirm page.Confirmer
	ws      *page.Workspace
}

func newRootCmd(confirm page.Confirmer) *cobra.Command {
	c := &cli{confirm: confirm}

	root := &cobra.Command{
		Use:               "libctl",
		Short:             "Manage publishers, categories, books, authors and borrowings",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.api, "api", "", "API base URL (overrides API_BASE_URL)")
	flags.DurationVar(&c.timeout, "timeout", 0, "request timeout, 0 for none (overrides API_TIMEOUT)")
	flags.BoolVar(&c.debug, "debug", false, "log every API request")

	root.AddCommand(c.listCmd(), c.createCmd(), c.updateCmd(), c.deleteCmd())
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.api != "" {
		cfg.APIBaseURL = strings.TrimRight(c.api, "/")
	}
	if cmd.Flags().Changed("timeout") {
		cfg.APITimeout = c.timeout
	}

	log := logger.Nop()
	if c.debug || cfg.Debug {
		log = logger.Get(true)
	}

	client := apiclient.New(cfg.APIBaseURL,
		apiclient.WithTimeout(cfg.APITimeout),
		apiclient.WithLogger(log),
	)
	c.ws = page.NewWorkspace(client, &notify.Writer{Out: cmd.OutOrStdout()}, log)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(page.ConfirmFunc(surveyConfirm)).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "libctl:", err)
		os.Exit(1)
	}
}
