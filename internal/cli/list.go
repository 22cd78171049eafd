package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"destpick/internal/catalog"
	"destpick/internal/pager"
)

func newListCmd(root *rootOptions) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the whole destination catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			catalogURL, err := root.resolveCatalogURL(cfg)
			if err != nil {
				return err
			}

			logCloser := setupLogging(cfg, cmd.ErrOrStderr())
			defer logCloser.Close()

			client := catalog.NewClient(
				catalogURL,
				catalog.WithTimeout(cfg.Catalog.TimeoutDuration()),
			)

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Catalog.TimeoutDuration())
			defer cancel()

			dests, err := client.Destinations(ctx)
			if err != nil {
				return err
			}

			out := pager.Render(dests, cfg.UISettings.RoutePrefix)
			if plain || !isTerminal(cmd) {
				_, err := fmt.Fprint(cmd.OutOrStdout(), out)
				return err
			}
			return pager.Show(strings.NewReader(out))
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print to stdout instead of opening the pager")

	return cmd
}

// isTerminal reports whether the command writes to an interactive terminal
func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
