package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"destpick/internal/catalog"
	"destpick/internal/logging"
	"destpick/internal/server"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr, seed string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a destination catalog over HTTP",
		Long: `serve loads destinations from a YAML or JSON seed file and exposes them
at the configured catalog path, with detail routes under the route prefix.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}
			if seed == "" {
				seed = cfg.Server.SeedFile
			}

			// The server owns no terminal, so it logs to stderr
			if _, err := logging.Setup(logging.Config{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
			}, cmd.ErrOrStderr()); err != nil {
				return err
			}

			dests, err := catalog.LoadSeed(seed)
			if err != nil {
				return fmt.Errorf("failed to load seed: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(dests, cfg.Catalog.Path, cfg.UISettings.RoutePrefix)
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from server.addr)")
	cmd.Flags().StringVar(&seed, "seed", "", "Seed file with destinations (default from server.seed_file)")

	return cmd
}
