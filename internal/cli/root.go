// Package cli wires the destpick commands.
package cli

import (
	"fmt"
	"io"
	"net/url"

	"github.com/spf13/cobra"

	"destpick/internal/config"
	"destpick/internal/logging"
)

// Version is set at build time with -ldflags "-X destpick/internal/cli.Version=..."
var Version = "dev"

type rootOptions struct {
	configPath string
	catalogURL string
	print      bool
	noMouse    bool
}

// Execute runs the root command. Logging stays silent until a command
// installs its own logger from the config.
func Execute() error {
	logging.Discard()
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "destpick",
		Short: "Search destinations from the terminal",
		Long: `destpick fetches the destination catalog once and suggests matching
destinations as you type. Pick one with the mouse or Enter to open its route.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPicker(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to the config file (default "+config.DefaultPath()+")")
	cmd.PersistentFlags().StringVar(&opts.catalogURL, "catalog-url", "", "Catalog URL (overrides catalog.base_url and catalog.path)")
	cmd.Flags().BoolVar(&opts.print, "print", false, "Exit on selection and print the destination URL")
	cmd.Flags().BoolVar(&opts.noMouse, "no-mouse", false, "Disable mouse support")

	cmd.AddCommand(
		newServeCmd(opts),
		newListCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.NewConfigServiceWithPath(o.configPath).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// resolveCatalogURL prefers the --catalog-url flag over the config file
func (o *rootOptions) resolveCatalogURL(cfg *config.Config) (string, error) {
	if o.catalogURL == "" {
		return cfg.Catalog.CatalogURL(), nil
	}

	u, err := url.Parse(o.catalogURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("--catalog-url must be an http(s) URL, got %q", o.catalogURL)
	}
	return o.catalogURL, nil
}

// setupLogging installs the file logger. A log file that cannot be opened
// is reported once on stderr and logging is discarded.
func setupLogging(cfg *config.Config, stderr io.Writer) io.Closer {
	closer, err := logging.Setup(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	}, io.Discard)
	if err != nil {
		fmt.Fprintf(stderr, "warning: %v\n", err)
	}
	return closer
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "destpick %s\n", Version)
		},
	}
}
