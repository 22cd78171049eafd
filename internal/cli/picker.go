package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"destpick/internal/catalog"
	"destpick/internal/eventbus"
	"destpick/internal/ui"
)

func runPicker(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	catalogURL, err := opts.resolveCatalogURL(cfg)
	if err != nil {
		return err
	}

	logCloser := setupLogging(cfg, cmd.ErrOrStderr())
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bus := eventbus.New()
	defer bus.Close()

	client := catalog.NewClient(
		catalogURL,
		catalog.WithTimeout(cfg.Catalog.TimeoutDuration()),
		catalog.WithBus(bus),
	)

	model := ui.NewModel(ui.Options{
		Config: cfg,
		Source: client,
		Bus:    bus,
		Picker: opts.print,
	})

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UISettings.Mouse && !opts.noMouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, programOpts...)

	// Send is a no-op once the program has exited
	forward := func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	}
	bus.Subscribe(eventbus.EventCatalogLoaded, forward)
	bus.Subscribe(eventbus.EventCatalogFailed, forward)
	bus.Subscribe(eventbus.EventQueryChanged, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.QueryChangedEvent); ok {
			log.Debug().Str("query", ev.Query).Msg("query changed")
		}
	})
	bus.Subscribe(eventbus.EventDestinationSelected, logSelection)

	log.Info().Str("catalog", catalogURL).Bool("picker", opts.print).Msg("starting destpick")

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run picker: %w", err)
	}

	if !opts.print {
		return nil
	}
	selected, ok := model.Selected()
	if !ok {
		return nil
	}
	link, err := destinationURL(catalogURL, selected.Route)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), link)
	return nil
}

func logSelection(e eventbus.DomainEvent) {
	if ev, ok := e.(eventbus.DestinationSelectedEvent); ok {
		log.Info().
			Str("slug", ev.Destination.Slug).
			Str("route", ev.Route).
			Msg("destination selected")
	}
}

// destinationURL joins the scheme and host of the catalog the picker read
// from with route.
func destinationURL(catalogURL, route string) (string, error) {
	u, err := url.Parse(catalogURL)
	if err != nil {
		return "", fmt.Errorf("invalid catalog URL %q: %w", catalogURL, err)
	}
	return (&url.URL{Scheme: u.Scheme, Host: u.Host}).String() + route, nil
}
