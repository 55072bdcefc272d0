package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"cardcarousel/internal/carousel"
	"cardcarousel/internal/catalog"
	"cardcarousel/internal/config"
	"cardcarousel/internal/eventbus"
	"cardcarousel/internal/ui"
)

const appName = "cardcarousel"

type options struct {
	configPath  string
	catalogPath string
	logPath     string
	verbose     bool
}

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "carousel",
		Short:        "Browse travel destinations as a draggable card carousel",
		Long:         `carousel shows destination cards in an overlapping, swipeable row. Drag with the mouse or use the arrow keys to page between them.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file merged over the user and local config")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&opts.logPath, "log-file", "", "log file (default is in the XDG state directory)")
	root.Flags().StringVar(&opts.catalogPath, "catalog", "", "destinations TOML file (default is the built-in samples)")

	root.AddCommand(initConfigCommand(opts))
	return root
}

func initConfigCommand(opts *options) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write the default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), opts.verbose)
			svc := config.NewConfigService()

			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				p, err := svc.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}
			if err := svc.SaveToPath(config.DefaultConfig(), path); err != nil {
				return err
			}
			logger.Info("wrote default config", "path", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// openLog opens the log file; the TUI owns the terminal so nothing is
// logged to stderr while it runs
func openLog(path string) (io.WriteCloser, error) {
	if path == "" {
		p, err := xdg.StateFile(filepath.Join(appName, "carousel.log"))
		if err != nil {
			return nil, err
		}
		path = p
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

func run(ctx context.Context, opts *options) error {
	// Set up logging
	var logOut io.Writer = io.Discard
	if f, err := openLog(opts.logPath); err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
	} else {
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut, opts.verbose)

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create event bus
	bus := eventbus.New(logger.WithPrefix("bus"))
	defer bus.Close()

	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ConfigLoadedEvent); ok {
			logger.Info("config loaded", "files", ev.Paths)
		}
	})
	bus.Subscribe(eventbus.EventIndexChanged, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.IndexChangedEvent); ok {
			logger.Debug("index changed", "from", ev.OldIndex, "to", ev.NewIndex, "title", ev.Item.Title, "cause", ev.Cause)
		}
	})
	bus.Subscribe(eventbus.EventDragEnded, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.DragEndedEvent); ok {
			logger.Debug("drag ended", "translation", ev.Translation, "predicted", ev.Predicted, "committed", ev.Committed)
		}
	})

	// Load configuration
	var extra []string
	if opts.configPath != "" {
		if _, err := os.Stat(opts.configPath); err != nil {
			return fmt.Errorf("config file not found: %s", opts.configPath)
		}
		extra = append(extra, opts.configPath)
	}
	configSvc := config.NewConfigServiceWithBus(bus, extra...)
	cfg, err := configSvc.Load()
	if err != nil {
		return err
	}
	if opts.catalogPath != "" {
		cfg.Catalog = opts.catalogPath
	}

	items, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return err
	}
	source := cfg.Catalog
	if source == "" {
		source = catalog.SourceBuiltin
	}
	logger.Info("catalog loaded", "source", source, "count", len(items))

	controller := carousel.New(items, cfg.CarouselConfig(), bus)

	// Create UI model
	uiModel := ui.NewModel(bus, cfg, controller, logger.WithPrefix("ui"))
	defer uiModel.Close()

	programOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithReportFocus(),
	}
	if cfg.UI.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(uiModel, programOpts...)
	uiModel.SetProgram(p)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			logger.Warn("event channel full, dropping event", "type", e.Type())
		}
	}
	bus.Subscribe(eventbus.EventError, forward)
	bus.Subscribe(eventbus.EventCatalogLoaded, forward)
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ErrorEvent); ok {
			logger.Error(ev.Message, "err", ev.Err)
		}
	})

	// Start forwarding events to UI in background
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			case <-done:
				return
			}
		}
	}()

	if cfg.Catalog != "" {
		bus.Publish(eventbus.CatalogLoadedEvent{Source: source, Count: len(items)})
	}

	// Run the UI
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
