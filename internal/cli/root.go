package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"autocomplete/internal/config"
	"autocomplete/internal/domain"
	"autocomplete/internal/eventbus"
	"autocomplete/internal/ui"
)

// Options holds the command line flags
type Options struct {
	ConfigPath string
	DataPath   string
	LogPath    string
	Debounce   time.Duration
}

// NewRootCommand creates the autocomplete command
func NewRootCommand() *cobra.Command {
	var opts Options

	cmd := &cobra.Command{
		Use:   "autocomplete",
		Short: "Searchable multi-select fields in the terminal",
		Long: "autocomplete shows a sync and an async search field over a list of " +
			"fruits and vegetables. Fields, options and timing can be configured " +
			"in a TOML file.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/autocomplete/config.toml)")
	flags.StringVarP(&opts.DataPath, "data", "d", "", "TOML file with the options to search")
	flags.StringVar(&opts.LogPath, "log", "", "log file (default from config)")
	flags.DurationVar(&opts.Debounce, "debounce", 0, "quiet period before async fields filter, e.g. 300ms")

	return cmd
}

// Run loads configuration and runs the demo until the user quits or ctx is
// cancelled
func Run(ctx context.Context, opts Options) error {
	// Buffer log lines until the log file is known
	var early bytes.Buffer
	log.SetOutput(&early)

	bus := eventbus.New()
	defer bus.Close()

	// Create event channel for UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forwardEvent := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventSelectionChanged,
		eventbus.EventInputChanged,
		eventbus.EventError,
		eventbus.EventConfigLoaded,
		eventbus.EventConfigSaved,
	} {
		bus.Subscribe(t, forwardEvent)
	}

	configSvc := config.WithBus(configService(opts.ConfigPath), bus)
	cfg := loadOrCreateConfig(configSvc, bus)
	applyOverrides(cfg, opts)

	logFile, err := tea.LogToFile(cfg.LogFile, "autocomplete ")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	_, _ = logFile.Write(early.Bytes())

	options := loadOptions(cfg.DataFile, bus)
	log.Printf("Loaded %d options, %d fields", len(options), len(cfg.Fields))

	uiModel := ui.NewModel(bus, cfg, options)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(uiModel,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(runCtx),
	)
	uiModel.SetProgram(p)

	g, gctx := errgroup.WithContext(runCtx)

	// Start forwarding events to UI in background
	g.Go(func() error {
		for {
			select {
			case e := <-eventChan:
				p.Send(ui.EventMsg{Event: e})
			case <-gctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		defer cancel()
		log.Printf("Starting UI...")
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			log.Printf("Error running program: %v", err)
			return fmt.Errorf("error running program: %w", err)
		}
		log.Printf("UI exited normally")
		return nil
	})

	return g.Wait()
}

func configService(path string) config.ConfigService {
	if path == "" {
		return config.NewConfigService()
	}
	return config.NewConfigServiceAt(path)
}

// loadOrCreateConfig loads the config file, or writes the defaults when
// there is none yet. A broken file is reported and replaced in memory by
// the defaults, never overwritten.
func loadOrCreateConfig(configSvc config.ConfigService, bus eventbus.EventBus) *config.Config {
	path := configSvc.Path()

	if _, err := os.Stat(path); err == nil {
		cfg, err := configSvc.Load()
		if err == nil {
			log.Printf("Loaded config from %s", path)
			return cfg
		}
		log.Printf("Failed to load config: %v", err)
		bus.Publish(eventbus.ErrorEvent{Message: "Failed to load config", Err: err})
		return config.DefaultConfig()
	}

	log.Printf("Creating new config at %s", path)
	cfg := config.DefaultConfig()
	if err := configSvc.Save(cfg); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
	return cfg
}

// applyOverrides lets command line flags win over the config file
func applyOverrides(cfg *config.Config, opts Options) {
	if opts.DataPath != "" {
		cfg.DataFile = opts.DataPath
	}
	if opts.LogPath != "" {
		cfg.LogFile = opts.LogPath
	}
	if cfg.LogFile == "" {
		cfg.LogFile = config.DefaultConfig().LogFile
	}
	if opts.Debounce > 0 {
		cfg.DebounceMS = int(opts.Debounce / time.Millisecond)
	}
}

// loadOptions reads the option set, falling back to the built-in one
func loadOptions(path string, bus eventbus.EventBus) []domain.Option {
	if path == "" {
		return domain.DefaultOptions()
	}
	options, err := domain.LoadOptions(path)
	if err != nil {
		log.Printf("Failed to load options from %s: %v", path, err)
		bus.Publish(eventbus.ErrorEvent{Message: "Failed to load options", Err: err})
		return domain.DefaultOptions()
	}
	return options
}
