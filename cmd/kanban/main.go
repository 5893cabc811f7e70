package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/h0rv/kanban/internal/api"
	"github.com/h0rv/kanban/internal/config"
	"github.com/h0rv/kanban/internal/domain"
	"github.com/h0rv/kanban/internal/logging"
	"github.com/h0rv/kanban/internal/prefs"
	"github.com/h0rv/kanban/internal/store"
	"github.com/h0rv/kanban/internal/tui"
	"github.com/spf13/cobra"
)

var (
	// CLI flags
	configFlag    string
	endpointFlag  string
	prefsFlag     string
	logFileFlag   string
	logLevelFlag  string
	ticketURLFlag string
	groupFlag     string
	sortFlag      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kanban",
		Short: "Terminal kanban board for a ticket feed",
		Long: `kanban fetches tickets and users from a JSON endpoint and shows them as a
kanban board, grouped by status, user or priority and ordered by priority or title.

The chosen grouping and ordering are remembered between runs.

Configuration (highest precedence first):
  1. Flags
  2. Environment: KANBAN_ENDPOINT, KANBAN_LOG_FILE, KANBAN_LOG_LEVEL, KANBAN_TICKET_URL
  3. Config file: --config, or ~/.config/kanban/config.json (JSON with comments)`,
		SilenceUsage: true,
		RunE:         run,
	}

	printCmd := &cobra.Command{
		Use:   "print",
		Short: "Print the board once as plain text and exit",
		RunE:  runPrint,
	}

	// Define CLI flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFlag, "config", "", "Config file path (default ~/.config/kanban/config.json)")
	flags.StringVar(&endpointFlag, "endpoint", "", "Ticket feed URL")
	flags.StringVar(&prefsFlag, "prefs", "", "Display preferences file")
	flags.StringVar(&logFileFlag, "log-file", "", "Log file path")
	flags.StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&ticketURLFlag, "ticket-url", "", "Browser URL template for tickets, {id} is replaced")
	flags.StringVar(&groupFlag, "group", "", "Group by status, user or priority. Saved as the new default.")
	flags.StringVar(&sortFlag, "sort", "", "Order by priority or title. Saved as the new default.")

	rootCmd.AddCommand(printCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// env bundles what both commands need after startup.
type env struct {
	cfg    config.Config
	logger *slog.Logger
	prefs  prefs.Store
	store  *store.Store
	source api.Source
	closer io.Closer
}

// setup loads configuration, opens the log and applies display preferences.
func setup() (*env, error) {
	cfg, err := config.Load(config.LoadInput{
		ConfigPath: configFlag,
		Env:        config.EnvMap(os.Environ()),
		Overrides: config.Config{
			Endpoint:  endpointFlag,
			PrefsPath: prefsFlag,
			LogFile:   logFileFlag,
			LogLevel:  logLevelFlag,
			TicketURL: ticketURLFlag,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	logger, closer, err := logging.Open(cfg.LogFile, level)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	logger.Info("starting", "config", cfg.Source)

	var prefStore prefs.Store = prefs.NewMemoryStore()
	if cfg.PrefsPath != "" {
		fileStore := prefs.NewFileStore(cfg.PrefsPath)
		logger.Debug("display preferences", "path", fileStore.Path())
		prefStore = fileStore
	} else {
		logger.Debug("display preferences kept in memory")
	}

	display, err := displayFromFlags(prefs.Load(prefStore, logger))
	if err != nil {
		closer.Close()
		return nil, err
	}
	if groupFlag != "" || sortFlag != "" {
		if err := prefs.Save(prefStore, display); err != nil {
			logger.Warn("cannot save display preference", "error", err)
		}
	}

	client := api.New(cfg.Endpoint, http.DefaultClient)
	logger.Info("data source", "endpoint", client.Endpoint())

	return &env{
		cfg:    cfg,
		logger: logger,
		prefs:  prefStore,
		store:  store.New(display.Grouping, display.Sorting),
		source: client,
		closer: closer,
	}, nil
}

// displayFromFlags applies --group and --sort on top of the stored preferences.
func displayFromFlags(display prefs.Display) (prefs.Display, error) {
	if groupFlag != "" {
		g, err := domain.ParseGrouping(groupFlag)
		if err != nil {
			return display, fmt.Errorf("--group: %w", err)
		}
		display.Grouping = g
	}
	if sortFlag != "" {
		s, err := domain.ParseSorting(sortFlag)
		if err != nil {
			return display, fmt.Errorf("--sort: %w", err)
		}
		display.Sorting = s
	}
	return display, nil
}

func run(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.closer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := tui.NewAppModel(e.store, e.source, e.prefs, e.logger, e.cfg.TicketLink, ctx)

	// Run Bubble Tea program
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}

	e.logger.Info("exiting")
	return nil
}

func runPrint(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.closer.Close()

	snapshot, err := e.source.Fetch(cmd.Context())
	if err != nil {
		// An empty board is still rendered; status grouping keeps its columns.
		e.logger.Error("failed to fetch tickets", "error", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}
	e.store.SetSnapshot(snapshot)

	return printBoard(cmd.OutOrStdout(), e.store.Board(), e.store.Users())
}
