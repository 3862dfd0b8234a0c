// Package cmd wires flags, configuration, logging, and the TUI together.
package cmd

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oakwood-commons/bzx/internal/app"
	"github.com/oakwood-commons/bzx/internal/bazaar"
	"github.com/oakwood-commons/bzx/internal/config"
	"github.com/oakwood-commons/bzx/internal/ui"
	"github.com/oakwood-commons/bzx/pkg/logger"
	"github.com/oakwood-commons/bzx/pkg/settings"
)

var (
	endpointFlag string
	noColor      bool
	logLevel     int8
	showVersion  bool
	flagWidth    int
	flagHeight   int
)

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName,
	Short: "Interactive terminal browser for the SkyBlock bazaar",
	Long: settings.CliBinaryName + ` fetches the public bazaar snapshot, lets you fuzzy-search
products by name, and opens a live-refreshing detail view with order books
and a price history chart.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&endpointFlag, "endpoint", "", "snapshot API endpoint (overrides BZX_ENDPOINT)")
	flags.BoolVar(&noColor, "no-color", false, "disable ANSI colors")
	flags.Int8Var(&logLevel, "log-level", 0, "minimum zap log level (negative is more verbose)")
	flags.BoolVar(&showVersion, "version", false, "print version information and exit")
	flags.IntVar(&flagWidth, "width", 0, "force terminal width (0 = auto-detect)")
	flags.IntVar(&flagHeight, "height", 0, "force terminal height (0 = auto-detect)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func versionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s)",
		settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime)
}

func runRoot(cmd *cobra.Command, _ []string) error {
	if showVersion {
		fmt.Fprintln(cmd.OutOrStdout(), versionString())
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if endpointFlag != "" {
		cfg.Endpoint = endpointFlag
	}

	log := logger.Get(logLevel)

	params := settings.NewCliParams()
	params.MinLogLevel = logLevel
	params.NoColor = noColor
	params.Endpoint = cfg.Endpoint

	ctx := settings.IntoContext(logger.WithLogger(context.Background(), log), params)

	client := bazaar.NewClient(cfg.Endpoint, cfg.HTTPTimeout)

	// Startup fetch is fatal: there is nothing to browse without a snapshot.
	resp, err := client.Fetch(ctx)
	if err != nil {
		log.Error(err, "initial snapshot fetch failed", logger.EndpointKey, cfg.Endpoint)
		return err
	}
	log.V(1).Info("snapshot loaded", "products", len(resp.Products), "last_updated", resp.LastUpdated)

	a := app.New(resp, client.Fetch, cfg.RefreshInterval, log)
	model := ui.NewModel(a, ui.Options{
		NoColor:        noColor,
		TickInterval:   cfg.TickInterval,
		DebounceWindow: cfg.DebounceWindow,
		Logger:         log,
	})

	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, programOptions(flagWidth, flagHeight)...)
	prog := tea.NewProgram(&model, opts...)
	_, err = prog.Run()

	// The program may exit while a detail session is still polling.
	a.StopRefresh()
	return err
}

// programOptions resolves a forced window size, falling back to the
// detected terminal dimensions when only one side is given.
func programOptions(width, height int) []tea.ProgramOption {
	if width <= 0 && height <= 0 {
		return nil
	}
	if width <= 0 || height <= 0 {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if width <= 0 {
				width = w
			}
			if height <= 0 {
				height = h
			}
		}
	}
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	return []tea.ProgramOption{tea.WithWindowSize(width, height)}
}
