package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/shutter/internal/adapter"
	"github.com/mmcdole/shutter/internal/tui"
	"github.com/mmcdole/shutter/internal/tui/components"
)

var (
	cfgFile  string
	logLevel string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shutter [route]",
		Short: "Browse a photo catalog from the terminal",
		Long: `Shutter browses a paginated photo catalog in the terminal.

Routes:
  /               the gallery (default)
  /photos         the gallery
  /photos/{id}    one photo

The catalog access key is read from ACCESS_KEY (or UNSPLASH_ACCESS_KEY),
a .env file, or catalog.access_key in the config file.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			route := "/"
			if len(args) == 1 {
				route = args[0]
			}
			return runTUI(route)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/shutter/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(NewListCmd())
	rootCmd.AddCommand(NewShowCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func runTUI(route string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the gallery needs a terminal; try 'shutter list' instead")
	}

	a, err := setup(cfgFile, logLevel)
	if err != nil {
		return err
	}

	launcher := adapter.NewLauncher(a.cfg.UI.OpenCommand, a.logger)

	model := tui.NewModel(a.gallery, launcher, tui.Options{
		Route:  route,
		Layout: a.cfg.LayoutMode(),
		Metrics: components.Metrics{
			CellWidthPx:  a.cfg.UI.CellWidthPx,
			CellHeightPx: a.cfg.UI.CellHeightPx,
		},
		FetchTimeout: a.cfg.Catalog.Timeout,
	}, a.logger)

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	a.logger.Info("starting TUI", "route", route)

	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	a.logger.Info("shutting down")
	return nil
}
