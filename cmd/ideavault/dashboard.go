package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/ideavault/internal/config"
	"github.com/alexisbeaulieu97/ideavault/internal/ports"
	"github.com/alexisbeaulieu97/ideavault/internal/registry"
	"github.com/alexisbeaulieu97/ideavault/internal/tui/dashboard"
	"github.com/alexisbeaulieu97/ideavault/internal/view"
)

func newDashboardCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Launch the interactive dashboard",
		Long:  `Launch the interactive TUI dashboard to submit ideas and follow their AI evaluations.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboardCommand(cmd, app)
		},
	}

	return cmd
}

func runDashboardCommand(cmd *cobra.Command, app *AppContext) error {
	// The alternate screen owns the terminal, so logs go to a file.
	logFile, err := openDashboardLog()
	if err != nil {
		return newCommandError("launch dashboard", "opening log file", err, "Ensure your HOME directory is set correctly.")
	}
	defer logFile.Close()
	app.logWriter = logFile

	ctx, logger, err := app.CommandContext(cmd, "command.dashboard")
	if err != nil {
		return err
	}
	logger.Info(ctx, "launching dashboard")

	err = runDashboard(ctx, logger, app)
	if err != nil {
		logger.Error(ctx, "dashboard command failed", "error", err)
	}
	return err
}

func runDashboard(ctx context.Context, logger ports.Logger, app *AppContext) error {
	prefsPath, err := defaultPreferencesPath()
	if err != nil {
		return newCommandError("launch dashboard", "determining preferences path", err, "Ensure your HOME directory is set correctly.")
	}
	prefs, err := registry.NewPreferenceStore(prefsPath)
	if err != nil {
		return newCommandError("launch dashboard", "loading preferences", err, "Check preferences file permissions or delete "+prefsPath+".")
	}

	orch, err := app.Services()
	if err != nil {
		return err
	}

	mode, order := initialView(app.Config, prefs.Get())
	m := dashboard.NewModel(orch, dashboard.Options{
		Context:     ctx,
		Preferences: prefs,
		DisplayMode: mode,
		SortOrder:   order,
		UseUnicode:  supportsUnicode(os.Stdout),
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}

	logger.Info(ctx, "dashboard closed")
	return nil
}

// initialView prefers saved dashboard choices over configured defaults.
func initialView(cfg *config.Config, saved registry.Preferences) (view.DisplayMode, view.SortOrder) {
	mode, _ := view.ParseDisplayMode(cfg.Display.Mode)
	if m, ok := view.ParseDisplayMode(saved.DisplayMode); ok && saved.DisplayMode != "" {
		mode = m
	}
	order, _ := view.ParseSortOrder(cfg.Display.Sort)
	if o, ok := view.ParseSortOrder(saved.SortOrder); ok && saved.SortOrder != "" {
		order = o
	}
	return mode, order
}

func defaultPreferencesPath() (string, error) {
	dir, err := config.DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "preferences.json"), nil
}

func openDashboardLog() (*os.File, error) {
	dir, err := config.DefaultDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "dashboard.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}
