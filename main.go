package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"fitcalc/internal/config"
	"fitcalc/internal/service"
	"fitcalc/internal/tui"
)

var version = "dev"

var (
	noColor  bool
	logLevel string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printMsg(os.Stderr, msgError, "%v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fitcalc",
		Short: "Body fat and daily energy calculator",
		Long: `fitcalc estimates body fat percentage (US Navy method) and daily
energy needs (Mifflin-St Jeor BMR and TDEE).

Without a sub-command the terminal UI is started.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newTUICmd(),
		newBodyFatCmd(),
		newKcalCmd(),
		newActivitiesCmd(),
		newServeCmd(),
		newMCPCmd(),
		newConfigCmd(),
	)
	return root
}

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the terminal UI",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The alt screen owns the terminal, so logs go nowhere
	calc := service.NewCalculator(slog.New(slog.NewTextHandler(io.Discard, nil)))

	app := tui.NewApp(calc, cfg.Defaults)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

// loadConfig reads the config file, falling back to defaults when there is none
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		return nil, fmt.Errorf("invalid config (%s/config.json): %w", configDir, err)
	}
	return cfg, nil
}

func newLogger(level string, w io.Writer) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}
