package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/smartvalue/internal/config"
	"github.com/vango-dev/smartvalue/internal/errors"
	"github.com/vango-dev/smartvalue/pkg/vango"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds state shared by subcommands once configuration is loaded.
type app struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "smartvalue",
		Short: "Reactive and silent component values",
		Long: `smartvalue demonstrates a component value container with two storage
strategies:

  • reactive: changes schedule a re-render of the owning component
  • silent:   changes are immediate and never re-render`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "",
		"Path to config file (default ./"+config.ConfigFileName+" if present)")

	rootCmd.AddCommand(
		demoCmd(a),
		serveCmd(a),
		versionCmd(),
	)

	return rootCmd
}

// load reads configuration and installs the logger.
func (a *app) load(logOut io.Writer) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = newLogger(logOut, cfg)

	slog.SetDefault(a.logger)
	vango.SetLogger(a.logger)
	vango.DebugMode = cfg.Debug

	if cfg.Path() != "" {
		a.logger.Debug("config loaded", "path", cfg.Path())
	}
	return nil
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
