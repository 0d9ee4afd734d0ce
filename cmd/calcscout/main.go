package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/csheth/calcscout/internal/app"
	"github.com/csheth/calcscout/internal/calcapi"
	"github.com/csheth/calcscout/internal/config"
	"github.com/csheth/calcscout/internal/hints"
	"github.com/csheth/calcscout/internal/stub"
	"github.com/csheth/calcscout/internal/tui"
)

var version = "dev"

type options struct {
	ConfigPath  string
	Endpoint    string
	Timeout     time.Duration
	LogFile     string
	LogLevel    string
	NoAltScreen bool
	ExportDir   string
	Hints       bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:           "calcscout",
		Short:         "Terminal front end for the calculation service",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
	applyFlags(rootCmd.PersistentFlags(), opts)

	rootCmd.AddCommand(pingCommand(opts))
	rootCmd.AddCommand(stubCommand(opts))
	rootCmd.AddCommand(versionCommand())
	return rootCmd
}

func applyFlags(flags *pflag.FlagSet, opts *options) {
	flags.StringVar(&opts.ConfigPath, "config", "", "Path to config.toml (default: user config dir)")
	flags.StringVar(&opts.Endpoint, "endpoint", "", "Calculation service base URL")
	flags.DurationVar(&opts.Timeout, "timeout", 0, "Per-request timeout")
	flags.StringVar(&opts.LogFile, "log-file", "", "Log file path")
	flags.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	flags.BoolVar(&opts.NoAltScreen, "no-alt-screen", false, "Disable the alternate screen buffer")
	flags.StringVar(&opts.ExportDir, "export-dir", "", "Directory for exported chart PNGs")
	flags.BoolVar(&opts.Hints, "hints", false, "Show tips at startup")
}

// loadConfig layers changed flags over the file and environment settings
// and validates the result once.
func loadConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	cfg, err := config.Read(opts.ConfigPath)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.Endpoint = opts.Endpoint
	}
	if flags.Changed("timeout") {
		cfg.Timeout = config.Duration{Duration: opts.Timeout}
	}
	if flags.Changed("log-file") {
		cfg.LogFile = opts.LogFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.LogLevel
	}
	if flags.Changed("no-alt-screen") {
		cfg.AltScreen = !opts.NoAltScreen
	}
	if flags.Changed("export-dir") {
		cfg.ExportDir = opts.ExportDir
	}
	if flags.Changed("hints") {
		cfg.Hints.Visible = opts.Hints
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	sessionID := uuid.NewString()
	logger, closer, err := setupLogger(cfg.LogLevel, cfg.LogFile, false)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer closer.Close()
	logger = logger.With("session", sessionID)
	logger.Info("calcscout starting", "version", version, "endpoint", cfg.Endpoint)

	client := calcapi.New(calcapi.Config{
		Endpoint:  cfg.Endpoint,
		Timeout:   cfg.Timeout.Duration,
		SessionID: sessionID,
		Logger:    logger,
	})

	programOpts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if cfg.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Service:   client,
			Endpoint:  client.Endpoint(),
			ExportDir: cfg.ExportDir,
			Graph: app.GraphDefaults{
				XMin:    config.GraphField(cfg.Graph.XMin),
				XMax:    config.GraphField(cfg.Graph.XMax),
				Samples: fmt.Sprint(cfg.Graph.Samples),
			},
			HintsVisible: cfg.Hints.Visible,
			Hints:        hints.Default(nil),
			Logger:       logger,
		}),
		programOpts...,
	)

	if _, err := program.Run(); err != nil {
		logger.Error("program error", "error", err)
		return fmt.Errorf("program error: %w", err)
	}
	logger.Info("calcscout stopped")
	return nil
}

func pingCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the calculation service is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			client := calcapi.New(calcapi.Config{Endpoint: cfg.Endpoint, Timeout: cfg.Timeout.Duration})
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout.Duration)
			defer cancel()
			if err := client.Health(ctx); err != nil {
				return fmt.Errorf("%s: %w", client.Endpoint(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK: %s\n", client.Endpoint())
			return nil
		},
	}
}

func stubCommand(opts *options) *cobra.Command {
	var fixturesPath, addr string
	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Serve canned responses from a fixtures file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			logger, closer, err := setupLogger(cfg.LogLevel, cfg.LogFile, true)
			if err != nil {
				return fmt.Errorf("set up logging: %w", err)
			}
			defer closer.Close()

			fx, err := stub.LoadFixtures(fixturesPath)
			if err != nil {
				return err
			}
			return serveStub(cmd.Context(), addr, stub.NewRouter(fx, logger), logger)
		},
	}
	cmd.Flags().StringVar(&fixturesPath, "fixtures", "fixtures.json", "Fixtures file to replay")
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8000", "Listen address")
	return cmd
}

func serveStub(parent context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("stub listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("stub shutting down")
	return srv.Shutdown(shutdownCtx)
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the calcscout version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
