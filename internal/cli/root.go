package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/minion/minion-scan/internal/backend"
	"github.com/minion/minion-scan/internal/config"
)

var version = "dev"

var (
	configFlag   string
	backendFlag  string
	outputFlag   string
	verboseFlag  bool
	intervalFlag time.Duration
	timeoutFlag  time.Duration
)

// appConfig holds the loaded configuration, available after PersistentPreRunE.
var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "minion-scan",
	Short: "minion-scan — run Minion scans from the command line",
	Long: `minion-scan drives a Minion scan backend over its HTTP API: it creates a
scan for a plan against a target, starts it, follows it until it finishes
and prints the issues each plugin reported.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		config.ApplyFlags(cfg, cmd)
		if err := cfg.Validate(); err != nil {
			return err
		}

		appConfig = cfg
		return nil
	},
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default "+config.ConfigFilePath()+")")
	rootCmd.PersistentFlags().StringVarP(&backendFlag, "backend", "b", config.DefaultBackendURL, "backend base URL")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "text", "report format: text, table, json, markdown, html")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().DurationVar(&intervalFlag, "interval", time.Second, "delay between polls")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 30*time.Second, "per-request timeout")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(plansCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the --config file when given, the default file otherwise.
func loadConfig() (*config.Config, error) {
	if configFlag != "" {
		return config.LoadFromFile(configFlag)
	}
	return config.Load()
}

// newLogger writes diagnostics to w; verbose lowers the level to debug.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newBackendClient() (*backend.Client, error) {
	return backend.New(appConfig.BackendURL,
		backend.WithTimeout(appConfig.Timeout),
		backend.WithUserAgent(appConfig.UserAgent),
	)
}
