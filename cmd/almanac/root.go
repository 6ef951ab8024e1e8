package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"almanac/internal/config"
	"almanac/internal/metrics"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// app carries what every command shares once setup has run
type app struct {
	cfg    *config.Config
	out    io.Writer
	errOut io.Writer

	// flag values, applied over the environment when set
	envFile         string
	logLevel        string
	metricsTextfile string
	token           string
	url             string
	timeout         time.Duration
	allowMismatch   bool
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "almanac",
		Short: "Fetch the LR1110 full almanac and print it as a C array",
		Long: `Fetches the GNSS full almanac image from LoRa Cloud and prints it as the
full_almanac array literal expected by gnss_helpers.c.

Without a subcommand it behaves like "almanac fetch".`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runFetch,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.envFile, "env-file", "", "load environment from this file instead of ./.env")
	pf.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (env LOG_LEVEL)")
	pf.StringVar(&a.metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file (env METRICS_TEXTFILE)")

	a.addFetchFlags(root)
	root.AddCommand(a.newFetchCmd(), a.newFormatCmd(), a.newInspectCmd())

	return root
}

func (a *app) addFetchFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&a.token, "token", "", "LoRa Cloud subscription token (env GLS_TOKEN)")
	f.StringVar(&a.url, "url", "", "full almanac endpoint (env GLS_ALMANAC_URL)")
	f.DurationVar(&a.timeout, "timeout", 0, "request timeout, 0 for none (env GLS_TIMEOUT_SEC)")
	addSizeFlag(cmd, &a.allowMismatch)
}

func addSizeFlag(cmd *cobra.Command, v *bool) {
	cmd.Flags().BoolVar(v, "allow-size-mismatch", false,
		"print the array even when the image does not fill the declared capacity (env ALMANAC_ALLOW_SIZE_MISMATCH)")
}

// setup loads .env and the environment, applies flags and installs the logger
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", a.envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	a.cfg = config.Load()
	a.applyFlags(cmd)
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	slog.SetDefault(newLogger(a.cfg.LogLevel, a.errOut))
	slog.Debug("Configuration loaded",
		"url", a.cfg.AlmanacURL,
		"timeout", a.cfg.Timeout,
		"allow_size_mismatch", a.cfg.AllowSizeMismatch,
		"log_level", a.cfg.LogLevel,
	)
	return nil
}

func (a *app) applyFlags(cmd *cobra.Command) {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if changed("log-level") {
		a.cfg.LogLevel = a.logLevel
	}
	if changed("metrics-textfile") {
		a.cfg.MetricsTextfile = a.metricsTextfile
	}
	if changed("token") {
		a.cfg.Token = a.token
	}
	if changed("url") {
		a.cfg.AlmanacURL = a.url
	}
	if changed("timeout") {
		a.cfg.Timeout = a.timeout
	}
	if changed("allow-size-mismatch") {
		a.cfg.AllowSizeMismatch = a.allowMismatch
	}
}

// writeMetrics flushes the registry when a textfile is configured
func (a *app) writeMetrics() {
	if a.cfg.MetricsTextfile == "" {
		return
	}
	if err := metrics.WriteTextfile(a.cfg.MetricsTextfile); err != nil {
		slog.Error("Failed to write metrics", "path", a.cfg.MetricsTextfile, "error", err)
		return
	}
	slog.Debug("Metrics written", "path", a.cfg.MetricsTextfile)
}

func newLogger(level string, w io.Writer) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
}
