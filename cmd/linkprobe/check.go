package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kyswtn/linkprobe/internal/config"
	"github.com/kyswtn/linkprobe/internal/database"
	"github.com/kyswtn/linkprobe/internal/engine"
	"github.com/kyswtn/linkprobe/internal/extract"
	"github.com/kyswtn/linkprobe/internal/log"
	"github.com/kyswtn/linkprobe/internal/model"
	"github.com/kyswtn/linkprobe/internal/probe"
	"github.com/kyswtn/linkprobe/internal/report"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Check every link in a document",
		Long: `Check scans the given document for absolute http/https addresses and
probes each one with a single HEAD request, following redirects.

Each address gets one line in completion order, then a summary:
good (2xx), bad (error response or timeout), and error (connection
failure). Completed runs are stored in a local history database
unless --no-db is given.

Examples:
  # Check a Markdown file with the default 10 workers
  linkprobe check README.md

  # Probe 25 links at a time with a 5 second timeout each
  linkprobe check -w 25 -t 5s docs/links.md

  # Emit a Markdown report to a file
  linkprobe check --markdown -o report.md README.md

Configuration file (.linkprobe) example:
  defaults:
    concurrency: 20
    timeout: 15s
  hosts:
    api.example.com:
      headers:
        Authorization: "Bearer token"
      timeout: 45s`,
		Args: cobra.ExactArgs(1),
		RunE: runCheckCmd,
	}

	// Probe behavior flags
	cmd.Flags().IntP("workers", "w", config.DefaultConcurrency,
		"Number of concurrent probes (must be positive)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each probe, covering its whole redirect chain")
	cmd.Flags().StringP("user-agent", "u", "",
		"User-Agent header to send with probes")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .linkprobe in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("no-color", false,
		"Disable colored output")

	// History flags
	cmd.Flags().Bool("no-db", false,
		"Do not record this run in the history database")
	cmd.Flags().String("db-dir", "",
		"Directory for the history database (default: XDG data directory)")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildCheckConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	// Cancel the run context on interrupt so in-flight probes wind down.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runCheck(ctx, cfg, logger, cmd.OutOrStdout())
}

// buildCheckConfig creates a Config from cobra command flags.
func buildCheckConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Document = args[0]

	var err error

	cfg.Concurrency, err = cmd.Flags().GetInt("workers")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.NoColor, err = cmd.Flags().GetBool("no-color")
	if err != nil {
		return nil, err
	}

	cfg.NoDB, err = cmd.Flags().GetBool("no-db")
	if err != nil {
		return nil, err
	}

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// Load the config file. An explicitly specified path must exist;
	// an absent default file is fine.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		// Flags explicitly set by the user keep precedence over file
		// defaults even when they equal the built-in default.
		flagSet := cmd.Flags()
		if flagSet.Changed("workers") {
			file.Defaults.Concurrency = 0
		}
		if flagSet.Changed("timeout") {
			file.Defaults.Timeout = ""
		}
		cfg.ApplyFile(file)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// runCheck extracts addresses from the document and dispatches probes.
func runCheck(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout io.Writer) error {
	addresses, err := extract.FromFile(cfg.Document)
	if err != nil {
		// Fatal before any probing begins.
		return err
	}

	terminalMode := !cfg.JSONReport && !cfg.MarkdownReport

	if len(addresses) == 0 {
		if terminalMode {
			fmt.Fprintf(stdout, "No URLs found in %s.\n", cfg.Document)
			return nil
		}
		// Structured formats still get a valid empty report.
		writer, closeReport, err := buildWriter(cfg, stdout)
		if err != nil {
			return err
		}
		defer closeReport()
		return writer.WriteSummary(report.RunInfo{
			Document: cfg.Document,
			Started:  time.Now(),
		}, model.Tally{})
	}

	logger.Info("starting check",
		"document", cfg.Document,
		"addresses", len(addresses),
		"workers", cfg.Concurrency,
		"timeout", cfg.Timeout,
	)

	if terminalMode {
		fmt.Fprintf(stdout, "Found %d unique URLs in %s. Checking...\n\n", len(addresses), cfg.Document)
	}

	writer, closeReport, err := buildWriter(cfg, stdout)
	if err != nil {
		return err
	}
	defer closeReport()

	proberOpts := []probe.Option{
		probe.WithTimeout(cfg.Timeout),
		probe.WithHostHeaders(cfg.File.HostHeaders()),
		probe.WithHostTimeouts(cfg.File.HostTimeouts()),
	}
	if cfg.UserAgent != "" {
		proberOpts = append(proberOpts, probe.WithUserAgent(cfg.UserAgent))
	}

	eng := engine.New(probe.New(proberOpts...),
		engine.WithConcurrency(cfg.Concurrency),
		engine.WithLogger(logger),
	)

	started := time.Now()
	outcomes := make([]model.Outcome, 0, len(addresses))
	tally := eng.Run(ctx, addresses, func(o model.Outcome) {
		if err := writer.WriteOutcome(o); err != nil {
			logger.Error("failed to write outcome", "address", o.Address, "error", err)
		}
		outcomes = append(outcomes, o)
	})
	elapsed := time.Since(started)

	run := report.RunInfo{
		Document:  cfg.Document,
		Started:   started,
		Duration:  elapsed,
		Addresses: len(addresses),
	}
	if err := writer.WriteSummary(run, tally); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	if !cfg.NoDB {
		saveRun(ctx, cfg, run, tally, outcomes, logger)
	}

	return nil
}

// buildWriter selects the report writer for the configured format and
// destination. The returned closer flushes and closes the report file,
// when one is in use.
func buildWriter(cfg *config.Config, stdout io.Writer) (report.Writer, func(), error) {
	target := stdout
	closeReport := func() {}

	if cfg.ReportFile != "" {
		if dir := filepath.Dir(cfg.ReportFile); dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, nil, fmt.Errorf("failed to create report directory: %w", err)
			}
		}
		f, err := os.Create(cfg.ReportFile) //nolint:gosec // report path comes from the user
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create report file: %w", err)
		}
		target = f
		closeReport = func() {
			_ = f.Close()
		}
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(target, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(target)
	default:
		opts := []report.TerminalOption{report.WithVerboseOutput(cfg.Verbose)}
		// Files get no ANSI escapes regardless of the color flag.
		if cfg.NoColor || cfg.ReportFile != "" {
			opts = append(opts, report.WithoutColor())
		}
		w = report.NewTerminalWriter(target, opts...)
	}

	// A structured report going to a file still streams progress to the
	// terminal.
	if cfg.ReportFile != "" && (cfg.JSONReport || cfg.MarkdownReport) {
		terminalOpts := []report.TerminalOption{report.WithVerboseOutput(cfg.Verbose)}
		if cfg.NoColor {
			terminalOpts = append(terminalOpts, report.WithoutColor())
		}
		w = report.NewMultiWriter(w, report.NewTerminalWriter(stdout, terminalOpts...))
	}

	return w, closeReport, nil
}

// saveRun records the completed run in the history database. Failures
// are logged, not fatal; the check result has already been reported.
func saveRun(ctx context.Context, cfg *config.Config, run report.RunInfo, tally model.Tally, outcomes []model.Outcome, logger *slog.Logger) {
	db, err := database.Open(cfg.DBDir)
	if err != nil {
		logger.Warn("failed to open history database", "dir", cfg.DBDir, "error", err)
		return
	}
	defer db.Close()

	id, err := db.SaveRun(ctx, database.Run{
		Document: run.Document,
		Started:  run.Started,
		Duration: run.Duration,
		Tally:    tally,
	}, outcomes)
	if err != nil {
		logger.Warn("failed to record run", "error", err)
		return
	}
	logger.Debug("run recorded", "id", id)
}
