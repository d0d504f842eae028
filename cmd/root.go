package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	cfgpkg "github.com/Sohaib432002/Dashboard/internal/config"
	"github.com/Sohaib432002/Dashboard/internal/dataset"
)

var (
	cfgFile string
	debug   bool
	logJSON bool
	// Dataset/HTTP flags (override config if set)
	flagDataset        string
	flagSheet          string
	flagHTTPTimeoutSec int

	// Loaded configuration
	cfg *cfgpkg.Global
	log = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Gallstone patient dashboard: filtered views over a clinical dataset",
	Long: `Dashboard loads a gallstone patient dataset (CSV, TSV, XLSX or an http(s) URL),
normalizes every row and serves nine filtered views (demographics, laboratory
results, risk factors, summary metrics and more) as JSON, YAML, Markdown or HTML.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.dashboard/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit logs as JSON lines instead of console text")
	rootCmd.PersistentFlags().StringVar(&flagDataset, "dataset", "", "dataset path or URL (.csv, .tsv, .xlsx, http(s)://)")
	rootCmd.PersistentFlags().StringVar(&flagSheet, "sheet", "", "XLSX: sheet name (default first sheet)")
	rootCmd.PersistentFlags().IntVar(&flagHTTPTimeoutSec, "http-timeout", 0, "HTTP fetch timeout in seconds (overrides config)")
}

func loadConfig() {
	if err := cfgpkg.LoadDotEnv(""); err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %v\n", err)
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{Format: "json", HTTPTimeoutSec: 30, ExportDir: "dashboard-export", ExportWorkers: 4, LogLevel: "info"}
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("dataset") {
		cfg.Dataset = flagDataset
	}
	if f.Changed("sheet") {
		cfg.Sheet = flagSheet
	}
	if f.Changed("http-timeout") && flagHTTPTimeoutSec > 0 {
		cfg.HTTPTimeoutSec = flagHTTPTimeoutSec
	}
	log = newLogger(rootCmd.ErrOrStderr(), cfg.LogLevel, debug, logJSON)
}

// newLogger builds the process logger. Console output is the default.
func newLogger(w io.Writer, level string, debug, asJSON bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if debug {
		lvl = zerolog.DebugLevel
	}
	if !asJSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// loadDataset reads the configured dataset once for the running command.
func loadDataset(ctx context.Context) (*dataset.Dataset, error) {
	if cfg == nil || strings.TrimSpace(cfg.Dataset) == "" {
		return nil, fmt.Errorf("%w: no dataset configured (use --dataset or 'dashboard config set dataset <path>')", dataset.ErrUnavailable)
	}
	opt := dataset.Options{
		Sheet:   cfg.Sheet,
		Timeout: time.Duration(cfg.HTTPTimeoutSec) * time.Second,
		Logger:  log,
	}
	return dataset.Load(ctx, cfg.Dataset, opt)
}

// warnDataset reports contract columns the source lacks and columns with
// values that were read as absent.
func warnDataset(cmd *cobra.Command, ds *dataset.Dataset) {
	w := cmd.ErrOrStderr()
	if missing := ds.MissingColumns(); len(missing) > 0 {
		fmt.Fprintf(w, "⚠ Warning: %s lacks %d expected column(s): %s\n", ds.Name(), len(missing), strings.Join(missing, ", "))
	}
	issues := ds.ParseIssues()
	for _, col := range ds.IssueColumns() {
		fmt.Fprintf(w, "⚠ Warning: %s: %d unparseable value(s) read as absent\n", col, issues[col])
	}
}

// outputFormat resolves --format against the configured default.
func outputFormat(flag string) string {
	if f := strings.ToLower(strings.TrimSpace(flag)); f != "" {
		return f
	}
	if cfg != nil && cfg.Format != "" {
		return cfg.Format
	}
	return "json"
}
