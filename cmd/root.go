package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/plotease-cli/internal/config"
	"github.com/KaramelBytes/plotease-cli/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "plotease",
	Short: "PlotEase CLI: summarize datasets, pick chart types, compare models",
	Long: `PlotEase loads a CSV/TSV/JSON/XLSX dataset and produces per-column summary statistics,
an automatic chart-type choice for one or two columns, quick charts (PNG/SVG),
data diagnostics, and comparisons of model metric files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogger()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.plotease/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// settings returns the loaded configuration, loading it on demand when the
// command runs without Execute (tests call rootCmd directly).
func settings() *cfgpkg.Global {
	if cfg == nil {
		loadConfig()
	}
	if cfg == nil {
		cfg = &cfgpkg.Global{}
	}
	return cfg
}

func initLogger() error {
	c := settings()
	lc := logger.DefaultConfig()
	if c.LogLevel != "" {
		lc.Level = c.LogLevel
	}
	if c.LogEncoding != "" {
		lc.Encoding = c.LogEncoding
	}
	if debug {
		lc.Level = "debug"
		lc.Development = true
	}
	if err := logger.Init(lc); err != nil {
		return err
	}
	logger.Debug("config loaded", zap.String("config_file", cfgFile), zap.String("theme", c.Theme), zap.String("style", c.DefaultStyle))
	return nil
}
