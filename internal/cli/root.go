package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mvp-joe/pytestgen/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfgFile string
	verbose bool
	quiet   bool

	// logger is replaced in PersistentPreRunE; commands never log before that.
	logger = zap.NewNop()

	// appConfig is loaded in PersistentPreRunE.
	appConfig *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pytestgen",
	Short: "pytestgen - validate and parse LLM-generated pytest candidates",
	Long: `pytestgen checks the inputs of a test generation request and turns raw
model output into individually addressable test functions.

Each generated test function becomes a candidate with a stable name, its
exact source lines and a whitespace-normalized form used to drop duplicates
produced by different strategies or temperatures.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapConfig := zap.NewProductionConfig()
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		appConfig, err = loadConfig()
		if err != nil {
			return err
		}
		if !appConfig.Output.Color {
			color.NoColor = true
		}
		logger.Debug("configuration loaded",
			zap.Strings("strategies", appConfig.Generation.Strategies),
			zap.String("format", appConfig.Output.Format),
			zap.Bool("dedupe", appConfig.Dedupe.Enabled))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !isReported(err) {
			printError(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .pytestgen/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.NewFileLoader(cfgFile).Load()
	}
	return config.LoadConfig()
}

// currentConfig returns the loaded configuration, or defaults when a command
// runs without the root pre-run (as in tests).
func currentConfig() *config.Config {
	if appConfig == nil {
		return config.Default()
	}
	return appConfig
}
