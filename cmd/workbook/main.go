// Command workbook solves radical, quadratic and matrix problems from the
// command line and prints the explanation trace.
//
// Usage:
//
//	workbook solve --domain quadratic "x^2 - 5x + 6 = 0"
//	workbook solve --domain matrix --type determinant -p 'A=[[1,2],[3,4]]'
//	workbook types matrix
//	workbook batch problems.yaml --jobs 4
//	workbook lessons radical
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	workbook "github.com/njchilds90/goworkbook"
	"github.com/njchilds90/goworkbook/internal/config"
)

var (
	verbose    bool
	jsonOutput bool
	configPath string
	level      string
	noBridges  bool
	noVerify   bool
	noPrevent  bool

	logger = zap.NewNop()
	wb     *workbook.Workbook
)

var rootCmd = &cobra.Command{
	Use:   "workbook",
	Short: "Step-by-step algebra workbook for radicals, quadratics and matrices",
	Long: `Classifies a problem into one of its domain's problem types, solves it,
verifies the answer independently and prints a layered explanation.

Configuration is read from --config (YAML), then WORKBOOK_* environment
variables, then flags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		wb, err = workbook.New(workbook.WithLogger(logger), workbook.WithConfig(cfg))
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// loadConfig layers the config file, the environment and explicitly set
// flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("level") {
		if cfg.ExplanationLevel, err = config.ParseLevel(level); err != nil {
			return cfg, err
		}
	}
	if flags.Changed("no-bridges") {
		cfg.IncludeBridges = !noBridges
	}
	if flags.Changed("no-verification") {
		cfg.IncludeVerification = !noVerify
	}
	if flags.Changed("no-error-prevention") {
		cfg.IncludeErrorPrevention = !noPrevent
	}
	return cfg, nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVar(&jsonOutput, "json", false, "Print JSON instead of text")
	pf.StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	pf.StringVarP(&level, "level", "l", string(config.LevelIntermediate), "Explanation level: basic, intermediate, detailed or scaffolded")
	pf.BoolVar(&noBridges, "no-bridges", false, "Omit bridge entries between steps")
	pf.BoolVar(&noVerify, "no-verification", false, "Omit the verification entry")
	pf.BoolVar(&noPrevent, "no-error-prevention", false, "Omit common mistakes and checkpoints")

	rootCmd.AddCommand(solveCmd, typesCmd, batchCmd, lessonsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
