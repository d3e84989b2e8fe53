package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/awklab/treelight/engine"
	"github.com/awklab/treelight/internal/types"
)

var (
	cfgFile string
	timeout time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "treelight",
	Short: "treelight - syntax-aware editing support for AWK driven by an external parse tree",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		// Commands log unconditionally; a logger must exist even when the
		// production config cannot be built.
		logger = zap.NewNop()
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to the configuration file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Timeout for batch processing")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(highlightCmd)
	rootCmd.AddCommand(indentCmd)
	rootCmd.AddCommand(outlineCmd)
}

// loadConfig resolves the configuration record: the --config file when
// given, defaults otherwise.
func loadConfig() (types.Config, error) {
	if cfgFile == "" {
		return types.Default(), nil
	}
	return engine.LoadConfig(cfgFile)
}

func newEngine() (*engine.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return engine.New(cfg, logger)
}
