package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sadhuseva/gitaverse/internal/config"
)

var (
	verbose bool
	cfgPath string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gitaverse",
	Short: "Daily devotional pipeline for the gitaverse site",
	Long: `gitaverse runs the site's daily publication pipeline: it walks the
two scriptures verse by verse in canonical order, skips anything published
within the last year, asks Gemini for a devotional reflection on the chosen
verse, and stores the validated post.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		godotenv.Load()

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func loadConfig() (*config.Config, error) {
	path := cfgPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	return config.Load(path)
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default: XDG config dir)")

	rootCmd.AddCommand(postCmd, nextCmd, extractCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
