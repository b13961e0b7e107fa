package cmd

import (
	"fmt"
	"os"

	"google-reviews/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	config *utils.Config
	logger *zap.Logger
)

// rootCmd runs the HTTP server when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "google-reviews",
	Short: "Google Place reviews widget service",
	Long: `Fetches reviews for a Google Place from the Places Details API, caches them
for five minutes and serves them as an embeddable HTML widget and as JSON.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
	RunE: runServe,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	addServeFlags(rootCmd)
}

// setup loads configuration and the logger for every subcommand
func setup(cmd *cobra.Command, _ []string) error {
	var err error

	config, err = utils.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err = utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v. Using production logger.\n", err)
		logger, _ = zap.NewProduction()
	}

	logger = logger.With(zap.String("command", cmd.Name()))
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
