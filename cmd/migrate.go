package cmd

import (
	"fmt"

	"google-reviews/pkg/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back the options and transients schema",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		direction := "up"
		if len(args) == 1 {
			direction = args[0]
		}

		if !config.UsesPostgres() {
			return fmt.Errorf("migrate needs STORAGE_DRIVER or CACHE_DRIVER set to postgres")
		}

		if err := database.Migrate(config.Database.URL(), direction, logger); err != nil {
			logger.Error("Migration failed", zap.Error(err), zap.String("direction", direction))
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
