package cmd

import (
	"fmt"

	"google-reviews/internal/data/entity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage cached Places responses",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every cached reviews payload",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if config.Storage.CacheDriver == "memory" {
			logger.Warn("CACHE_DRIVER=memory lives inside the server process, nothing to clear here")
			return nil
		}

		repo, closeStores, err := openStores(config, logger)
		if err != nil {
			return err
		}
		defer closeStores()

		deleted, err := repo.Transient.DeleteByPrefix(cmd.Context(), entity.TransientPrefix)
		if err != nil {
			logger.Error("Failed to clear reviews cache", zap.Error(err))
			return err
		}

		logger.Info("Reviews cache cleared", zap.Int64("deleted", deleted))
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d cached entries\n", deleted)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
