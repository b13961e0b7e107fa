package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google-reviews/internal/data/places"
	"google-reviews/internal/render"
	"google-reviews/internal/wire"
	"google-reviews/pkg/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the reviews widget, JSON API and admin API over HTTP",
	RunE:  runServe,
}

func init() {
	addServeFlags(serveCmd)
	rootCmd.AddCommand(serveCmd)
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().String("port", "", "listen port (overrides PORT)")
	cmd.Flags().Bool("migrate", false, "apply database migrations before serving")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if port, _ := cmd.Flags().GetString("port"); port != "" {
		config.App.Port = port
	}

	if runMigrations, _ := cmd.Flags().GetBool("migrate"); runMigrations && config.UsesPostgres() {
		if err := database.Migrate(config.Database.URL(), "up", logger); err != nil {
			logger.Error("Failed to migrate database", zap.Error(err))
			return err
		}
	}

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("storage_driver", config.Storage.Driver),
		zap.String("cache_driver", config.Storage.CacheDriver),
	)

	repo, closeStores, err := openStores(config, logger)
	if err != nil {
		logger.Error("Failed to open stores", zap.Error(err))
		return err
	}
	defer closeStores()

	placesClient := places.NewClient(config.Places.BaseURL, config.Places.Timeout, logger)
	engine := render.NewEngine(config.App.ThemeDir, logger)

	app := wire.Wiring(repo, placesClient, engine, config, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return APIServer(ctx, app.Router, config.App.Port, logger)
}

// APIServer serves handler until ctx is cancelled, then drains connections
func APIServer(ctx context.Context, handler http.Handler, port string, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server running", zap.String("addr", "http://localhost"+srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
