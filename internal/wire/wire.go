// internal/wire/wire.go
package wire

import (
	"net/http"

	"google-reviews/internal/adaptor"
	"google-reviews/internal/data/places"
	"google-reviews/internal/data/repository"
	"google-reviews/internal/render"
	"google-reviews/internal/usecase"
	"google-reviews/pkg/metrics"
	"google-reviews/pkg/middleware"
	"google-reviews/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired router and services
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes
func Wiring(
	repo *repository.Repository,
	placesClient places.Client,
	engine *render.Engine,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, placesClient, engine, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware, outermost first
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))
	r.Use(metrics.Middleware)

	wireReview(r, handler.Review)
	wireAdmin(r, handler.Settings, config, logger)

	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(render.Assets()))))
	r.Handle("/metrics", metrics.Handler())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
