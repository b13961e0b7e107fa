package wire

import (
	"google-reviews/internal/adaptor"
	"google-reviews/pkg/middleware"
	"google-reviews/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	settingsHandler *adaptor.SettingsHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.AdminBasicAuth(config.Security.AdminUser, config.Security.AdminPasswordHash, log))

		r.Get("/settings", settingsHandler.GetSettings)    // GET /api/admin/settings
		r.Put("/settings", settingsHandler.UpdateSettings) // PUT /api/admin/settings
		r.Post("/cache/clear", settingsHandler.ClearCache) // POST /api/admin/cache/clear
	})
}
