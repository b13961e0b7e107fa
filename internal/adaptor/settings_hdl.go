package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"google-reviews/internal/dto/request"
	"google-reviews/internal/dto/response"
	"google-reviews/internal/usecase"
	"google-reviews/pkg/utils"

	"go.uber.org/zap"
)

type SettingsHandler struct {
	service usecase.SettingsService
	reviews usecase.ReviewService
	log     *zap.Logger
}

func NewSettingsHandler(service usecase.SettingsService, reviews usecase.ReviewService, log *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		service: service,
		reviews: reviews,
		log:     log.With(zap.String("handler", "settings")),
	}
}

// GetSettings handles GET /api/admin/settings
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.GetSettingsResponse(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get settings")
		return
	}

	utils.ResponseSuccess(w, "success", settings)
}

// UpdateSettings handles PUT /api/admin/settings
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateSettingsRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	settings, err := h.service.UpdateSettings(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "update settings")
		return
	}

	admin, _ := utils.GetAdminUserFromContext(r.Context())
	h.log.Info("Settings saved", zap.String("admin", admin))

	utils.ResponseSuccess(w, "Settings saved", settings)
}

// ClearCache handles POST /api/admin/cache/clear
func (h *SettingsHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.reviews.ClearCache(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "clear cache")
		return
	}

	utils.ResponseSuccess(w, "Cache cleared", response.ClearCacheResponse{Deleted: deleted})
}

func (h *SettingsHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrAuthKeyRequired):
		h.log.Warn(operation+" failed - not configured",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseServiceUnavailable(w, err.Error())

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
