package adaptor

import (
	"google-reviews/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Review   *ReviewHandler
	Settings *SettingsHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Review:   NewReviewHandler(service.Review, log),
		Settings: NewSettingsHandler(service.Settings, service.Review, log),
	}
}
