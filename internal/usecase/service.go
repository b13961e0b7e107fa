package usecase

import (
	"google-reviews/internal/data/places"
	"google-reviews/internal/data/repository"
	"google-reviews/internal/render"
	"google-reviews/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Settings SettingsService
	Review   ReviewService
}

func NewService(
	repo *repository.Repository,
	placesClient places.Client,
	engine *render.Engine,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	settings := NewSettingsService(repo, config, log)

	return &Service{
		Settings: settings,
		Review:   NewReviewService(repo, settings, placesClient, engine, config.App.PublicURL+"/assets", log),
	}
}
