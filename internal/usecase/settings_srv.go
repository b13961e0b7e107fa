package usecase

import (
	"context"
	"fmt"

	"google-reviews/internal/data/entity"
	"google-reviews/internal/data/repository"
	"google-reviews/internal/dto/request"
	"google-reviews/internal/dto/response"
	"google-reviews/pkg/utils"

	"go.uber.org/zap"
)

const noticeMissingGitHubToken = "Please set the GitHub Access Token in the plugin settings to enable auto-updates"

type SettingsService interface {
	// GetSettings returns the effective settings, stored options first and
	// environment defaults second, with the GitHub token decrypted.
	GetSettings(ctx context.Context) (*entity.Settings, error)
	GetSettingsResponse(ctx context.Context) (*response.SettingsResponse, error)
	UpdateSettings(ctx context.Context, req *request.UpdateSettingsRequest) (*response.SettingsResponse, error)
}

type settingsService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewSettingsService(repo *repository.Repository, config *utils.Config, log *zap.Logger) SettingsService {
	return &settingsService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "settings")),
	}
}

func (s *settingsService) GetSettings(ctx context.Context) (*entity.Settings, error) {
	apiKey, err := s.optionOrDefault(ctx, entity.OptionAPIKey, s.config.Places.APIKey)
	if err != nil {
		return nil, err
	}

	placeID, err := s.optionOrDefault(ctx, entity.OptionPlaceID, s.config.Places.PlaceID)
	if err != nil {
		return nil, err
	}

	encrypted, _, err := s.repo.Option.Get(ctx, entity.OptionGitHubToken)
	if err != nil {
		return nil, fmt.Errorf("get github token: %w", err)
	}

	token, err := utils.DecryptSecret(encrypted, s.config.Security.AuthKey)
	if err != nil {
		// AUTH_KEY changed since the token was saved
		s.log.Warn("Stored GitHub token cannot be decrypted", zap.Error(err))
		token = ""
	}

	return &entity.Settings{
		APIKey:      apiKey,
		PlaceID:     placeID,
		GitHubToken: token,
	}, nil
}

func (s *settingsService) GetSettingsResponse(ctx context.Context) (*response.SettingsResponse, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		s.log.Error("Failed to load settings", zap.Error(err))
		return nil, fmt.Errorf("load settings: %w", err)
	}

	return s.toResponse(settings), nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, req *request.UpdateSettingsRequest) (*response.SettingsResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update settings validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	if req.APIKey != nil {
		if err := s.repo.Option.Set(ctx, entity.OptionAPIKey, *req.APIKey); err != nil {
			return nil, fmt.Errorf("save api key: %w", err)
		}
	}

	if req.PlaceID != nil {
		if err := s.repo.Option.Set(ctx, entity.OptionPlaceID, *req.PlaceID); err != nil {
			return nil, fmt.Errorf("save place id: %w", err)
		}
	}

	if req.GitHubToken != nil {
		if *req.GitHubToken != "" && s.config.Security.AuthKey == "" {
			return nil, ErrAuthKeyRequired
		}

		encrypted, err := utils.EncryptSecret(*req.GitHubToken, s.config.Security.AuthKey)
		if err != nil {
			s.log.Error("Failed to encrypt GitHub token", zap.Error(err))
			return nil, fmt.Errorf("encrypt github token: %w", err)
		}

		if err := s.repo.Option.Set(ctx, entity.OptionGitHubToken, encrypted); err != nil {
			return nil, fmt.Errorf("save github token: %w", err)
		}
	}

	s.log.Info("Settings updated",
		zap.Bool("api_key", req.APIKey != nil),
		zap.Bool("place_id", req.PlaceID != nil),
		zap.Bool("github_token", req.GitHubToken != nil),
	)

	return s.GetSettingsResponse(ctx)
}

// ==================== HELPER METHODS ====================

func (s *settingsService) optionOrDefault(ctx context.Context, name, fallback string) (string, error) {
	value, found, err := s.repo.Option.Get(ctx, name)
	if err != nil {
		return "", fmt.Errorf("get option %s: %w", name, err)
	}
	if !found {
		return fallback, nil
	}
	return value, nil
}

func (s *settingsService) toResponse(settings *entity.Settings) *response.SettingsResponse {
	resp := &response.SettingsResponse{
		APIKey:         utils.MaskSecret(settings.APIKey),
		PlaceID:        settings.PlaceID,
		GitHubToken:    utils.MaskSecret(settings.GitHubToken),
		GitHubTokenSet: settings.GitHubToken != "",
	}

	if !resp.GitHubTokenSet {
		resp.Notices = append(resp.Notices, noticeMissingGitHubToken)
	}

	return resp
}
