package usecase

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"google-reviews/internal/data/entity"
	"google-reviews/internal/data/places"
	"google-reviews/internal/data/repository"
	"google-reviews/internal/dto/request"
	"google-reviews/internal/dto/response"
	"google-reviews/internal/render"
	"google-reviews/pkg/metrics"
	"google-reviews/pkg/utils"

	"go.uber.org/zap"
)

// ReviewsCacheTTL is how long a Places response is served from the cache
const ReviewsCacheTTL = 5 * time.Minute

type ReviewService interface {
	// GetReviews is the cache-or-fetch gate for one place
	GetReviews(ctx context.Context, placeID, apiKey string) (*entity.ReviewSet, error)

	// Widget endpoints
	ListReviews(ctx context.Context, req *request.DisplayReviewsRequest) (*response.ReviewsResponse, error)
	RenderReviews(ctx context.Context, req *request.DisplayReviewsRequest) (string, error)

	// Admin
	ClearCache(ctx context.Context) (int64, error)
}

type reviewService struct {
	repo      *repository.Repository
	settings  SettingsService
	places    places.Client
	engine    *render.Engine
	assetsURL string
	log       *zap.Logger
}

func NewReviewService(
	repo *repository.Repository,
	settings SettingsService,
	placesClient places.Client,
	engine *render.Engine,
	assetsURL string,
	log *zap.Logger,
) ReviewService {
	return &reviewService{
		repo:      repo,
		settings:  settings,
		places:    placesClient,
		engine:    engine,
		assetsURL: assetsURL,
		log:       log.With(zap.String("service", "review")),
	}
}

// CacheKey derives the transient key for a place
func CacheKey(placeID string) string {
	sum := md5.Sum([]byte(placeID))
	return entity.TransientPrefix + hex.EncodeToString(sum[:])
}

func (s *reviewService) GetReviews(ctx context.Context, placeID, apiKey string) (*entity.ReviewSet, error) {
	if placeID == "" || apiKey == "" {
		return nil, ErrConfiguration
	}

	key := CacheKey(placeID)

	cached, found, err := s.repo.Transient.Get(ctx, key)
	if err != nil {
		// A broken cache must not take the widget down
		s.log.Warn("Cache lookup failed, fetching from upstream",
			zap.Error(err),
			zap.String("place_id", placeID),
		)
	}

	if found {
		set, err := decodeReviewSet(placeID, []byte(cached))
		if err == nil && len(set.Reviews) > 0 {
			metrics.ReviewsCacheHits.Inc()
			s.log.Debug("Reviews served from cache", zap.String("place_id", placeID))
			return withStars(set), nil
		}

		s.log.Warn("Discarding unreadable cached reviews",
			zap.Error(err),
			zap.String("place_id", placeID),
		)
	}

	metrics.ReviewsCacheMisses.Inc()

	resp, err := s.places.FetchDetails(ctx, placeID, apiKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}

	if resp.StatusCode != http.StatusOK {
		s.log.Error("Places API returned an error status",
			zap.String("place_id", placeID),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("%w: upstream status %d", ErrFetch, resp.StatusCode)
	}

	details, err := decodeDetails(resp.Body)
	if err != nil {
		s.log.Error("Places API returned an unreadable body",
			zap.Error(err),
			zap.String("place_id", placeID),
		)
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	if len(details.Result.Reviews) == 0 {
		s.log.Warn("No reviews in Places response",
			zap.String("place_id", placeID),
			zap.String("upstream_status", details.Status),
			zap.String("upstream_error", details.ErrorMessage),
		)
		return nil, ErrNoReviews
	}

	if err := s.repo.Transient.Set(ctx, key, string(resp.Body), ReviewsCacheTTL); err != nil {
		s.log.Warn("Failed to cache reviews",
			zap.Error(err),
			zap.String("place_id", placeID),
		)
	}

	s.log.Info("Reviews fetched",
		zap.String("place_id", placeID),
		zap.Int("count", len(details.Result.Reviews)),
	)

	return withStars(details.ToReviewSet(placeID)), nil
}

func (s *reviewService) ListReviews(ctx context.Context, req *request.DisplayReviewsRequest) (*response.ReviewsResponse, error) {
	set, reviews, err := s.load(ctx, req)
	if err != nil {
		return nil, err
	}

	return response.ReviewsToResponse(set, reviews), nil
}

func (s *reviewService) RenderReviews(ctx context.Context, req *request.DisplayReviewsRequest) (string, error) {
	set, reviews, err := s.load(ctx, req)
	if err != nil {
		return "", err
	}

	template := req.Template
	if template == "" {
		template = render.DefaultTemplateName
	}

	html, err := s.engine.Render(template, render.NewView(set, reviews, s.assetsURL))
	if err != nil {
		s.log.Error("Failed to render reviews",
			zap.Error(err),
			zap.String("template", template),
		)
		return "", fmt.Errorf("render reviews: %w", err)
	}

	return html, nil
}

func (s *reviewService) ClearCache(ctx context.Context) (int64, error) {
	deleted, err := s.repo.Transient.DeleteByPrefix(ctx, entity.TransientPrefix)
	if err != nil {
		s.log.Error("Failed to clear reviews cache", zap.Error(err))
		return 0, fmt.Errorf("clear reviews cache: %w", err)
	}

	s.log.Info("Reviews cache cleared", zap.Int64("deleted", deleted))
	return deleted, nil
}

// ==================== HELPER METHODS ====================

// load validates the widget request, resolves credentials and returns the
// set together with its first req.Number reviews.
func (s *reviewService) load(ctx context.Context, req *request.DisplayReviewsRequest) (*entity.ReviewSet, []entity.Review, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Display reviews validation failed", zap.Any("errors", errs))
		return nil, nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}
	if req.Template != "" && !render.ValidTemplateName(req.Template) {
		return nil, nil, fmt.Errorf("%w: template: Only letters, digits, '-' and '_' are allowed", ErrValidation)
	}

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load settings: %w", err)
	}

	placeID := settings.PlaceID
	if req.PlaceID != "" {
		placeID = req.PlaceID
	}

	set, err := s.GetReviews(ctx, placeID, settings.APIKey)
	if err != nil {
		return nil, nil, err
	}

	return set, truncate(set.Reviews, req.Number), nil
}

func decodeDetails(body []byte) (*entity.PlaceDetails, error) {
	var details entity.PlaceDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, fmt.Errorf("decode place details: %w", err)
	}
	return &details, nil
}

func decodeReviewSet(placeID string, body []byte) (*entity.ReviewSet, error) {
	details, err := decodeDetails(body)
	if err != nil {
		return nil, err
	}
	return details.ToReviewSet(placeID), nil
}

func withStars(set *entity.ReviewSet) *entity.ReviewSet {
	for i := range set.Reviews {
		set.Reviews[i].Stars = render.StarsFor(set.Reviews[i].Rating)
	}
	return set
}

func truncate(reviews []entity.Review, n int) []entity.Review {
	if n < 0 {
		n = 0
	}
	if n > len(reviews) {
		n = len(reviews)
	}
	return reviews[:n]
}
