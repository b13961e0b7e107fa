package adaptor

import (
	"errors"
	"net/http"

	"google-reviews/internal/dto/request"
	"google-reviews/internal/usecase"
	"google-reviews/pkg/utils"

	"go.uber.org/zap"
)

// Messages shown in place of the widget
const (
	MessageConfiguration = "Error: API key or Place ID is not set in the settings page."
	MessageUnreachable   = "Error fetching reviews."
	MessageFetch         = "Error: Could not retrieve valid reviews data from the API."
	MessageNoReviews     = "No reviews found for this location."
	MessageInvalidWidget = "Error: Invalid widget attributes."
)

// widgetMessage wraps a fixed message as the one-line paragraph embedded in
// place of the widget
func widgetMessage(message string) string {
	return "<p>" + message + "</p>"
}

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// RenderReviews handles GET /reviews
func (h *ReviewHandler) RenderReviews(w http.ResponseWriter, r *http.Request) {
	req := h.parseDisplayRequest(r)

	html, err := h.service.RenderReviews(r.Context(), req)
	if err != nil {
		h.handleWidgetError(w, err)
		return
	}

	utils.ResponseHTML(w, http.StatusOK, html)
}

// ListReviews handles GET /api/reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	req := h.parseDisplayRequest(r)

	reviews, err := h.service.ListReviews(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "list reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

func (h *ReviewHandler) parseDisplayRequest(r *http.Request) *request.DisplayReviewsRequest {
	query := r.URL.Query()

	return &request.DisplayReviewsRequest{
		Number:   utils.ParseInt(query.Get("number"), request.DefaultReviewNumber),
		PlaceID:  query.Get("place_id"),
		Template: query.Get("template"),
	}
}

// handleWidgetError replaces the widget with a one-line message
func (h *ReviewHandler) handleWidgetError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		h.log.Warn("Invalid widget request", zap.Error(err))
		utils.ResponseHTML(w, http.StatusBadRequest, widgetMessage(MessageInvalidWidget))

	case errors.Is(err, usecase.ErrConfiguration):
		h.log.Warn("Reviews widget is not configured", zap.Error(err))
		utils.ResponseHTML(w, http.StatusServiceUnavailable, widgetMessage(MessageConfiguration))

	case errors.Is(err, usecase.ErrNoReviews):
		utils.ResponseHTML(w, http.StatusNotFound, widgetMessage(MessageNoReviews))

	case errors.Is(err, usecase.ErrUnreachable):
		h.log.Error("Places API unreachable", zap.Error(err))
		utils.ResponseHTML(w, http.StatusBadGateway, widgetMessage(MessageUnreachable))

	case errors.Is(err, usecase.ErrFetch):
		h.log.Error("Failed to fetch reviews", zap.Error(err))
		utils.ResponseHTML(w, http.StatusBadGateway, widgetMessage(MessageFetch))

	default:
		h.log.Error("Failed to render reviews", zap.Error(err))
		utils.ResponseHTML(w, http.StatusInternalServerError, widgetMessage(MessageFetch))
	}
}

func (h *ReviewHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrConfiguration):
		h.log.Warn(operation+" failed - not configured",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseServiceUnavailable(w, MessageConfiguration)

	case errors.Is(err, usecase.ErrNoReviews):
		utils.ResponseNotFound(w, MessageNoReviews)

	case errors.Is(err, usecase.ErrUnreachable):
		h.log.Error(operation+" failed - upstream unreachable",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadGateway(w, MessageUnreachable)

	case errors.Is(err, usecase.ErrFetch):
		h.log.Error(operation+" failed - upstream",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadGateway(w, MessageFetch)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
