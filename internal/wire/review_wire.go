package wire

import (
	"google-reviews/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /reviews - HTML widget
	r.Get("/reviews", reviewHandler.RenderReviews)

	// GET /api/reviews - same data as JSON
	r.Get("/api/reviews", reviewHandler.ListReviews)
}
