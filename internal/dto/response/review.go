package response

import "google-reviews/internal/data/entity"

type ReviewResponse struct {
	AuthorName              string   `json:"author_name"`
	AuthorURL               string   `json:"author_url,omitempty"`
	ProfilePhotoURL         string   `json:"profile_photo_url"`
	Rating                  float64  `json:"rating"`
	Text                    string   `json:"text"`
	RelativeTimeDescription string   `json:"relative_time_description"`
	Time                    int64    `json:"time,omitempty"`
	Stars                   []string `json:"stars"`
}

type ReviewsResponse struct {
	PlaceID    string            `json:"place_id"`
	Name       string            `json:"name"`
	ReviewData entity.ReviewData `json:"review_data"`
	Reviews    []ReviewResponse  `json:"reviews"`
}

type ClearCacheResponse struct {
	Deleted int64 `json:"deleted"`
}

// Helper converter
func ReviewToResponse(review entity.Review) ReviewResponse {
	stars := make([]string, len(review.Stars))
	for i, s := range review.Stars {
		stars[i] = string(s)
	}

	return ReviewResponse{
		AuthorName:              review.AuthorName,
		AuthorURL:               review.AuthorURL,
		ProfilePhotoURL:         review.ProfilePhotoURL,
		Rating:                  review.Rating,
		Text:                    review.Text,
		RelativeTimeDescription: review.RelativeTimeDescription,
		Time:                    review.Time,
		Stars:                   stars,
	}
}

func ReviewsToResponse(set *entity.ReviewSet, reviews []entity.Review) *ReviewsResponse {
	items := make([]ReviewResponse, len(reviews))
	for i, review := range reviews {
		items[i] = ReviewToResponse(review)
	}

	return &ReviewsResponse{
		PlaceID:    set.PlaceID,
		Name:       set.Name,
		ReviewData: set.ReviewData,
		Reviews:    items,
	}
}
