package entity

// Star is one glyph of a five star rating. The value doubles as the asset
// basename (star-full.svg, ...).
type Star string

const (
	StarFull  Star = "star-full"
	StarHalf  Star = "star-half"
	StarEmpty Star = "star-empty"
)

type Review struct {
	AuthorName              string  `json:"author_name"`
	AuthorURL               string  `json:"author_url,omitempty"`
	ProfilePhotoURL         string  `json:"profile_photo_url"`
	Language                string  `json:"language,omitempty"`
	Rating                  float64 `json:"rating"`
	RelativeTimeDescription string  `json:"relative_time_description"`
	Text                    string  `json:"text"`
	Time                    int64   `json:"time,omitempty"`

	// Derived on every read, never part of the cached payload
	Stars []Star `json:"-"`
}

// ReviewData is the aggregate shown under the reviews
type ReviewData struct {
	Rating           float64 `json:"rating"`
	UserRatingsTotal int     `json:"user_ratings_total"`
}

type ReviewSet struct {
	PlaceID string
	Name    string
	ReviewData
	Reviews []Review
}

// PlaceDetails mirrors the parts of the Places Details response we read.
type PlaceDetails struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	Result       struct {
		Name             string   `json:"name"`
		Rating           float64  `json:"rating"`
		UserRatingsTotal int      `json:"user_ratings_total"`
		Reviews          []Review `json:"reviews"`
	} `json:"result"`
}

// ToReviewSet copies the upstream result into a ReviewSet
func (d *PlaceDetails) ToReviewSet(placeID string) *ReviewSet {
	return &ReviewSet{
		PlaceID: placeID,
		Name:    d.Result.Name,
		ReviewData: ReviewData{
			Rating:           d.Result.Rating,
			UserRatingsTotal: d.Result.UserRatingsTotal,
		},
		Reviews: d.Result.Reviews,
	}
}
