package request

const (
	DefaultReviewNumber = 5
	MaxReviewNumber     = 50
)

// DisplayReviewsRequest carries the widget attributes: how many reviews, an
// optional place override and an optional theme template name.
type DisplayReviewsRequest struct {
	Number   int    `json:"number" validate:"min=0,max=50"`
	PlaceID  string `json:"place_id,omitempty" validate:"omitempty,max=255,printascii"`
	Template string `json:"template,omitempty" validate:"omitempty,max=64"`
}
