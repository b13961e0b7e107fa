package render

import "google-reviews/internal/data/entity"

const maxStars = 5

// StarsFor turns a 0-5 rating into five glyphs. Position i is full when
// at least one point remains past it and half when at least half a point
// remains, so 4.5 shows four and a half stars.
func StarsFor(rating float64) []entity.Star {
	stars := make([]entity.Star, maxStars)
	for i := range stars {
		remaining := rating - float64(i)
		switch {
		case remaining >= 1:
			stars[i] = entity.StarFull
		case remaining >= 0.5:
			stars[i] = entity.StarHalf
		default:
			stars[i] = entity.StarEmpty
		}
	}
	return stars
}
