package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration means the API key or place id is missing
	ErrConfiguration = errors.New("api key or place id is not configured")

	// ErrFetch covers transport failures, non-200 replies and unreadable bodies
	ErrFetch = errors.New("could not retrieve reviews from the places api")

	// ErrUnreachable is an ErrFetch where no reply came back at all
	ErrUnreachable = fmt.Errorf("%w: places api unreachable", ErrFetch)

	// ErrNoReviews is a valid upstream reply without any review
	ErrNoReviews = errors.New("no reviews found for this location")

	// ErrAuthKeyRequired refuses to store a secret that cannot be encrypted
	ErrAuthKeyRequired = errors.New("AUTH_KEY is required to store the GitHub token")

	ErrValidation = errors.New("validation failed")
)
