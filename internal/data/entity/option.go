package entity

import "time"

// Option names, kept compatible with the plugin's option table
const (
	OptionAPIKey      = "grf_api_key"
	OptionPlaceID     = "grf_place_id"
	OptionGitHubToken = "grf_github_token"
)

// TransientPrefix prefixes every cached Places response
const TransientPrefix = "grf_google_reviews_data_"

type Option struct {
	Name      string    `db:"option_name"`
	Value     string    `db:"option_value"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Transient struct {
	Key       string    `db:"transient_key"`
	Value     string    `db:"transient_value"`
	ExpiresAt time.Time `db:"expires_at"`
}

// Expired reports whether the entry is no longer readable at now
func (t *Transient) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// Settings are the values editable from the admin API
type Settings struct {
	APIKey  string
	PlaceID string
	// Stored encrypted, decrypted on read
	GitHubToken string
}
