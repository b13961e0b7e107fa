package response

type SettingsResponse struct {
	APIKey         string   `json:"api_key"`
	PlaceID        string   `json:"place_id"`
	GitHubToken    string   `json:"github_token"`
	GitHubTokenSet bool     `json:"github_token_set"`
	Notices        []string `json:"notices,omitempty"`
}
