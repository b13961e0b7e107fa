package request

// UpdateSettingsRequest only touches the fields that are present.
// An empty string clears the stored value.
type UpdateSettingsRequest struct {
	APIKey      *string `json:"api_key,omitempty" validate:"omitempty,max=255,printascii"`
	PlaceID     *string `json:"place_id,omitempty" validate:"omitempty,max=255,printascii"`
	GitHubToken *string `json:"github_token,omitempty" validate:"omitempty,max=255,printascii"`
}
