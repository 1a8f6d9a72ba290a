package select_provider

// SelectProviderRequest HTTP request model
type SelectProviderRequest struct {
	ProviderID string `json:"providerId"`
}
