package list_providers

import "github.com/m04kA/SMC-AppointmentScheduler/internal/domain"

// ProviderResponse HTTP response model
type ProviderResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// FromDomain конвертирует список провайдеров в HTTP response
func FromDomain(providers []domain.Provider) []ProviderResponse {
	result := make([]ProviderResponse, 0, len(providers))
	for _, p := range providers {
		result = append(result, ProviderResponse{
			ID:        p.ID,
			Name:      p.Name,
			AvatarURL: p.AvatarURL,
		})
	}
	return result
}
