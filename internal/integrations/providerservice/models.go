package providerservice

import (
	"time"

	"github.com/m04kA/SMC-AppointmentScheduler/internal/domain"
)

// Provider модель провайдера из сервиса маркетплейса
type Provider struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// Availability модель доступности часа
type Availability struct {
	Hour      int  `json:"hour"`
	Available bool `json:"available"`
}

// CreateAppointmentRequest тело запроса на создание записи
type CreateAppointmentRequest struct {
	ProviderID string    `json:"provider_id"`
	Date       time.Time `json:"date"`
}

// ErrorResponse модель ошибки от сервиса
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (p Provider) toDomain() domain.Provider {
	return domain.Provider{
		ID:        p.ID,
		Name:      p.Name,
		AvatarURL: p.AvatarURL,
	}
}

func (a Availability) toDomain() domain.AvailabilitySlot {
	return domain.AvailabilitySlot{
		Hour:      a.Hour,
		Available: a.Available,
	}
}
