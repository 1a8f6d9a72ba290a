package create_session

import (
	"github.com/m04kA/SMC-AppointmentScheduler/internal/domain"
	"github.com/m04kA/SMC-AppointmentScheduler/internal/service/sessions"
)

// CreateSessionRequest HTTP request model
type CreateSessionRequest struct {
	ProviderID string  `json:"providerId"`
	Date       *string `json:"date,omitempty"` // "2024-05-10", по умолчанию сегодня
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateSessionRequest) ToServiceRequest() (*sessions.CreateRequest, error) {
	req := &sessions.CreateRequest{ProviderID: r.ProviderID}

	if r.Date != nil {
		date, err := domain.ParseCalendarDate(*r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	return req, nil
}
