package list_attempts

import (
	"time"

	"github.com/m04kA/SMC-AppointmentScheduler/internal/domain"
)

// AttemptResponse HTTP response model
type AttemptResponse struct {
	ID         int64   `json:"id"`
	ProviderID string  `json:"providerId"`
	DateTime   string  `json:"dateTime"`
	Status     string  `json:"status"`
	Reason     *string `json:"reason,omitempty"`
	CreatedAt  string  `json:"createdAt"`
}

// FromDomain конвертирует журнал попыток в HTTP response
func FromDomain(attempts []*domain.BookingAttempt) []AttemptResponse {
	result := make([]AttemptResponse, 0, len(attempts))
	for _, a := range attempts {
		result = append(result, AttemptResponse{
			ID:         a.ID,
			ProviderID: a.ProviderID,
			DateTime:   a.DateTime.Format(time.RFC3339),
			Status:     string(a.Status),
			Reason:     a.Reason,
			CreatedAt:  a.CreatedAt.Format(time.RFC3339),
		})
	}
	return result
}
