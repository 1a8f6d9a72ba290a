package select_date

import "github.com/m04kA/SMC-AppointmentScheduler/internal/domain"

// SelectDateRequest HTTP request model
type SelectDateRequest struct {
	Date string `json:"date"` // "2024-05-10"
}

// ParseDate разбирает дату календаря
func (r *SelectDateRequest) ParseDate() (domain.CalendarDate, error) {
	return domain.ParseCalendarDate(r.Date)
}
