package selector

import (
	"context"

	"github.com/m04kA/SMC-AppointmentScheduler/internal/domain"
)

// AvailabilityService источник доступности провайдера на день
type AvailabilityService interface {
	FetchDayAvailability(ctx context.Context, providerID string, date domain.CalendarDate) ([]domain.AvailabilitySlot, error)
}

// BookingService создает запись к провайдеру
type BookingService interface {
	CreateAppointment(ctx context.Context, req domain.BookingRequest) error
}

// Observer получает уведомления о результатах асинхронных операций (метрики)
type Observer interface {
	AvailabilityApplied()
	AvailabilityDiscarded()
	AvailabilityFailed()
	SubmissionFinished(created bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NopObserver ничего не делает
type NopObserver struct{}

func (NopObserver) AvailabilityApplied()    {}
func (NopObserver) AvailabilityDiscarded()  {}
func (NopObserver) AvailabilityFailed()     {}
func (NopObserver) SubmissionFinished(bool) {}
