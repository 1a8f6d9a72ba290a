package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentScheduler/internal/domain"
)

// AppointmentClient клиент, создающий запись во внешнем сервисе
type AppointmentClient interface {
	CreateAppointment(ctx context.Context, req domain.BookingRequest) error
}

// AttemptRepository журнал попыток записи
type AttemptRepository interface {
	Create(ctx context.Context, attempt *domain.BookingAttempt) error
	ListBySession(ctx context.Context, sessionID string) ([]*domain.BookingAttempt, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
