package sessions

import (
	"time"

	"github.com/m04kA/SMC-AppointmentScheduler/internal/domain"
	"github.com/m04kA/SMC-AppointmentScheduler/internal/selector"
)

// Config настройки сессий
type Config struct {
	Location              *time.Location
	RequestTimeout        time.Duration
	CloseCalendarOnSelect bool
	IdleTTL               time.Duration
}

// CreateRequest параметры открытия экрана записи
type CreateRequest struct {
	ProviderID string
	Date       *domain.CalendarDate // nil означает сегодня в часовом поясе сервиса
}

// Session состояние сессии экрана записи
type Session struct {
	ID       string
	Snapshot selector.Snapshot
}

// ActionResult результат действия пользователя.
// Accepted=false означает, что действие было недоступно и состояние не изменилось.
type ActionResult struct {
	Accepted bool
	Session  *Session
}
