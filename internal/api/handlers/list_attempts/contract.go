package list_attempts

import (
	"context"

	"github.com/m04kA/SMC-AppointmentScheduler/internal/domain"
	"github.com/m04kA/SMC-AppointmentScheduler/internal/service/sessions"
)

type SessionService interface {
	Get(ctx context.Context, id string) (*sessions.Session, error)
}

type AttemptService interface {
	ListAttempts(ctx context.Context, sessionID string) ([]*domain.BookingAttempt, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
