package get_session

import (
	"context"

	"github.com/m04kA/SMC-AppointmentScheduler/internal/service/sessions"
)

type SessionService interface {
	Get(ctx context.Context, id string) (*sessions.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
