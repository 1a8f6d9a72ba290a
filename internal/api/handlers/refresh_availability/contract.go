package refresh_availability

import (
	"context"

	"github.com/m04kA/SMC-AppointmentScheduler/internal/service/sessions"
)

type SessionService interface {
	RefreshAvailability(ctx context.Context, id string) (*sessions.ActionResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
