package select_date

import (
	"context"

	"github.com/m04kA/SMC-AppointmentScheduler/internal/domain"
	"github.com/m04kA/SMC-AppointmentScheduler/internal/service/sessions"
)

type SessionService interface {
	SelectDate(ctx context.Context, id string, date domain.CalendarDate) (*sessions.ActionResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
