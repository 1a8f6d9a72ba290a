package sessions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentScheduler/internal/domain"
	"github.com/m04kA/SMC-AppointmentScheduler/internal/selector"
)

// ProviderCatalog источник списка провайдеров для экрана
type ProviderCatalog interface {
	ListProviders(ctx context.Context) ([]domain.Provider, error)
}

// Observer метрики селекторов и сессий
type Observer interface {
	selector.Observer
	SessionOpened()
	SessionClosed()
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

type nopObserver struct {
	selector.NopObserver
}

func (nopObserver) SessionOpened() {}
func (nopObserver) SessionClosed() {}
