package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentScheduler/internal/domain"
	"github.com/m04kA/SMC-AppointmentScheduler/pkg/reqctx"
)

// Service создает записи через внешний сервис и журналирует каждую попытку
type Service struct {
	client       AppointmentClient
	attemptRepo  AttemptRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса.
// attemptRepo может быть nil, тогда попытки не журналируются.
func NewService(client AppointmentClient, attemptRepo AttemptRepository, logger Logger) *Service {
	return &Service{
		client:       client,
		attemptRepo:  attemptRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// CreateAppointment создает запись. Ошибка журнала не превращается в ошибку записи.
func (s *Service) CreateAppointment(ctx context.Context, req domain.BookingRequest) error {
	sessionID := reqctx.SessionID(ctx)

	s.logger.Info("CreateAppointment: session=%s, provider=%s, dateTime=%s",
		sessionID, req.ProviderID, req.DateTime.Format(time.RFC3339))

	err := s.client.CreateAppointment(ctx, req)

	outcome := domain.Created(req.DateTime)
	if err != nil {
		s.logger.Warn("CreateAppointment: provider=%s rejected: %v", req.ProviderID, err)
		outcome = domain.Failed(err.Error())
	}

	s.record(ctx, sessionID, req, outcome)

	if err != nil {
		return err
	}

	s.logger.Info("CreateAppointment: created for provider=%s at %s", req.ProviderID, req.DateTime.Format(time.RFC3339))
	return nil
}

// ListAttempts возвращает журнал попыток записи сессии
func (s *Service) ListAttempts(ctx context.Context, sessionID string) ([]*domain.BookingAttempt, error) {
	if s.attemptRepo == nil {
		return nil, ErrJournalDisabled
	}

	attempts, err := s.attemptRepo.ListBySession(ctx, sessionID)
	if err != nil {
		s.logger.Error("ListAttempts: repository error for session=%s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: ListAttempts - repository error: %v", ErrInternal, err)
	}

	return attempts, nil
}

func (s *Service) record(ctx context.Context, sessionID string, req domain.BookingRequest, outcome domain.BookingOutcome) {
	if s.attemptRepo == nil {
		return
	}

	attempt := &domain.BookingAttempt{
		SessionID:  sessionID,
		ProviderID: req.ProviderID,
		DateTime:   req.DateTime,
		Status:     outcome.Status,
		CreatedAt:  s.timeProvider.Now(),
	}
	if outcome.Reason != "" {
		reason := outcome.Reason
		attempt.Reason = &reason
	}

	// Журнал пишем даже если контекст запроса уже отменен
	recordCtx := ctx
	if ctx.Err() != nil {
		recordCtx = context.WithoutCancel(ctx)
	}

	if err := s.attemptRepo.Create(recordCtx, attempt); err != nil {
		s.logger.Error("CreateAppointment: failed to record attempt for session=%s: %v", sessionID, err)
	}
}
