package sessions

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentScheduler/internal/domain"
	"github.com/m04kA/SMC-AppointmentScheduler/internal/selector"
	"github.com/m04kA/SMC-AppointmentScheduler/pkg/reqctx"
)

type entry struct {
	sel      *selector.Selector
	token    string
	lastSeen time.Time
}

// Service реестр сессий экрана записи, у каждой сессии свой селектор
type Service struct {
	mu       sync.Mutex
	sessions map[string]*entry

	availability selector.AvailabilityService
	booking      selector.BookingService
	providers    ProviderCatalog
	observer     Observer
	timeProvider TimeProvider
	logger       Logger
	cfg          Config
}

// NewService создает новый экземпляр сервиса. observer может быть nil.
func NewService(
	availability selector.AvailabilityService,
	booking selector.BookingService,
	providers ProviderCatalog,
	observer Observer,
	cfg Config,
	logger Logger,
) *Service {
	if observer == nil {
		observer = nopObserver{}
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &Service{
		sessions:     make(map[string]*entry),
		availability: availability,
		booking:      booking,
		providers:    providers,
		observer:     observer,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		cfg:          cfg,
	}
}

// ListProviders получает список провайдеров для экрана
func (s *Service) ListProviders(ctx context.Context) ([]domain.Provider, error) {
	providers, err := s.providers.ListProviders(ctx)
	if err != nil {
		s.logger.Error("ListProviders: failed to fetch providers: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrProvidersUnavailable, err)
	}
	return providers, nil
}

// Create открывает экран записи с провайдером из навигации и запускает загрузку доступности
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Session, error) {
	token, _ := reqctx.Token(ctx)
	now := s.timeProvider.Now()

	date := domain.DateOf(now.In(s.cfg.Location))
	if req.Date != nil {
		date = *req.Date
	}

	id := uuid.NewString()

	// Фоновые операции селектора живут дольше HTTP запроса,
	// поэтому базовый контекст строится от Background
	baseCtx := reqctx.WithSessionID(reqctx.WithToken(context.Background(), token), id)

	sel, err := selector.New(baseCtx, selector.Params{
		ProviderID:            req.ProviderID,
		Date:                  date,
		Location:              s.cfg.Location,
		RequestTimeout:        s.cfg.RequestTimeout,
		CloseCalendarOnSelect: s.cfg.CloseCalendarOnSelect,
	}, s.availability, s.booking, s.observer, s.logger)
	if err != nil {
		if errors.Is(err, selector.ErrInvalidInput) {
			s.logger.Warn("Create: invalid input: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, err
	}

	s.mu.Lock()
	s.sessions[id] = &entry{sel: sel, token: token, lastSeen: now}
	s.mu.Unlock()

	s.observer.SessionOpened()
	s.logger.Info("Create: session=%s opened for provider=%s, date=%s", id, req.ProviderID, date)

	return &Session{ID: id, Snapshot: sel.Snapshot()}, nil
}

// Get возвращает текущее состояние сессии
func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	e, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Session{ID: id, Snapshot: e.sel.Snapshot()}, nil
}

// SelectProvider выбирает провайдера
func (s *Service) SelectProvider(ctx context.Context, id, providerID string) (*ActionResult, error) {
	return s.apply(ctx, id, func(sel *selector.Selector) bool {
		return sel.SelectProvider(providerID)
	})
}

// SelectDate выбирает дату
func (s *Service) SelectDate(ctx context.Context, id string, date domain.CalendarDate) (*ActionResult, error) {
	return s.apply(ctx, id, func(sel *selector.Selector) bool {
		return sel.SelectDate(date)
	})
}

// ToggleCalendar открывает или закрывает календарь
func (s *Service) ToggleCalendar(ctx context.Context, id string) (*ActionResult, error) {
	return s.apply(ctx, id, (*selector.Selector).ToggleCalendar)
}

// SelectHour выбирает час
func (s *Service) SelectHour(ctx context.Context, id string, hour int) (*ActionResult, error) {
	return s.apply(ctx, id, func(sel *selector.Selector) bool {
		return sel.SelectHour(hour)
	})
}

// Submit отправляет запись
func (s *Service) Submit(ctx context.Context, id string) (*ActionResult, error) {
	return s.apply(ctx, id, (*selector.Selector).Submit)
}

// RefreshAvailability повторно загружает доступность
func (s *Service) RefreshAvailability(ctx context.Context, id string) (*ActionResult, error) {
	return s.apply(ctx, id, (*selector.Selector).RefreshAvailability)
}

// Close закрывает сессию (экран размонтирован)
func (s *Service) Close(ctx context.Context, id string) error {
	if _, err := s.lookup(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	e, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if ok {
		s.closeEntry(id, e)
	}
	return nil
}

// Sweep закрывает сессии, неактивные дольше IdleTTL, и возвращает их количество
func (s *Service) Sweep() int {
	if s.cfg.IdleTTL <= 0 {
		return 0
	}

	deadline := s.timeProvider.Now().Add(-s.cfg.IdleTTL)
	expired := make(map[string]*entry)

	s.mu.Lock()
	for id, e := range s.sessions {
		if e.lastSeen.Before(deadline) {
			expired[id] = e
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for id, e := range expired {
		s.closeEntry(id, e)
	}

	if len(expired) > 0 {
		s.logger.Info("Sweep: closed %d idle sessions", len(expired))
	}
	return len(expired)
}

// Run периодически закрывает неактивные сессии до отмены контекста
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		s.logger.Warn("Run: sweep disabled, interval=%s", interval)
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Shutdown закрывает все сессии и ждет завершения их фоновых операций
func (s *Service) Shutdown() {
	s.mu.Lock()
	all := s.sessions
	s.sessions = make(map[string]*entry)
	s.mu.Unlock()

	for id, e := range all {
		s.closeEntry(id, e)
		e.sel.Wait()
	}
}

// Count возвращает количество открытых сессий
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Service) apply(ctx context.Context, id string, action func(sel *selector.Selector) bool) (*ActionResult, error) {
	e, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	accepted := action(e.sel)

	return &ActionResult{
		Accepted: accepted,
		Session:  &Session{ID: id, Snapshot: e.sel.Snapshot()},
	}, nil
}

// lookup находит сессию, проверяет владельца и продлевает ее
func (s *Service) lookup(ctx context.Context, id string) (*entry, error) {
	token, _ := reqctx.Token(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	if e.token != token {
		s.logger.Warn("lookup: access denied to session=%s", id)
		return nil, ErrAccessDenied
	}

	e.lastSeen = s.timeProvider.Now()
	return e, nil
}

func (s *Service) closeEntry(id string, e *entry) {
	e.sel.Close()
	s.observer.SessionClosed()
	s.logger.Info("Close: session=%s closed", id)
}
