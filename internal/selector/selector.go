package selector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-AppointmentScheduler/internal/domain"
	"github.com/m04kA/SMC-AppointmentScheduler/internal/slots"
)

// Selector хранит выбор провайдера, даты и часа для одного экрана записи.
// Загрузка доступности и создание записи выполняются в фоне,
// результат применяется под мьютексом. Результат загрузки применяется,
// только если пара (провайдер, дата) не изменилась с момента запроса.
type Selector struct {
	mu     sync.Mutex
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc

	availabilitySvc AvailabilityService
	bookingSvc      BookingService
	observer        Observer
	logger          Logger

	location              *time.Location
	requestTimeout        time.Duration
	closeCalendarOnSelect bool

	state        State
	providerID   string
	date         domain.CalendarDate
	selectedHour int
	availability []domain.AvailabilitySlot
	calendarOpen bool
	outcome      *domain.BookingOutcome
	lastErr      error
	closed       bool
}

// New создает селектор и сразу запускает загрузку доступности для начальной пары.
// ctx ограничивает время жизни всех фоновых операций селектора.
func New(
	ctx context.Context,
	params Params,
	availabilitySvc AvailabilityService,
	bookingSvc BookingService,
	observer Observer,
	logger Logger,
) (*Selector, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	if observer == nil {
		observer = NopObserver{}
	}

	location := params.Location
	if location == nil {
		location = time.UTC
	}

	timeout := params.RequestTimeout
	if timeout == 0 {
		timeout = defaultRequestTimeout
	}

	baseCtx, cancel := context.WithCancel(ctx)

	s := &Selector{
		ctx:                   baseCtx,
		cancel:                cancel,
		availabilitySvc:       availabilitySvc,
		bookingSvc:            bookingSvc,
		observer:              observer,
		logger:                logger,
		location:              location,
		requestTimeout:        timeout,
		closeCalendarOnSelect: params.CloseCalendarOnSelect,
		state:                 StateReady,
		providerID:            params.ProviderID,
		date:                  params.Date,
		selectedHour:          domain.NoHourSelected,
		availability:          []domain.AvailabilitySlot{},
	}

	s.mu.Lock()
	s.fetchLocked()
	s.mu.Unlock()

	return s, nil
}

// SelectProvider выбирает провайдера, сбрасывает выбранный час и перезапрашивает доступность
func (s *Selector) SelectProvider(providerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.mutableLocked() || providerID == "" {
		s.logger.Info("Selector: select provider %q ignored in state=%s", providerID, s.state)
		return false
	}

	s.providerID = providerID
	s.resetSelectionLocked()
	s.fetchLocked()

	return true
}

// SelectDate выбирает дату, сбрасывает выбранный час и перезапрашивает доступность.
// Ограничений на прошлые/будущие даты нет, это решает сервис записи.
func (s *Selector) SelectDate(date domain.CalendarDate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.mutableLocked() || !date.IsValid() {
		s.logger.Info("Selector: select date %s ignored in state=%s", date, s.state)
		return false
	}

	s.date = date
	if s.closeCalendarOnSelect {
		s.calendarOpen = false
	}
	s.resetSelectionLocked()
	s.fetchLocked()

	return true
}

// ToggleCalendar открывает или закрывает календарь
func (s *Selector) ToggleCalendar() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	s.calendarOpen = !s.calendarOpen
	return true
}

// RefreshAvailability повторно запрашивает доступность для текущей пары без сброса выбора
func (s *Selector) RefreshAvailability() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.mutableLocked() {
		return false
	}

	s.fetchLocked()
	return true
}

// OnAvailabilityFetched применяет результат загрузки, если он относится к текущей паре
// (провайдер, дата). Устаревшие результаты отбрасываются.
func (s *Selector) OnAvailabilityFetched(availability []domain.AvailabilitySlot, forProviderID string, forDate domain.CalendarDate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	if !s.isCurrentLocked(forProviderID, forDate) {
		s.logger.Info("Selector: discarding stale availability for provider=%s, date=%s (current provider=%s, date=%s)",
			forProviderID, forDate, s.providerID, s.date)
		s.observer.AvailabilityDiscarded()
		return false
	}

	s.availability = append(make([]domain.AvailabilitySlot, 0, len(availability)), availability...)
	s.lastErr = nil

	if s.state == StateReady {
		s.state = StateLoaded
	}

	// Выбранный час мог стать недоступным после загрузки
	if !isSelectable(s.availability, s.selectedHour) {
		s.selectedHour = domain.NoHourSelected
	}

	s.logger.Info("Selector: applied %d slots for provider=%s, date=%s", len(availability), forProviderID, forDate)
	s.observer.AvailabilityApplied()

	return true
}

// SelectHour выбирает час. Неизвестный или занятый час игнорируется,
// как и выбор до загрузки доступности для текущей пары.
func (s *Selector) SelectHour(hour int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state != StateLoaded || !isSelectable(s.availability, hour) {
		s.logger.Info("Selector: select hour %d ignored in state=%s", hour, s.state)
		return false
	}

	s.selectedHour = hour
	return true
}

// Submit отправляет запись на выбранные дату и час.
// Допустим только в состоянии Loaded с выбранным часом, иначе игнорируется.
func (s *Selector) Submit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state != StateLoaded || s.selectedHour == domain.NoHourSelected {
		s.logger.Info("Selector: submit ignored in state=%s, hour=%d", s.state, s.selectedHour)
		return false
	}

	req := domain.BookingRequest{
		ProviderID: s.providerID,
		DateTime:   s.date.At(s.selectedHour, s.location),
	}

	s.state = StateSubmitting
	s.outcome = nil
	s.lastErr = nil

	s.logger.Info("Selector: submitting booking provider=%s, dateTime=%s",
		req.ProviderID, req.DateTime.Format(time.RFC3339))

	s.wg.Add(1)
	go s.submit(req)

	return true
}

// Snapshot возвращает копию текущего состояния
func (s *Selector) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	availability := append(make([]domain.AvailabilitySlot, 0, len(s.availability)), s.availability...)
	partitioned := slots.Partition(availability)

	var outcome *domain.BookingOutcome
	if s.outcome != nil {
		o := *s.outcome
		outcome = &o
	}

	return Snapshot{
		State:        s.state,
		ProviderID:   s.providerID,
		Date:         s.date,
		SelectedHour: s.selectedHour,
		Availability: availability,
		Morning:      partitioned.Morning,
		Afternoon:    partitioned.Afternoon,
		CalendarOpen: s.calendarOpen,
		Outcome:      outcome,
		LastError:    s.lastErr,
	}
}

// Close отменяет фоновые операции. Результаты, пришедшие после Close, игнорируются.
func (s *Selector) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()
}

// Wait ждет завершения всех фоновых операций
func (s *Selector) Wait() {
	s.wg.Wait()
}

func (s *Selector) mutableLocked() bool {
	return !s.closed && s.state != StateSubmitting && s.state != StateSubmitted
}

func (s *Selector) isCurrentLocked(providerID string, date domain.CalendarDate) bool {
	return providerID == s.providerID && date == s.date
}

func (s *Selector) resetSelectionLocked() {
	s.selectedHour = domain.NoHourSelected
	s.state = StateReady
	s.outcome = nil
	s.lastErr = nil
}

// fetchLocked запускает загрузку доступности для текущей пары, вызывается под мьютексом
func (s *Selector) fetchLocked() {
	providerID, date := s.providerID, s.date

	s.wg.Add(1)
	go s.fetch(providerID, date)
}

func (s *Selector) fetch(providerID string, date domain.CalendarDate) {
	defer s.wg.Done()

	ctx, cancel := context.WithTimeout(s.ctx, s.requestTimeout)
	defer cancel()

	availability, err := s.availabilitySvc.FetchDayAvailability(ctx, providerID, date)
	if err != nil {
		s.onAvailabilityFailed(providerID, date, err)
		return
	}

	s.OnAvailabilityFetched(availability, providerID, date)
}

// onAvailabilityFailed оставляет последнюю известную доступность и запоминает ошибку
func (s *Selector) onAvailabilityFailed(providerID string, date domain.CalendarDate, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || !s.isCurrentLocked(providerID, date) {
		return
	}

	s.logger.Warn("Selector: failed to fetch availability for provider=%s, date=%s: %v", providerID, date, err)
	s.lastErr = fmt.Errorf("%w: %v", ErrAvailabilityFetchFailed, err)
	s.observer.AvailabilityFailed()
}

func (s *Selector) submit(req domain.BookingRequest) {
	defer s.wg.Done()

	ctx, cancel := context.WithTimeout(s.ctx, s.requestTimeout)
	defer cancel()

	err := s.bookingSvc.CreateAppointment(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	if err != nil {
		s.logger.Warn("Selector: booking failed for provider=%s, dateTime=%s: %v",
			req.ProviderID, req.DateTime.Format(time.RFC3339), err)
		outcome := domain.Failed(domain.DefaultFailureReason)
		s.outcome = &outcome
		s.lastErr = fmt.Errorf("%w: %v", ErrBookingSubmissionFailed, err)
		s.state = StateLoaded
		s.observer.SubmissionFinished(false)
		return
	}

	s.logger.Info("Selector: booking created for provider=%s, dateTime=%s",
		req.ProviderID, req.DateTime.Format(time.RFC3339))
	outcome := domain.Created(req.DateTime)
	s.outcome = &outcome
	s.state = StateSubmitted
	s.observer.SubmissionFinished(true)
}
