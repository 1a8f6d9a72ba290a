package selector

import (
	"time"

	"github.com/m04kA/SMC-AppointmentScheduler/internal/domain"
)

// State состояние селектора
type State string

const (
	StateIdle       State = "idle"
	StateReady      State = "ready"      // провайдер и дата выбраны, доступность неизвестна или устарела
	StateLoaded     State = "loaded"     // доступность загружена для текущей пары (провайдер, дата)
	StateSubmitting State = "submitting" // запрос на запись в процессе
	StateSubmitted  State = "submitted"  // запись создана, конечное состояние
)

const defaultRequestTimeout = 10 * time.Second

// Params параметры создания селектора (экран монтируется с провайдером из навигации)
type Params struct {
	ProviderID            string
	Date                  domain.CalendarDate
	Location              *time.Location // часовой пояс для даты записи, по умолчанию UTC
	RequestTimeout        time.Duration
	CloseCalendarOnSelect bool // закрывать календарь после выбора даты
}

// Snapshot копия состояния селектора с производными группами слотов
type Snapshot struct {
	State        State
	ProviderID   string
	Date         domain.CalendarDate
	SelectedHour int
	Availability []domain.AvailabilitySlot
	Morning      domain.SlotGroup
	Afternoon    domain.SlotGroup
	CalendarOpen bool
	Outcome      *domain.BookingOutcome
	LastError    error
}

// HasSelectedHour returns true if an hour is chosen
func (s Snapshot) HasSelectedHour() bool {
	return s.SelectedHour != domain.NoHourSelected
}

// CanSubmit returns true if Submit would be accepted
func (s Snapshot) CanSubmit() bool {
	return s.State == StateLoaded && s.HasSelectedHour()
}
