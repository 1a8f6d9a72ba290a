package handlers

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentScheduler/internal/domain"
	"github.com/m04kA/SMC-AppointmentScheduler/internal/selector"
	"github.com/m04kA/SMC-AppointmentScheduler/internal/service/sessions"
)

// Коды последней ошибки селектора, отдаваемые клиенту
const (
	LastErrorAvailability = "availability_fetch_failed"
	LastErrorSubmission   = "booking_submission_failed"
	LastErrorUnknown      = "unknown"
)

// SlotResponse час доступности провайдера
type SlotResponse struct {
	Hour      int    `json:"hour"`
	Available bool   `json:"available"`
	Label     string `json:"label"`
}

// OutcomeResponse результат отправки записи
type OutcomeResponse struct {
	Status     string  `json:"status"`
	DateTime   *string `json:"dateTime,omitempty"`   // RFC3339
	DateTimeMs *int64  `json:"dateTimeMs,omitempty"` // unix ms для экрана подтверждения
	Reason     *string `json:"reason,omitempty"`
}

// SessionResponse состояние экрана записи
type SessionResponse struct {
	ID           string           `json:"id"`
	State        string           `json:"state"`
	ProviderID   string           `json:"providerId"`
	Date         string           `json:"date"`
	SelectedHour *int             `json:"selectedHour"`
	Availability []SlotResponse   `json:"availability"`
	Morning      []SlotResponse   `json:"morning"`
	Afternoon    []SlotResponse   `json:"afternoon"`
	CalendarOpen bool             `json:"calendarOpen"`
	CanSubmit    bool             `json:"canSubmit"`
	Outcome      *OutcomeResponse `json:"outcome,omitempty"`
	LastError    *string          `json:"lastError,omitempty"`
}

// ActionResponse ответ на действие пользователя
type ActionResponse struct {
	Accepted bool             `json:"accepted"`
	Session  *SessionResponse `json:"session"`
}

// FromSession конвертирует сессию в HTTP response
func FromSession(s *sessions.Session) *SessionResponse {
	snap := s.Snapshot

	resp := &SessionResponse{
		ID:           s.ID,
		State:        string(snap.State),
		ProviderID:   snap.ProviderID,
		Date:         snap.Date.String(),
		Availability: make([]SlotResponse, 0, len(snap.Availability)),
		Morning:      fromGroup(snap.Morning),
		Afternoon:    fromGroup(snap.Afternoon),
		CalendarOpen: snap.CalendarOpen,
		CanSubmit:    snap.CanSubmit(),
	}

	if snap.HasSelectedHour() {
		hour := snap.SelectedHour
		resp.SelectedHour = &hour
	}

	for _, slot := range snap.Availability {
		resp.Availability = append(resp.Availability, SlotResponse{
			Hour:      slot.Hour,
			Available: slot.Available,
			Label:     domain.HourLabel(slot.Hour),
		})
	}

	if snap.Outcome != nil {
		resp.Outcome = fromOutcome(*snap.Outcome)
	}

	if snap.LastError != nil {
		code := lastErrorCode(snap.LastError)
		resp.LastError = &code
	}

	return resp
}

// FromActionResult конвертирует результат действия в HTTP response
func FromActionResult(res *sessions.ActionResult) *ActionResponse {
	return &ActionResponse{
		Accepted: res.Accepted,
		Session:  FromSession(res.Session),
	}
}

func fromGroup(group domain.SlotGroup) []SlotResponse {
	result := make([]SlotResponse, 0, len(group))
	for _, v := range group {
		result = append(result, SlotResponse{Hour: v.Hour, Available: v.Available, Label: v.Label})
	}
	return result
}

func fromOutcome(o domain.BookingOutcome) *OutcomeResponse {
	resp := &OutcomeResponse{Status: string(o.Status)}

	if o.IsCreated() {
		dateTime := o.DateTime.Format(time.RFC3339)
		ms := o.DateTime.UnixMilli()
		resp.DateTime = &dateTime
		resp.DateTimeMs = &ms
		return resp
	}

	reason := o.Reason
	resp.Reason = &reason
	return resp
}

func lastErrorCode(err error) string {
	switch {
	case errors.Is(err, selector.ErrAvailabilityFetchFailed):
		return LastErrorAvailability
	case errors.Is(err, selector.ErrBookingSubmissionFailed):
		return LastErrorSubmission
	default:
		return LastErrorUnknown
	}
}
