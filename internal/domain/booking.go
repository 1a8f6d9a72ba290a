package domain

import "time"

// OutcomeStatus represents the result kind of a booking submission
type OutcomeStatus string

const (
	OutcomeCreated OutcomeStatus = "created"
	OutcomeFailed  OutcomeStatus = "failed"
)

// BookingRequest is built at submission time from the selected date and hour
type BookingRequest struct {
	ProviderID string
	DateTime   time.Time
}

// BookingOutcome is either Created{DateTime} or Failed{Reason}
type BookingOutcome struct {
	Status   OutcomeStatus
	DateTime time.Time // заполнено только для OutcomeCreated
	Reason   string    // заполнено только для OutcomeFailed
}

// Created returns a successful outcome echoing the requested date-time
func Created(dateTime time.Time) BookingOutcome {
	return BookingOutcome{Status: OutcomeCreated, DateTime: dateTime}
}

// Failed returns a failed outcome with a generic reason
func Failed(reason string) BookingOutcome {
	return BookingOutcome{Status: OutcomeFailed, Reason: reason}
}

// IsCreated returns true if the appointment was created
func (o BookingOutcome) IsCreated() bool {
	return o.Status == OutcomeCreated
}

// BookingAttempt запись журнала попыток создания записи
type BookingAttempt struct {
	ID         int64
	SessionID  string
	ProviderID string
	DateTime   time.Time
	Status     OutcomeStatus
	Reason     *string
	CreatedAt  time.Time
}
