package domain

// Slot partitioning constants
const (
	AfternoonStartHour = 12 // часы до 12 относятся к утру
	NoHourSelected     = 0  // сентинел "час не выбран"
)

// Time format constants
const (
	HourLabelFormat = "%02d:00"    // HH:00
	DateFormat      = "2006-01-02" // YYYY-MM-DD
)

// DefaultFailureReason причина, которую получает пользователь при неудачной записи
const DefaultFailureReason = "appointment could not be created"
