package domain

import "fmt"

// AvailabilitySlot represents one candidate hour of a provider's day
type AvailabilitySlot struct {
	Hour      int
	Available bool
}

// SlotView is an availability slot prepared for display
type SlotView struct {
	Hour      int
	Available bool
	Label     string
}

// SlotGroup is an ordered part of a day's availability (morning or afternoon)
type SlotGroup []SlotView

// IsMorning returns true if the slot belongs to the morning group
func (s AvailabilitySlot) IsMorning() bool {
	return s.Hour < AfternoonStartHour
}

// HourLabel форматирует час как "HH:00" без учета локали и часового пояса.
// Значения вне 0..23 не корректируются.
func HourLabel(hour int) string {
	return fmt.Sprintf(HourLabelFormat, hour)
}
