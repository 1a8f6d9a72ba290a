package slots

import "github.com/m04kA/SMC-AppointmentScheduler/internal/domain"

// Partitioned доступность дня, разбитая на утро и день
type Partitioned struct {
	Morning   domain.SlotGroup
	Afternoon domain.SlotGroup
}

// Partition разбивает доступность на утренние (час < 12) и дневные слоты.
// Порядок внутри групп совпадает с порядком во входном списке,
// часы вне диапазона 0..23 пропускаются как есть.
func Partition(availability []domain.AvailabilitySlot) Partitioned {
	result := Partitioned{
		Morning:   make(domain.SlotGroup, 0),
		Afternoon: make(domain.SlotGroup, 0),
	}

	for _, slot := range availability {
		view := domain.SlotView{
			Hour:      slot.Hour,
			Available: slot.Available,
			Label:     domain.HourLabel(slot.Hour),
		}

		if slot.IsMorning() {
			result.Morning = append(result.Morning, view)
		} else {
			result.Afternoon = append(result.Afternoon, view)
		}
	}

	return result
}

// FindHour ищет слот с указанным часом
func FindHour(availability []domain.AvailabilitySlot, hour int) (domain.AvailabilitySlot, bool) {
	for _, slot := range availability {
		if slot.Hour == hour {
			return slot, true
		}
	}
	return domain.AvailabilitySlot{}, false
}
