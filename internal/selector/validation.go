package selector

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentScheduler/internal/domain"
	"github.com/m04kA/SMC-AppointmentScheduler/internal/slots"
)

// validateParams валидирует параметры создания селектора
func validateParams(p Params) error {
	if p.ProviderID == "" {
		return fmt.Errorf("%w: providerID is required", ErrInvalidInput)
	}

	if !p.Date.IsValid() {
		return fmt.Errorf("%w: invalid date %s", ErrInvalidInput, p.Date)
	}

	if p.RequestTimeout < 0 {
		return fmt.Errorf("%w: request timeout must not be negative", ErrInvalidInput)
	}

	return nil
}

// isSelectable проверяет, что час есть в загруженной доступности и свободен.
// Час 0 совпадает с сентинелом "не выбран" и выбрать его нельзя.
func isSelectable(availability []domain.AvailabilitySlot, hour int) bool {
	if hour == domain.NoHourSelected {
		return false
	}

	slot, ok := slots.FindHour(availability, hour)
	return ok && slot.Available
}
