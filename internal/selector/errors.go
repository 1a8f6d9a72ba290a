package selector

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных параметрах создания селектора
	ErrInvalidInput = errors.New("selector: invalid input data")

	// ErrAvailabilityFetchFailed не удалось получить доступность, показывается последняя известная
	ErrAvailabilityFetchFailed = errors.New("selector: availability fetch failed")

	// ErrBookingSubmissionFailed не удалось создать запись, выбор сохранен для повтора
	ErrBookingSubmissionFailed = errors.New("selector: booking submission failed")
)
