package bookings

import "errors"

var (
	// ErrJournalDisabled возвращается, когда журнал попыток не настроен
	ErrJournalDisabled = errors.New("bookings: attempt journal is disabled")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
