package providerservice

import "errors"

var (
	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = errors.New("providerservice client: provider not found")

	// ErrUnauthorized возвращается, когда токен пользователя отклонен
	ErrUnauthorized = errors.New("providerservice client: unauthorized")

	// ErrAppointmentRejected возвращается, когда сервис отказал в создании записи
	ErrAppointmentRejected = errors.New("providerservice client: appointment rejected")

	// ErrThrottled возвращается, когда запрос не дождался лимитера
	ErrThrottled = errors.New("providerservice client: request throttled")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("providerservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("providerservice client: invalid response")
)
