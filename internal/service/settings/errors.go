package settings

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrUnknownKey возвращается при попытке записать неизвестный ключ настроек
	ErrUnknownKey = errors.New("unknown settings key")

	// ErrInvalidSettings возвращается, когда новое значение не проходит разбор расписания
	ErrInvalidSettings = errors.New("invalid settings value")

	// ErrOverrideNotFound возвращается при удалении несуществующего переопределения
	ErrOverrideNotFound = errors.New("capacity override not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
