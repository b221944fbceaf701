package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrTimeNotAvailable возвращается, когда выбранное время сейчас не предлагается
	// (день закрыт, время не из расписания, уже прошло или слот выключен)
	ErrTimeNotAvailable = errors.New("create_reservation: time is not available")

	// ErrNotEnoughSeats возвращается, когда свободных мест меньше, чем гостей
	ErrNotEnoughSeats = errors.New("create_reservation: not enough seats left")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
