package availability

import "errors"

var (
	// ErrConfig повреждённая запись настроек; запись отбрасывается, расчёт продолжается
	ErrConfig = errors.New("availability: malformed setting")

	// ErrDemand возвращается, когда не удалось получить текущий спрос
	ErrDemand = errors.New("availability: demand lookup failed")

	// ErrCeilingOverride возвращается, когда стратегия переопределения вместимости вернула ошибку
	ErrCeilingOverride = errors.New("availability: ceiling override failed")
)
