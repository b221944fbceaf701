package availability

import (
	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

// IsClosed true, если дата совпадает с одной из закрытых дат
// или попадает в один из закрытых диапазонов (границы включительно)
// Линейный проход: закрытий ожидается десятки
func IsClosed(date types.DateString, closures domain.ClosureSet) bool {
	for _, closed := range closures.Dates {
		if types.CompareDates(date, closed) == 0 {
			return true
		}
	}

	for _, r := range closures.Ranges {
		if r.Contains(date) {
			return true
		}
	}

	return false
}

// IsBookableDay true, если ресторан работает в этот день недели и дата не закрыта
func IsBookableDay(cfg *domain.ScheduleConfig, date types.DateString) (bool, error) {
	weekday, err := date.Weekday()
	if err != nil {
		return false, err
	}
	if !cfg.IsOpenOn(weekday) {
		return false, nil
	}
	return !IsClosed(date, cfg.Closures), nil
}
