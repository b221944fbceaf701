package availability

import (
	"time"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

// FilterPast убирает времена, которые уже нельзя забронировать
//   - дата позже сегодняшней: все времена доступны
//   - сегодня: остаются только времена строго позже now + CutoffMinutes
//   - дата в прошлом: пустой результат
//
// nowLocal должен быть в часовом поясе ресторана
func FilterPast(date types.DateString, times []types.TimeString, nowLocal time.Time) []types.TimeString {
	today := types.NewDateString(nowLocal)

	switch types.CompareDates(date, today) {
	case 1:
		result := make([]types.TimeString, len(times))
		copy(result, times)
		return result
	case -1:
		return []types.TimeString{}
	}

	threshold, err := types.NewTimeString(nowLocal).AddMinutes(domain.CutoffMinutes)
	if err != nil {
		// now + cutoff уже за полночью - на сегодня ничего не осталось
		return []types.TimeString{}
	}

	result := make([]types.TimeString, 0, len(times))
	for _, t := range times {
		if t.IsAfter(threshold) {
			result = append(result, t)
		}
	}

	return result
}
