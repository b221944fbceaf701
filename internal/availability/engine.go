package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

// Outcome причина результата расчёта
// Наружу не отдаётся: для клиента пустой результат одинаков при любой причине
type Outcome string

const (
	OutcomeAvailable     Outcome = "available"
	OutcomeWeekdayClosed Outcome = "weekday_closed"
	OutcomeClosedDate    Outcome = "closed_date"
	OutcomeNoTimes       Outcome = "no_times"
	OutcomeCutoff        Outcome = "cutoff"
	OutcomeSoldOut       Outcome = "sold_out"
)

// Query запрос доступности
type Query struct {
	Date     types.DateString
	Slot     domain.Slot
	NowLocal time.Time // Текущий момент в часовом поясе ресторана, фиксируется вызывающим
}

// DemandFunc возвращает число гостей, уже занявших места на дату и слот
// Вызывается не более одного раза и только если остались времена для предложения
type DemandFunc func(ctx context.Context, date types.DateString, slot domain.Slot) (int, error)

// Evaluation результат расчёта
type Evaluation struct {
	Options   []domain.TimeOption
	Outcome   Outcome
	Ceiling   int // Действующая вместимость (0, если до шага вместимости не дошли)
	Remaining int // Свободные места (0, если до шага вместимости не дошли)
}

// Evaluate вычисляет доступные времена для даты и слота
// Шаги упорядочены от дешёвых к дорогим, каждый либо фильтр, либо гейт "всё или ничего",
// поэтому порядок влияет только на число обращений к спросу, но не на результат
// override может быть nil; demand обязателен, без него возвращается ErrDemand
func Evaluate(
	ctx context.Context,
	cfg *domain.ScheduleConfig,
	q Query,
	demand DemandFunc,
	override CeilingOverride,
) (*Evaluation, error) {
	// 1. День недели
	weekday, err := q.Date.Weekday()
	if err != nil {
		return nil, err
	}
	if !cfg.IsOpenOn(weekday) {
		return empty(OutcomeWeekdayClosed), nil
	}

	// 2. Закрытые даты
	if IsClosed(q.Date, cfg.Closures) {
		return empty(OutcomeClosedDate), nil
	}

	// 3. Настроенные времена слота
	schedule := cfg.SlotSchedule(q.Slot)
	if !schedule.HasTimes() {
		return empty(OutcomeNoTimes), nil
	}

	// 4-5. Отсечение прошедших времён
	times := FilterPast(q.Date, schedule.Times, q.NowLocal)
	if len(times) == 0 {
		return empty(OutcomeCutoff), nil
	}

	// 6. Вместимость
	ceiling := schedule.Ceiling
	if override != nil {
		ceiling, err = override(ctx, q.Date, q.Slot, schedule.Ceiling)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCeilingOverride, err)
		}
	}

	if ceiling <= 0 {
		return &Evaluation{Options: []domain.TimeOption{}, Outcome: OutcomeSoldOut}, nil
	}

	if demand == nil {
		return nil, fmt.Errorf("%w: demand reader is nil", ErrDemand)
	}
	booked, err := demand(ctx, q.Date, q.Slot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDemand, err)
	}

	remaining := Remaining(ceiling, booked)
	if remaining <= 0 {
		return &Evaluation{Options: []domain.TimeOption{}, Outcome: OutcomeSoldOut, Ceiling: ceiling}, nil
	}

	// 7. Результат в порядке настройки
	options := make([]domain.TimeOption, len(times))
	for i, t := range times {
		options[i] = domain.TimeOption{Slot: q.Slot, Time: t}
	}

	return &Evaluation{
		Options:   options,
		Outcome:   OutcomeAvailable,
		Ceiling:   ceiling,
		Remaining: remaining,
	}, nil
}

func empty(outcome Outcome) *Evaluation {
	return &Evaluation{Options: []domain.TimeOption{}, Outcome: outcome}
}
