package availability

import (
	"context"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

// CeilingOverride стратегия переопределения вместимости слота на дату
// Получает настроенное значение и возвращает действующее
type CeilingOverride func(ctx context.Context, date types.DateString, slot domain.Slot, configured int) (int, error)

// Remaining количество свободных мест
// Вместимость 0 означает, что слот не предлагается вовсе (а не "без ограничений")
func Remaining(ceiling, demand int) int {
	if ceiling <= 0 {
		return 0
	}

	remaining := ceiling - demand
	if remaining < 0 {
		return 0
	}

	return remaining
}
