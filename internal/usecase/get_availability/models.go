package get_availability

import (
	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

// Request модель запроса доступности (сырые значения от транспорта)
type Request struct {
	Date string // YYYY-MM-DD
	Slot string // lunch | dinner | aperitif
}

// Response модель ответа
// Пустой Options означает, что предложить нечего; причина наружу не отдаётся
type Response struct {
	Date    types.DateString
	Slot    domain.Slot
	Options []domain.TimeOption
}
