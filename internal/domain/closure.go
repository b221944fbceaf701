package domain

import "github.com/m04kA/SMC-TableBooking/pkg/types"

// DateRange закрытый диапазон дат, границы включительно (From <= To)
type DateRange struct {
	From types.DateString
	To   types.DateString
}

// Contains true, если дата лежит в диапазоне [From, To]
func (r DateRange) Contains(date types.DateString) bool {
	return types.CompareDates(r.From, date) <= 0 && types.CompareDates(date, r.To) <= 0
}

// ClosureSet набор дат, в которые ресторан закрыт
// Одиночные даты и диапазоны могут пересекаться (семантика объединения)
type ClosureSet struct {
	Dates  []types.DateString
	Ranges []DateRange
}

// IsEmpty true, если закрытий нет
func (c ClosureSet) IsEmpty() bool {
	return len(c.Dates) == 0 && len(c.Ranges) == 0
}
