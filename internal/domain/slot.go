package domain

import "github.com/m04kA/SMC-TableBooking/pkg/types"

// Slot именованное окно обслуживания (обед, ужин, аперитив)
type Slot string

const (
	SlotLunch    Slot = "lunch"
	SlotDinner   Slot = "dinner"
	SlotAperitif Slot = "aperitif"
)

// Slots все известные слоты в порядке отображения
var Slots = []Slot{SlotLunch, SlotDinner, SlotAperitif}

// IsValid true, если слот известен системе
func (s Slot) IsValid() bool {
	for _, known := range Slots {
		if s == known {
			return true
		}
	}
	return false
}

// String возвращает строковое представление
func (s Slot) String() string {
	return string(s)
}

// TimeOption время, которое можно предложить гостю
type TimeOption struct {
	Slot Slot
	Time types.TimeString
}
