package domain

import (
	"time"

	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

// SlotSchedule расписание одного слота
type SlotSchedule struct {
	Times   []types.TimeString // Упорядоченный список времён, без дубликатов
	Ceiling int                // Максимум гостей на слот в день, 0 = слот не предлагается
}

// ScheduleConfig нормализованное расписание ресторана
type ScheduleConfig struct {
	Open     [7]bool // Индекс - time.Weekday (Sunday=0..Saturday=6)
	Slots    map[Slot]SlotSchedule
	Closures ClosureSet
}

// IsOpenOn returns true if the restaurant is open on the given weekday
func (c *ScheduleConfig) IsOpenOn(weekday time.Weekday) bool {
	if weekday < time.Sunday || weekday > time.Saturday {
		return false
	}
	return c.Open[weekday]
}

// SlotSchedule returns the schedule of a slot; unknown slots have no times
func (c *ScheduleConfig) SlotSchedule(slot Slot) SlotSchedule {
	if c.Slots == nil {
		return SlotSchedule{}
	}
	return c.Slots[slot]
}

// HasTimes returns true if the slot has at least one configured time
func (s SlotSchedule) HasTimes() bool {
	return len(s.Times) > 0
}

// IsOffered returns true if the slot has times and a non-zero ceiling
func (s SlotSchedule) IsOffered() bool {
	return s.HasTimes() && s.Ceiling > 0
}
