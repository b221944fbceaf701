package models

import (
	"sort"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
)

// UpdateSettingsRequest частичное обновление настроек (только переданные ключи)
type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings"`
}

// CapacityOverrideRequest переопределение вместимости; Ceiling == nil удаляет переопределение
type CapacityOverrideRequest struct {
	Date    string `json:"date"`
	Slot    string `json:"slot"`
	Ceiling *int   `json:"ceiling"`
}

// SettingsResponse сырые настройки и их разобранное представление
type SettingsResponse struct {
	Settings map[string]string `json:"settings"`
	Schedule ScheduleView      `json:"schedule"`
	Issues   []string          `json:"issues,omitempty"`
}

// ScheduleView расписание после разбора
type ScheduleView struct {
	OpenDays     []int               `json:"openDays"` // Sunday=0..Saturday=6
	Slots        map[string]SlotView `json:"slots"`
	ClosedDates  []string            `json:"closedDates"`
	ClosedRanges []ClosedRangeView   `json:"closedRanges"`
}

type SlotView struct {
	Times    []string `json:"times"`
	Capacity int      `json:"capacity"`
}

type ClosedRangeView struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// CapacityOverrideResponse результат изменения переопределения
type CapacityOverrideResponse struct {
	Date    string `json:"date"`
	Slot    string `json:"slot"`
	Ceiling *int   `json:"ceiling"` // nil - переопределение снято
}

// FromDomain собирает ответ из сырых настроек и результата разбора
func FromDomain(raw domain.RawSettings, cfg *domain.ScheduleConfig, issues []error) *SettingsResponse {
	resp := &SettingsResponse{
		Settings: make(map[string]string, len(raw)),
		Schedule: ScheduleView{
			OpenDays:     make([]int, 0, 7),
			Slots:        make(map[string]SlotView, len(domain.Slots)),
			ClosedDates:  make([]string, 0, len(cfg.Closures.Dates)),
			ClosedRanges: make([]ClosedRangeView, 0, len(cfg.Closures.Ranges)),
		},
	}

	for k, v := range raw {
		resp.Settings[k] = v
	}

	for day, open := range cfg.Open {
		if open {
			resp.Schedule.OpenDays = append(resp.Schedule.OpenDays, day)
		}
	}

	for _, slot := range domain.Slots {
		schedule := cfg.SlotSchedule(slot)
		times := make([]string, len(schedule.Times))
		for i, t := range schedule.Times {
			times[i] = t.String()
		}
		resp.Schedule.Slots[slot.String()] = SlotView{Times: times, Capacity: schedule.Ceiling}
	}

	for _, d := range cfg.Closures.Dates {
		resp.Schedule.ClosedDates = append(resp.Schedule.ClosedDates, d.String())
	}
	sort.Strings(resp.Schedule.ClosedDates)

	for _, r := range cfg.Closures.Ranges {
		resp.Schedule.ClosedRanges = append(resp.Schedule.ClosedRanges, ClosedRangeView{From: r.From.String(), To: r.To.String()})
	}

	for _, issue := range issues {
		resp.Issues = append(resp.Issues, issue.Error())
	}

	return resp
}
