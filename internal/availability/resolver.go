package availability

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

var (
	singleDateLine = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})$`)
	dateRangeLine  = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s*-\s*(\d{4}-\d{2}-\d{2})$`)
	timeSeparators = regexp.MustCompile(`[,;\r\n]+`)
)

// Resolve превращает сырые настройки в нормализованное расписание
// Некорректные записи не прерывают разбор: они отбрасываются и возвращаются
// списком issues (каждая оборачивает ErrConfig) для логирования
func Resolve(raw domain.RawSettings) (*domain.ScheduleConfig, []error) {
	var issues []error

	cfg := &domain.ScheduleConfig{
		Slots: make(map[domain.Slot]domain.SlotSchedule, len(domain.Slots)),
	}

	for day := 0; day < 7; day++ {
		cfg.Open[day] = parseFlag(raw[domain.KeyOpenDay(day)])
	}

	for _, slot := range domain.Slots {
		times, timeIssues := ParseTimes(raw[domain.KeyTimes(slot)])
		for _, issue := range timeIssues {
			issues = append(issues, fmt.Errorf("%s: %w", domain.KeyTimes(slot), issue))
		}

		ceiling, err := parseCeiling(raw[domain.KeyCapacity(slot)])
		if err != nil {
			issues = append(issues, fmt.Errorf("%s: %w", domain.KeyCapacity(slot), err))
		}

		cfg.Slots[slot] = domain.SlotSchedule{
			Times:   times,
			Ceiling: ceiling,
		}
	}

	closures, closureIssues := ParseClosedDates(raw[domain.KeyClosedDates])
	for _, issue := range closureIssues {
		issues = append(issues, fmt.Errorf("%s: %w", domain.KeyClosedDates, issue))
	}
	cfg.Closures = closures

	return cfg, issues
}

// ParseTimes разбирает список времён слота
// Порядок первых вхождений сохраняется, дубликаты молча удаляются
func ParseTimes(text string) ([]types.TimeString, []error) {
	var issues []error
	times := make([]types.TimeString, 0)
	seen := make(map[types.TimeString]struct{})

	for _, entry := range timeSeparators.Split(text, -1) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		t, err := types.NewTimeStringFromString(entry)
		if err != nil {
			issues = append(issues, fmt.Errorf("%w: time %q dropped", ErrConfig, entry))
			continue
		}

		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		times = append(times, t)
	}

	return times, issues
}

// ParseClosedDates разбирает свободный текст закрытых дат
// Строка - либо "YYYY-MM-DD", либо "YYYY-MM-DD - YYYY-MM-DD"; прочие строки отбрасываются
func ParseClosedDates(text string) (domain.ClosureSet, []error) {
	var issues []error
	var closures domain.ClosureSet

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := singleDateLine.FindStringSubmatch(line); m != nil {
			date, err := types.NewDateStringFromString(m[1])
			if err != nil {
				issues = append(issues, fmt.Errorf("%w: line %q dropped", ErrConfig, line))
				continue
			}
			closures.Dates = append(closures.Dates, date)
			continue
		}

		if m := dateRangeLine.FindStringSubmatch(line); m != nil {
			from, errFrom := types.NewDateStringFromString(m[1])
			to, errTo := types.NewDateStringFromString(m[2])
			if errFrom != nil || errTo != nil || from.IsAfter(to) {
				issues = append(issues, fmt.Errorf("%w: range %q dropped", ErrConfig, line))
				continue
			}
			closures.Ranges = append(closures.Ranges, domain.DateRange{From: from, To: to})
			continue
		}

		issues = append(issues, fmt.Errorf("%w: line %q dropped", ErrConfig, line))
	}

	return closures, issues
}

// parseCeiling пустое значение - слот выключен; некорректное - тоже выключен, но с issue
func parseCeiling(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}

	ceiling, err := strconv.Atoi(value)
	if err != nil || ceiling < 0 {
		return 0, fmt.Errorf("%w: capacity %q treated as 0", ErrConfig, value)
	}
	if ceiling > domain.MaxCeiling {
		return domain.MaxCeiling, fmt.Errorf("%w: capacity %d capped at %d", ErrConfig, ceiling, domain.MaxCeiling)
	}

	return ceiling, nil
}

func parseFlag(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
