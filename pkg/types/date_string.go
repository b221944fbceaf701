package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateFormat формат даты YYYY-MM-DD
const DateFormat = "2006-01-02"

// ErrInvalidDateString возвращается, когда строка не является календарной датой YYYY-MM-DD
var ErrInvalidDateString = errors.New("invalid date string format")

// DateString календарная дата в формате YYYY-MM-DD
// Каноническая форма позволяет сравнивать даты лексикографически, без
// преобразования во время и без зависимости от часового пояса
type DateString string

// NewDateString возвращает календарную дату из time.Time в его собственной локации
func NewDateString(t time.Time) DateString {
	return DateString(t.Format(DateFormat))
}

// NewDateStringFromString парсит и валидирует строку YYYY-MM-DD
func NewDateStringFromString(s string) (DateString, error) {
	s = strings.TrimSpace(s)
	if len(s) != len(DateFormat) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateString, s)
	}
	if _, err := time.Parse(DateFormat, s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateString, s)
	}
	return DateString(s), nil
}

// String возвращает строковое представление
func (d DateString) String() string {
	return string(d)
}

// IsZero true, если дата не задана
func (d DateString) IsZero() bool {
	return d == ""
}

// Time возвращает полночь даты в указанной локации
func (d DateString) Time(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, string(d), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateString, string(d))
	}
	return t, nil
}

// Weekday возвращает день недели даты (Sunday=0..Saturday=6)
func (d DateString) Weekday() (time.Weekday, error) {
	t, err := d.Time(time.UTC)
	if err != nil {
		return 0, err
	}
	return t.Weekday(), nil
}

// AddDays возвращает дату, сдвинутую на days календарных дней
func (d DateString) AddDays(days int) (DateString, error) {
	t, err := d.Time(time.UTC)
	if err != nil {
		return "", err
	}
	return NewDateString(t.AddDate(0, 0, days)), nil
}

// IsBefore true, если d строго раньше other
func (d DateString) IsBefore(other DateString) bool {
	return CompareDates(d, other) < 0
}

// IsAfter true, если d строго позже other
func (d DateString) IsAfter(other DateString) bool {
	return CompareDates(d, other) > 0
}

// CompareDates сравнивает две даты в каноническом формате YYYY-MM-DD
// Возвращает -1, 0 или 1
func CompareDates(a, b DateString) int {
	return strings.Compare(string(a), string(b))
}

// Value реализует driver.Valuer
func (d DateString) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return string(d), nil
}

// Scan реализует sql.Scanner (lib/pq отдаёт DATE как time.Time)
func (d *DateString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = ""
		return nil
	case time.Time:
		*d = DateString(v.Format(DateFormat))
		return nil
	case string:
		parsed, err := NewDateStringFromString(firstN(v, len(DateFormat)))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := NewDateStringFromString(firstN(string(v), len(DateFormat)))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidDateString, src)
	}
}

func firstN(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
