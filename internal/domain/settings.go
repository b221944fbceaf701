package domain

import "fmt"

// RawSettings настройки в том виде, в каком их хранит хранилище конфигурации
// Ключи:
//   - open_day_0 .. open_day_6  - "1"/"true"/"yes"/"on" означает открыто (Sunday=0)
//   - <slot>_times              - список HH:MM через запятую, точку с запятой или перевод строки
//   - <slot>_capacity           - неотрицательное целое
//   - closed_dates              - по одной дате или диапазону на строку
//
// Единственный потребитель - резолвер, который превращает их в ScheduleConfig
type RawSettings map[string]string

// KeyClosedDates ключ текста закрытых дат
const KeyClosedDates = "closed_dates"

// KeyOpenDay ключ флага открытия для дня недели (Sunday=0..Saturday=6)
func KeyOpenDay(weekday int) string {
	return fmt.Sprintf("open_day_%d", weekday)
}

// KeyTimes ключ списка времён слота
func KeyTimes(slot Slot) string {
	return string(slot) + "_times"
}

// KeyCapacity ключ вместимости слота
func KeyCapacity(slot Slot) string {
	return string(slot) + "_capacity"
}

// IsKnownSettingKey true, если ключ относится к расписанию
func IsKnownSettingKey(key string) bool {
	if key == KeyClosedDates {
		return true
	}
	for day := 0; day < 7; day++ {
		if key == KeyOpenDay(day) {
			return true
		}
	}
	for _, slot := range Slots {
		if key == KeyTimes(slot) || key == KeyCapacity(slot) {
			return true
		}
	}
	return false
}
