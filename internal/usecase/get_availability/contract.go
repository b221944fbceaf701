package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

// SettingsRepository интерфейс хранилища настроек ресторана
type SettingsRepository interface {
	GetRaw(ctx context.Context) (domain.RawSettings, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// SumGuests возвращает число гостей в активных бронированиях на дату и слот
	SumGuests(ctx context.Context, date types.DateString, slot domain.Slot) (int, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics интерфейс для учёта результатов расчёта
type Metrics interface {
	ObserveAvailability(slot, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени в часовом поясе ресторана
type RealTimeProvider struct {
	loc *time.Location
}

// NewRealTimeProvider создаёт провайдер; nil означает UTC
func NewRealTimeProvider(loc *time.Location) *RealTimeProvider {
	if loc == nil {
		loc = time.UTC
	}
	return &RealTimeProvider{loc: loc}
}

// Now возвращает текущее время в часовом поясе ресторана
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().In(p.loc)
}
