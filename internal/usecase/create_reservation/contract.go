package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	SumGuests(ctx context.Context, date types.DateString, slot domain.Slot) (int, error)
	LockSlot(ctx context.Context, date types.DateString, slot domain.Slot) error
}

// SettingsRepository интерфейс хранилища настроек ресторана
type SettingsRepository interface {
	GetRaw(ctx context.Context) (domain.RawSettings, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics интерфейс для учёта результатов бронирования
type Metrics interface {
	ObserveReservation(slot, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
