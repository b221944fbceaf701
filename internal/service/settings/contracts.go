package settings

import (
	"context"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

// SettingsRepository интерфейс хранилища настроек ресторана
type SettingsRepository interface {
	GetRaw(ctx context.Context) (domain.RawSettings, error)
	Upsert(ctx context.Context, values domain.RawSettings) error
}

// OverrideRepository интерфейс хранилища переопределений вместимости
type OverrideRepository interface {
	Upsert(ctx context.Context, o domain.CapacityOverride) error
	Delete(ctx context.Context, date types.DateString, slot domain.Slot) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
