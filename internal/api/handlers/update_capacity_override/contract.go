package update_capacity_override

import (
	"context"

	"github.com/m04kA/SMC-TableBooking/internal/service/settings/models"
)

type SettingsService interface {
	SetCapacityOverride(ctx context.Context, req *models.CapacityOverrideRequest) (*models.CapacityOverrideResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
