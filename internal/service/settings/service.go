package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TableBooking/internal/availability"
	"github.com/m04kA/SMC-TableBooking/internal/domain"
	overrideRepo "github.com/m04kA/SMC-TableBooking/internal/infra/storage/override"
	"github.com/m04kA/SMC-TableBooking/internal/service/settings/models"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

// Service сервис администрирования расписания ресторана
type Service struct {
	settingsRepo SettingsRepository
	overrideRepo OverrideRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	settingsRepo SettingsRepository,
	overrideRepo OverrideRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		overrideRepo: overrideRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Get возвращает текущие настройки вместе с результатом их разбора
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	raw, err := s.settingsRepo.GetRaw(ctx)
	if err != nil {
		s.logger.Error("Get: failed to load settings: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	cfg, issues := availability.Resolve(raw)
	return models.FromDomain(raw, cfg, issues), nil
}

// Update записывает переданные ключи
// Значения проверяются тем же разбором, что и при расчёте доступности:
// запись с ошибкой отклоняется целиком, а не молча сохраняется
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	// 1. Валидация ключей и длины значений
	if req == nil || len(req.Settings) == 0 {
		return nil, fmt.Errorf("%w: settings are empty", ErrInvalidInput)
	}
	for key, value := range req.Settings {
		if !domain.IsKnownSettingKey(key) {
			s.logger.Warn("Update: unknown key %q", key)
			return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
		}
		if len(value) > maxValueLength(key) {
			return nil, fmt.Errorf("%w: %s is too long", ErrInvalidInput, key)
		}
	}

	var resp *models.SettingsResponse

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2. Накладываем изменения на текущие настройки
		current, err := s.settingsRepo.GetRaw(txCtx)
		if err != nil {
			return fmt.Errorf("%w: Update - load settings: %v", ErrInternal, err)
		}

		merged := make(domain.RawSettings, len(current)+len(req.Settings))
		for k, v := range current {
			merged[k] = v
		}
		for k, v := range req.Settings {
			merged[k] = v
		}

		// 3. Разбираем результат; ошибки в изменённых ключах отклоняют запрос
		cfg, issues := availability.Resolve(merged)
		if rejected := issuesForKeys(issues, req.Settings); len(rejected) > 0 {
			return fmt.Errorf("%w: %s", ErrInvalidSettings, strings.Join(rejected, "; "))
		}

		// 4. Сохраняем
		if err := s.settingsRepo.Upsert(txCtx, domain.RawSettings(req.Settings)); err != nil {
			return fmt.Errorf("%w: Update - save settings: %v", ErrInternal, err)
		}

		resp = models.FromDomain(merged, cfg, issues)
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidSettings):
			s.logger.Warn("Update: %v", err)
			return nil, err
		case errors.Is(err, ErrInternal):
			s.logger.Error("Update: %v", err)
			return nil, err
		default:
			s.logger.Error("Update: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Update: %d settings keys updated", len(req.Settings))
	return resp, nil
}

// SetCapacityOverride задаёт или снимает переопределение вместимости слота на дату
func (s *Service) SetCapacityOverride(ctx context.Context, req *models.CapacityOverrideRequest) (*models.CapacityOverrideResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	date, err := types.NewDateStringFromString(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	slot := domain.Slot(strings.ToLower(strings.TrimSpace(req.Slot)))
	if !slot.IsValid() {
		return nil, fmt.Errorf("%w: unknown slot %q", ErrInvalidInput, req.Slot)
	}

	resp := &models.CapacityOverrideResponse{Date: date.String(), Slot: slot.String()}

	if req.Ceiling == nil {
		if err := s.overrideRepo.Delete(ctx, date, slot); err != nil {
			if errors.Is(err, overrideRepo.ErrOverrideNotFound) {
				return nil, ErrOverrideNotFound
			}
			s.logger.Error("SetCapacityOverride: failed to delete override %s %s: %v", date, slot, err)
			return nil, fmt.Errorf("%w: SetCapacityOverride - delete: %v", ErrInternal, err)
		}
		s.logger.Info("SetCapacityOverride: override removed for %s %s", date, slot)
		return resp, nil
	}

	ceiling := *req.Ceiling
	if ceiling < 0 || ceiling > domain.MaxCeiling {
		return nil, fmt.Errorf("%w: ceiling must be between 0 and %d", ErrInvalidInput, domain.MaxCeiling)
	}

	if err := s.overrideRepo.Upsert(ctx, domain.CapacityOverride{Date: date, Slot: slot, Ceiling: ceiling}); err != nil {
		s.logger.Error("SetCapacityOverride: failed to save override %s %s: %v", date, slot, err)
		return nil, fmt.Errorf("%w: SetCapacityOverride - upsert: %v", ErrInternal, err)
	}

	s.logger.Info("SetCapacityOverride: %s %s ceiling=%d", date, slot, ceiling)
	resp.Ceiling = &ceiling
	return resp, nil
}

func maxValueLength(key string) int {
	if key == domain.KeyClosedDates {
		return domain.MaxClosedDatesLength
	}
	return domain.MaxTimesPerSlotLength
}

// issuesForKeys оставляет только ошибки разбора, относящиеся к изменяемым ключам
// Сообщения резолвера начинаются с "<key>: "
func issuesForKeys(issues []error, updated map[string]string) []string {
	var out []string
	for _, issue := range issues {
		msg := issue.Error()
		for key := range updated {
			if strings.HasPrefix(msg, key+": ") {
				out = append(out, msg)
				break
			}
		}
	}
	return out
}
