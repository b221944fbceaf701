package get_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TableBooking/internal/availability"
	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

// UseCase use case получения доступных времён на дату и слот
type UseCase struct {
	settingsRepo    SettingsRepository
	reservationRepo ReservationRepository
	ceilingOverride availability.CeilingOverride
	timeProvider    TimeProvider
	queryTimeout    time.Duration
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// ceilingOverride и metrics могут быть nil
func NewUseCase(
	settingsRepo SettingsRepository,
	reservationRepo ReservationRepository,
	ceilingOverride availability.CeilingOverride,
	timeProvider TimeProvider,
	queryTimeout time.Duration,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		settingsRepo:    settingsRepo,
		reservationRepo: reservationRepo,
		ceilingOverride: ceilingOverride,
		timeProvider:    timeProvider,
		queryTimeout:    queryTimeout,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных времён
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	date, slot, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// Дедлайн на все обращения к хранилищу в рамках запроса
	if uc.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.queryTimeout)
		defer cancel()
	}

	// 2. Загружаем и разбираем настройки (каждый запрос заново, без кэша)
	raw, err := uc.settingsRepo.GetRaw(ctx)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to load settings: %v", err)
		return nil, fmt.Errorf("%w: failed to load settings: %v", ErrInternal, err)
	}

	cfg, issues := availability.Resolve(raw)
	for _, issue := range issues {
		uc.logger.Warn("GetAvailability: %v", issue)
	}

	// 3. Текущее время в часовом поясе ресторана
	now := uc.timeProvider.Now()

	// 4. Расчёт; спрос читается только если он нужен
	eval, err := availability.Evaluate(ctx, cfg, availability.Query{
		Date:     date,
		Slot:     slot,
		NowLocal: now,
	}, uc.demand, uc.ceilingOverride)
	if err != nil {
		uc.logger.Error("GetAvailability: evaluation failed for date=%s slot=%s: %v", date, slot, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if uc.metrics != nil {
		uc.metrics.ObserveAvailability(slot.String(), string(eval.Outcome))
	}

	uc.logger.Info("GetAvailability: date=%s slot=%s outcome=%s options=%d remaining=%d",
		date, slot, eval.Outcome, len(eval.Options), eval.Remaining)

	return &Response{
		Date:    date,
		Slot:    slot,
		Options: eval.Options,
	}, nil
}

func (uc *UseCase) demand(ctx context.Context, date types.DateString, slot domain.Slot) (int, error) {
	return uc.reservationRepo.SumGuests(ctx, date, slot)
}
