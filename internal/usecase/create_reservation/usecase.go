package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TableBooking/internal/availability"
	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

// Результаты для метрики reservations_total
const (
	resultCreated          = "created"
	resultInvalid          = "invalid"
	resultTimeNotAvailable = "time_not_available"
	resultNotEnoughSeats   = "not_enough_seats"
	resultError            = "error"
)

// UseCase use case для создания бронирования столика
type UseCase struct {
	reservationRepo ReservationRepository
	settingsRepo    SettingsRepository
	ceilingOverride availability.CeilingOverride
	txManager       TransactionManager
	timeProvider    TimeProvider
	maxPartySize    int
	newReference    func() uuid.UUID
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	settingsRepo SettingsRepository,
	ceilingOverride availability.CeilingOverride,
	txManager TransactionManager,
	timeProvider TimeProvider,
	maxPartySize int,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if maxPartySize <= 0 {
		maxPartySize = domain.DefaultMaxPartySize
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		settingsRepo:    settingsRepo,
		ceilingOverride: ceilingOverride,
		txManager:       txManager,
		timeProvider:    timeProvider,
		maxPartySize:    maxPartySize,
		newReference:    uuid.New,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка мест и вставка идут в одной транзакции под advisory-блокировкой слота,
// поэтому два конкурентных запроса не могут вместе превысить вместимость
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	in, err := validateRequest(req, uc.maxPartySize)
	if err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		uc.observe("unknown", resultInvalid)
		return nil, err
	}

	uc.logger.Info("CreateReservation: date=%s, slot=%s, time=%s, guests=%d",
		in.date, in.slot, in.time, req.Guests)

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Загружаем расписание
	raw, err := uc.settingsRepo.GetRaw(ctx)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to load settings: %v", err)
		uc.observe(in.slot.String(), resultError)
		return nil, fmt.Errorf("%w: failed to load settings: %v", ErrInternal, err)
	}

	cfg, issues := availability.Resolve(raw)
	for _, issue := range issues {
		uc.logger.Warn("CreateReservation: %v", issue)
	}

	var created *domain.Reservation

	// 4. Проверяем доступность и создаём бронирование в транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 4.1. Сериализуем бронирования одного слота на одну дату
		if err := uc.reservationRepo.LockSlot(txCtx, in.date, in.slot); err != nil {
			return fmt.Errorf("%w: failed to lock slot: %v", ErrInternal, err)
		}

		// 4.2. Пересчитываем доступность уже под блокировкой
		eval, err := availability.Evaluate(txCtx, cfg, availability.Query{
			Date:     in.date,
			Slot:     in.slot,
			NowLocal: now,
		}, uc.reservationRepo.SumGuests, uc.ceilingOverride)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		// 4.3. Время должно быть среди предлагаемых
		if !containsTime(eval.Options, in.time) {
			// Выключенный слот (вместимость 0) - это недоступное время, а не нехватка мест
			if eval.Outcome == availability.OutcomeSoldOut && eval.Ceiling > 0 {
				uc.logger.Warn("CreateReservation: slot %s on %s is sold out", in.slot, in.date)
				return ErrNotEnoughSeats
			}
			uc.logger.Warn("CreateReservation: time %s not offered for %s %s (outcome=%s)",
				in.time, in.date, in.slot, eval.Outcome)
			return ErrTimeNotAvailable
		}

		// 4.4. Хватает ли мест на всю компанию
		if eval.Remaining < req.Guests {
			uc.logger.Warn("CreateReservation: not enough seats, remaining=%d guests=%d", eval.Remaining, req.Guests)
			return ErrNotEnoughSeats
		}

		// 4.5. Создаём бронирование
		res := &domain.Reservation{
			Reference: uc.newReference(),
			Date:      in.date,
			Slot:      in.slot,
			Time:      in.time,
			Guests:    req.Guests,
			Status:    domain.StatusConfirmed,
			Name:      req.Name,
			Email:     req.Email,
			Phone:     trimOptional(req.Phone),
			Notes:     trimOptional(req.Notes),
		}

		created, err = uc.reservationRepo.Create(txCtx, res)
		if err != nil {
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrTimeNotAvailable):
			uc.observe(in.slot.String(), resultTimeNotAvailable)
			return nil, err
		case errors.Is(err, ErrNotEnoughSeats):
			uc.observe(in.slot.String(), resultNotEnoughSeats)
			return nil, err
		case errors.Is(err, ErrInternal):
			uc.logger.Error("CreateReservation: %v", err)
			uc.observe(in.slot.String(), resultError)
			return nil, err
		default:
			uc.logger.Error("CreateReservation: transaction failed: %v", err)
			uc.observe(in.slot.String(), resultError)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	uc.observe(in.slot.String(), resultCreated)
	uc.logger.Info("CreateReservation: created reference=%s for %s %s %s, guests=%d",
		created.Reference, created.Date, created.Slot, created.Time, created.Guests)

	return &Response{
		Reference: created.Reference,
		Date:      created.Date,
		Slot:      created.Slot,
		Time:      created.Time,
		Guests:    created.Guests,
		Status:    created.Status,
		Name:      created.Name,
		CreatedAt: created.CreatedAt,
	}, nil
}

func (uc *UseCase) observe(slot, result string) {
	if uc.metrics != nil {
		uc.metrics.ObserveReservation(slot, result)
	}
}

func containsTime(options []domain.TimeOption, t types.TimeString) bool {
	for _, o := range options {
		if o.Time == t {
			return true
		}
	}
	return false
}
