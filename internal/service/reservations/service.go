package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-TableBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-TableBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// GetByReference получает бронирование по публичному идентификатору
func (s *Service) GetByReference(ctx context.Context, reference string) (*models.ReservationResponse, error) {
	ref, err := parseReference(reference)
	if err != nil {
		s.logger.Warn("GetByReference: %v", err)
		return nil, err
	}

	res, err := s.reservationRepo.GetByReference(ctx, ref)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByReference: reservation %s not found", ref)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByReference: repository error for %s: %v", ref, err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(res), nil
}

// Cancel отменяет бронирование
// Отменённое бронирование перестаёт занимать места в расчёте доступности
func (s *Service) Cancel(ctx context.Context, reference string) (*models.ReservationResponse, error) {
	ref, err := parseReference(reference)
	if err != nil {
		s.logger.Warn("Cancel: %v", err)
		return nil, err
	}

	today := types.NewDateString(s.timeProvider.Now())
	var cancelled *domain.Reservation

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование с блокировкой строки
		res, err := s.reservationRepo.GetByReference(txCtx, ref)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Cancel - get reservation: %v", ErrInternal, err)
		}

		// 2. Проверяем, что бронирование можно отменить
		if !res.CanBeCancelled() {
			return fmt.Errorf("%w: status is %s", ErrCannotCancel, res.Status)
		}
		if res.Date.IsBefore(today) {
			return fmt.Errorf("%w: reservation date %s has passed", ErrCannotCancel, res.Date)
		}

		// 3. Отменяем
		cancelled, err = s.reservationRepo.Cancel(txCtx, ref)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrCannotCancel) {
				return ErrCannotCancel
			}
			return fmt.Errorf("%w: Cancel - update reservation: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrReservationNotFound), errors.Is(err, ErrCannotCancel):
			s.logger.Warn("Cancel: reservation %s: %v", ref, err)
			return nil, err
		case errors.Is(err, ErrInternal):
			s.logger.Error("Cancel: reservation %s: %v", ref, err)
			return nil, err
		default:
			s.logger.Error("Cancel: transaction failed for %s: %v", ref, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Cancel: reservation %s cancelled (%s %s %s, guests=%d)",
		ref, cancelled.Date, cancelled.Slot, cancelled.Time, cancelled.Guests)
	return models.FromDomainReservation(cancelled), nil
}

// ListForDate получает бронирования на дату (рассадка на день)
func (s *Service) ListForDate(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	date, err := types.NewDateStringFromString(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	filter := domain.ReservationsFilter{
		Date:            date,
		IncludeInactive: req.IncludeInactive,
	}

	if req.Slot != nil && strings.TrimSpace(*req.Slot) != "" {
		slot := domain.Slot(strings.ToLower(strings.TrimSpace(*req.Slot)))
		if !slot.IsValid() {
			return nil, fmt.Errorf("%w: unknown slot %q", ErrInvalidInput, *req.Slot)
		}
		filter.Slot = &slot
	}

	list, err := s.reservationRepo.ListByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListForDate: repository error for %s: %v", date, err)
		return nil, fmt.Errorf("%w: ListForDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForDate: fetched %d reservations for %s", len(list), date)
	return models.FromDomainReservationList(date.String(), list), nil
}

func parseReference(reference string) (uuid.UUID, error) {
	ref, err := uuid.Parse(strings.TrimSpace(reference))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: malformed reference", ErrInvalidInput)
	}
	return ref, nil
}
