package override

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-TableBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

const table = "capacity_overrides"

// Repository ручные переопределения вместимости слота на дату
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория переопределений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает переопределение для даты и слота
func (r *Repository) Get(ctx context.Context, date types.DateString, slot domain.Slot) (*domain.CapacityOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("booking_date", "slot", "ceiling").
		From(table).
		Where(squirrel.Eq{"booking_date": date, "slot": string(slot)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		o       domain.CapacityOverride
		slotStr string
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(&o.Date, &slotStr, &o.Ceiling)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan override: %v", ErrScanRow, err)
	}
	o.Slot = domain.Slot(slotStr)

	return &o, nil
}

// Upsert создаёт или заменяет переопределение
func (r *Repository) Upsert(ctx context.Context, o domain.CapacityOverride) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("booking_date", "slot", "ceiling").
		Values(o.Date, string(o.Slot), o.Ceiling).
		Suffix("ON CONFLICT (booking_date, slot) DO UPDATE SET ceiling = EXCLUDED.ceiling, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Delete удаляет переопределение; вместимость снова берётся из настроек
func (r *Repository) Delete(ctx context.Context, date types.DateString, slot domain.Slot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"booking_date": date, "slot": string(slot)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}

// Ceiling действующая вместимость: переопределение, если оно есть, иначе настроенная
// Сигнатура совпадает с availability.CeilingOverride
func (r *Repository) Ceiling(ctx context.Context, date types.DateString, slot domain.Slot, configured int) (int, error) {
	o, err := r.Get(ctx, date, slot)
	if errors.Is(err, ErrOverrideNotFound) {
		return configured, nil
	}
	if err != nil {
		return 0, err
	}
	return o.Ceiling, nil
}
