package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-TableBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

const table = "reservations"

var columns = []string{
	"id",
	"reference",
	"booking_date",
	"slot",
	"start_time",
	"guests",
	"status",
	"name",
	"email",
	"phone",
	"notes",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями столиков
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"reference",
			"booking_date",
			"slot",
			"start_time",
			"guests",
			"status",
			"name",
			"email",
			"phone",
			"notes",
		).
		Values(
			res.Reference,
			res.Date,
			string(res.Slot),
			res.Time,
			res.Guests,
			string(res.Status),
			res.Name,
			res.Email,
			res.Phone,
			res.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return res, nil
}

// GetByReference получает бронирование по публичному идентификатору
func (r *Repository) GetByReference(ctx context.Context, reference uuid.UUID) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"reference": reference})

	// Внутри транзакции (отмена) блокируем строку
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReference - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReference - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// ListByFilter получает бронирования на дату, отсортированные по времени
func (r *Repository) ListByFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"booking_date": filter.Date})

	if filter.Slot != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"slot": string(*filter.Slot)})
	}

	if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": demandStatuses()})
	}

	query, args, err := selectBuilder.OrderBy("start_time ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByFilter - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByFilter - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// SumGuests возвращает число гостей в активных бронированиях на дату и слот
func (r *Repository) SumGuests(ctx context.Context, date types.DateString, slot domain.Slot) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(guests), 0)").
		From(table).
		Where(squirrel.Eq{
			"booking_date": date,
			"slot":         string(slot),
			"status":       demandStatuses(),
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: SumGuests - build select query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: SumGuests - scan sum: %v", ErrScanRow, err)
	}

	return total, nil
}

// LockSlot берёт advisory-блокировку на пару (дата, слот) до конца транзакции
// Конкурентные бронирования одного слота выстраиваются в очередь
func (r *Repository) LockSlot(ctx context.Context, date types.DateString, slot domain.Slot) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: LockSlot", ErrTransaction)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	key := date.String() + "|" + slot.String()
	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", key); err != nil {
		return fmt.Errorf("%w: LockSlot - acquire lock: %v", ErrExecQuery, err)
	}

	return nil
}

// Cancel отменяет активное бронирование
func (r *Repository) Cancel(ctx context.Context, reference uuid.UUID) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", string(domain.StatusCancelled)).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"reference": reference,
			"status":    string(domain.StatusConfirmed),
		}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCannotCancel
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	return res, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res         domain.Reservation
		slot        string
		status      string
		phone       sql.NullString
		notes       sql.NullString
		cancelledAt sql.NullTime
	)

	err := row.Scan(
		&res.ID,
		&res.Reference,
		&res.Date,
		&slot,
		&res.Time,
		&res.Guests,
		&status,
		&res.Name,
		&res.Email,
		&phone,
		&notes,
		&cancelledAt,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Slot = domain.Slot(slot)
	res.Status = domain.ReservationStatus(status)
	if phone.Valid {
		res.Phone = &phone.String
	}
	if notes.Valid {
		res.Notes = &notes.String
	}
	if cancelledAt.Valid {
		res.CancelledAt = &cancelledAt.Time
	}

	return &res, nil
}

func demandStatuses() []string {
	statuses := make([]string, len(domain.DemandStatuses))
	for i, s := range domain.DemandStatuses {
		statuses[i] = string(s)
	}
	return statuses
}
