package reservation

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/dbmetrics"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(db), mock
}

func reservationRow(reference uuid.UUID, status string) *sqlmock.Rows {
	created := time.Date(2025, 10, 13, 9, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(columns).AddRow(
		int64(7), reference.String(), "2025-10-14", "lunch", "12:30:00", int64(4), status,
		"Anna", "anna@example.com", nil, "window", nil, created, created,
	)
}

func TestLockSlot_RequiresTransaction(t *testing.T) {
	repo, mock := newMockRepository(t)

	err := repo.LockSlot(context.Background(), "2025-10-14", domain.SlotLunch)
	assert.ErrorIs(t, err, ErrTransaction)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockSlot_AdvisoryLockInsideTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock(hashtext($1))")).
		WithArgs("2025-10-14|lunch").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	// Запрос должен уйти в транзакцию, а не в пул
	repo := NewRepository(db)
	ctx := dbmetrics.WithTx(context.Background(), tx)
	require.NoError(t, repo.LockSlot(ctx, "2025-10-14", domain.SlotLunch))
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockSlot_ExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("pg_advisory_xact_lock")).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)

	err = NewRepository(db).LockSlot(dbmetrics.WithTx(context.Background(), tx), "2025-10-14", domain.SlotLunch)
	assert.ErrorIs(t, err, ErrExecQuery)
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSumGuests(t *testing.T) {
	t.Run("counts only demand statuses", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(regexp.QuoteMeta(
			"SELECT COALESCE(SUM(guests), 0) FROM reservations WHERE booking_date = $1 AND slot = $2 AND status IN ($3)",
		)).
			WithArgs("2025-10-14", "lunch", "confirmed").
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(int64(12)))

		total, err := repo.SumGuests(context.Background(), "2025-10-14", domain.SlotLunch)
		require.NoError(t, err)
		assert.Equal(t, 12, total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery("SUM\\(guests\\)").WillReturnError(errors.New("timeout"))

		_, err := repo.SumGuests(context.Background(), "2025-10-14", domain.SlotLunch)
		assert.ErrorIs(t, err, ErrScanRow)
	})
}

func TestGetByReference(t *testing.T) {
	reference := uuid.MustParse("6f1c2a9e-3b7d-4c1e-9a55-0d2f3e4b5c6d")

	t.Run("found", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM reservations WHERE reference = $1")).
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(reservationRow(reference, "confirmed"))

		res, err := repo.GetByReference(context.Background(), reference)
		require.NoError(t, err)
		assert.Equal(t, int64(7), res.ID)
		assert.Equal(t, reference, res.Reference)
		assert.Equal(t, "2025-10-14", res.Date.String())
		assert.Equal(t, domain.SlotLunch, res.Slot)
		assert.Equal(t, "12:30", res.Time.String())
		assert.Equal(t, domain.StatusConfirmed, res.Status)
		assert.Nil(t, res.Phone)
		require.NotNil(t, res.Notes)
		assert.Equal(t, "window", *res.Notes)
		assert.Nil(t, res.CancelledAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery("FROM reservations").WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.GetByReference(context.Background(), reference)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})

	t.Run("locks row inside transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("WHERE reference = \\$1 FOR UPDATE$").
			WillReturnRows(reservationRow(reference, "confirmed"))

		tx, err := db.Begin()
		require.NoError(t, err)

		_, err = NewRepository(db).GetByReference(dbmetrics.WithTx(context.Background(), tx), reference)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCancel_NotActive(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE reservations SET status = $1")).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.Cancel(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.NoError(t, mock.ExpectationsWereMet())
}
