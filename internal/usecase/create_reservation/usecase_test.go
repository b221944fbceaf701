package create_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/logger"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

type reservationRepoStub struct {
	booked    int
	sumErr    error
	createErr error
	locked    []string
	created   []*domain.Reservation
}

func (s *reservationRepoStub) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	res.ID = int64(len(s.created) + 1)
	res.CreatedAt = time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC)
	s.created = append(s.created, res)
	return res, nil
}

func (s *reservationRepoStub) SumGuests(context.Context, types.DateString, domain.Slot) (int, error) {
	return s.booked, s.sumErr
}

func (s *reservationRepoStub) LockSlot(_ context.Context, date types.DateString, slot domain.Slot) error {
	s.locked = append(s.locked, date.String()+"|"+slot.String())
	return nil
}

type settingsRepoStub struct {
	raw domain.RawSettings
	err error
}

func (s *settingsRepoStub) GetRaw(context.Context) (domain.RawSettings, error) {
	return s.raw, s.err
}

type txManagerStub struct {
	calls int
}

func (m *txManagerStub) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type metricsStub struct {
	results []string
}

func (m *metricsStub) ObserveReservation(slot, result string) {
	m.results = append(m.results, slot+"/"+result)
}

// Понедельник 2025-10-13, 10:00
var monday = time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC)

func settings() domain.RawSettings {
	return domain.RawSettings{
		"open_day_1":      "1",
		"open_day_2":      "1",
		"lunch_times":     "10:10,10:20,12:00",
		"lunch_capacity":  "30",
		"dinner_times":    "19:00",
		"dinner_capacity": "0",
	}
}

func validRequest() *Request {
	return &Request{
		Date:   "2025-10-14",
		Slot:   "lunch",
		Time:   "12:00",
		Guests: 4,
		Name:   " Maria Rossi ",
		Email:  "maria@example.com",
	}
}

type fixture struct {
	repo    *reservationRepoStub
	tx      *txManagerStub
	metrics *metricsStub
	uc      *UseCase
}

func newFixture(booked int) *fixture {
	f := &fixture{
		repo:    &reservationRepoStub{booked: booked},
		tx:      &txManagerStub{},
		metrics: &metricsStub{},
	}
	f.uc = NewUseCase(f.repo, &settingsRepoStub{raw: settings()}, nil, f.tx,
		fixedClock{now: monday}, 8, f.metrics, logger.NewNop())
	f.uc.newReference = func() uuid.UUID {
		return uuid.MustParse("6f1c2a9e-3b7d-4c1e-9a55-0d2f3e4b5c6d")
	}
	return f
}

func TestExecute_Created(t *testing.T) {
	f := newFixture(10)
	phone := "  "
	req := validRequest()
	req.Phone = &phone

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, uuid.MustParse("6f1c2a9e-3b7d-4c1e-9a55-0d2f3e4b5c6d"), resp.Reference)
	assert.Equal(t, types.DateString("2025-10-14"), resp.Date)
	assert.Equal(t, domain.SlotLunch, resp.Slot)
	assert.Equal(t, types.TimeString("12:00"), resp.Time)
	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	assert.Equal(t, "Maria Rossi", resp.Name)

	require.Len(t, f.repo.created, 1)
	assert.Nil(t, f.repo.created[0].Phone, "blank phone is stored as NULL")
	assert.Equal(t, []string{"2025-10-14|lunch"}, f.repo.locked)
	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, []string{"lunch/created"}, f.metrics.results)
}

func TestExecute_ExactlyFillsSlot(t *testing.T) {
	f := newFixture(26)

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_NotEnoughSeats(t *testing.T) {
	t.Run("party larger than remaining", func(t *testing.T) {
		f := newFixture(27)
		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrNotEnoughSeats)
		assert.Empty(t, f.repo.created)
		assert.Equal(t, []string{"lunch/not_enough_seats"}, f.metrics.results)
	})

	t.Run("sold out", func(t *testing.T) {
		f := newFixture(30)
		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrNotEnoughSeats)
		assert.Empty(t, f.repo.created)
	})
}

func TestExecute_TimeNotAvailable(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "closed weekday", mutate: func(r *Request) { r.Date = "2025-10-15" }},
		{name: "time not in schedule", mutate: func(r *Request) { r.Time = "12:15" }},
		{name: "same day inside cutoff", mutate: func(r *Request) { r.Date = "2025-10-13"; r.Time = "10:10" }},
		{name: "past date", mutate: func(r *Request) { r.Date = "2025-10-06" }},
		{name: "disabled slot", mutate: func(r *Request) { r.Slot = "dinner"; r.Time = "19:00" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(0)
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrTimeNotAvailable)
			assert.Empty(t, f.repo.created)
		})
	}
}

func TestExecute_SameDayAfterCutoff(t *testing.T) {
	f := newFixture(0)
	req := validRequest()
	req.Date = "2025-10-13"
	req.Time = "10:20" // 10:00 + 15 = 10:15 < 10:20

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "zero guests", mutate: func(r *Request) { r.Guests = 0 }},
		{name: "party too large", mutate: func(r *Request) { r.Guests = 9 }},
		{name: "missing name", mutate: func(r *Request) { r.Name = "   " }},
		{name: "bad email", mutate: func(r *Request) { r.Email = "not-an-email" }},
		{name: "bad date", mutate: func(r *Request) { r.Date = "2025/10/14" }},
		{name: "bad time", mutate: func(r *Request) { r.Time = "25:00" }},
		{name: "unknown slot", mutate: func(r *Request) { r.Slot = "brunch" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(0)
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, f.tx.calls)
		})
	}

	t.Run("nil request", func(t *testing.T) {
		f := newFixture(0)
		_, err := f.uc.Execute(context.Background(), nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestExecute_InternalErrors(t *testing.T) {
	t.Run("settings", func(t *testing.T) {
		f := newFixture(0)
		f.uc.settingsRepo = &settingsRepoStub{err: errors.New("db down")}
		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("demand", func(t *testing.T) {
		f := newFixture(0)
		f.repo.sumErr = errors.New("timeout")
		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("insert", func(t *testing.T) {
		f := newFixture(0)
		f.repo.createErr = errors.New("unique violation")
		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInternal)
		assert.Equal(t, []string{"lunch/error"}, f.metrics.results)
	})
}
