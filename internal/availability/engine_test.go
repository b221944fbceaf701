package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

type demandStub struct {
	seats int
	err   error
	calls int
}

func (d *demandStub) fn(_ context.Context, _ types.DateString, _ domain.Slot) (int, error) {
	d.calls++
	return d.seats, d.err
}

func tuesdayLunchConfig(ceiling int, times ...types.TimeString) *domain.ScheduleConfig {
	cfg := &domain.ScheduleConfig{
		Slots: map[domain.Slot]domain.SlotSchedule{
			domain.SlotLunch: {Times: times, Ceiling: ceiling},
		},
	}
	cfg.Open[time.Tuesday] = true
	return cfg
}

// 2025-10-13 - понедельник, 2025-10-14 - вторник
var monday = time.Date(2025, 10, 13, 20, 0, 0, 0, time.UTC)

func TestEvaluate_NextTuesdayScenario(t *testing.T) {
	cfg := tuesdayLunchConfig(10, "12:00", "12:30", "13:00")
	demand := &demandStub{seats: 4}

	got, err := Evaluate(context.Background(), cfg, Query{Date: "2025-10-14", Slot: domain.SlotLunch, NowLocal: monday}, demand.fn, nil)
	require.NoError(t, err)

	assert.Equal(t, OutcomeAvailable, got.Outcome)
	assert.Equal(t, []domain.TimeOption{
		{Slot: domain.SlotLunch, Time: "12:00"},
		{Slot: domain.SlotLunch, Time: "12:30"},
		{Slot: domain.SlotLunch, Time: "13:00"},
	}, got.Options)
	assert.Equal(t, 6, got.Remaining)
	assert.Equal(t, 1, demand.calls)
}

func TestEvaluate_WeekdayClosed(t *testing.T) {
	cfg := tuesdayLunchConfig(10, "12:00")
	demand := &demandStub{}

	// 2025-10-15 - среда
	got, err := Evaluate(context.Background(), cfg, Query{Date: "2025-10-15", Slot: domain.SlotLunch, NowLocal: monday}, demand.fn, nil)
	require.NoError(t, err)

	assert.Empty(t, got.Options)
	assert.Equal(t, OutcomeWeekdayClosed, got.Outcome)
	assert.Zero(t, demand.calls)
}

func TestEvaluate_ClosedSingleDate(t *testing.T) {
	cfg := &domain.ScheduleConfig{
		Open: [7]bool{true, true, true, true, true, true, true},
		Slots: map[domain.Slot]domain.SlotSchedule{
			domain.SlotLunch:    {Times: []types.TimeString{"12:00"}, Ceiling: 10},
			domain.SlotDinner:   {Times: []types.TimeString{"20:00"}, Ceiling: 10},
			domain.SlotAperitif: {Times: []types.TimeString{"18:00"}, Ceiling: 10},
		},
		Closures: domain.ClosureSet{Dates: []types.DateString{"2025-12-25"}},
	}

	for _, slot := range domain.Slots {
		t.Run(slot.String(), func(t *testing.T) {
			got, err := Evaluate(context.Background(), cfg, Query{Date: "2025-12-25", Slot: slot, NowLocal: monday}, (&demandStub{}).fn, nil)
			require.NoError(t, err)
			assert.Empty(t, got.Options)
			assert.Equal(t, OutcomeClosedDate, got.Outcome)
		})
	}
}

func TestEvaluate_ClosedRangeBoundaries(t *testing.T) {
	cfg := tuesdayLunchConfig(10, "12:00")
	cfg.Open = [7]bool{true, true, true, true, true, true, true}
	cfg.Closures = domain.ClosureSet{Ranges: []domain.DateRange{{From: "2025-11-03", To: "2025-11-07"}}}

	for _, date := range []types.DateString{"2025-11-03", "2025-11-05", "2025-11-07"} {
		got, err := Evaluate(context.Background(), cfg, Query{Date: date, Slot: domain.SlotLunch, NowLocal: monday}, (&demandStub{}).fn, nil)
		require.NoError(t, err)
		assert.Empty(t, got.Options, date)
	}

	for _, date := range []types.DateString{"2025-11-02", "2025-11-08"} {
		got, err := Evaluate(context.Background(), cfg, Query{Date: date, Slot: domain.SlotLunch, NowLocal: monday}, (&demandStub{}).fn, nil)
		require.NoError(t, err)
		assert.Len(t, got.Options, 1, date)
	}
}

func TestEvaluate_SameDayCutoffScenario(t *testing.T) {
	cfg := tuesdayLunchConfig(10, "09:00", "09:20", "09:40")
	now := time.Date(2025, 10, 14, 9, 10, 0, 0, time.UTC)

	got, err := Evaluate(context.Background(), cfg, Query{Date: "2025-10-14", Slot: domain.SlotLunch, NowLocal: now}, (&demandStub{}).fn, nil)
	require.NoError(t, err)

	assert.Equal(t, []domain.TimeOption{{Slot: domain.SlotLunch, Time: "09:40"}}, got.Options)
}

func TestEvaluate_CutoffSkipsDemandLookup(t *testing.T) {
	cfg := tuesdayLunchConfig(10, "09:00", "09:20")
	now := time.Date(2025, 10, 14, 9, 10, 0, 0, time.UTC)
	demand := &demandStub{err: errors.New("must not be called")}

	got, err := Evaluate(context.Background(), cfg, Query{Date: "2025-10-14", Slot: domain.SlotLunch, NowLocal: now}, demand.fn, nil)
	require.NoError(t, err)

	assert.Empty(t, got.Options)
	assert.Equal(t, OutcomeCutoff, got.Outcome)
	assert.Zero(t, demand.calls)
}

func TestEvaluate_PastDate(t *testing.T) {
	cfg := tuesdayLunchConfig(10, "12:00")
	later := time.Date(2025, 10, 20, 8, 0, 0, 0, time.UTC)

	got, err := Evaluate(context.Background(), cfg, Query{Date: "2025-10-14", Slot: domain.SlotLunch, NowLocal: later}, (&demandStub{}).fn, nil)
	require.NoError(t, err)
	assert.Empty(t, got.Options)
}

func TestEvaluate_NoTimesConfigured(t *testing.T) {
	cfg := tuesdayLunchConfig(10)

	got, err := Evaluate(context.Background(), cfg, Query{Date: "2025-10-14", Slot: domain.SlotDinner, NowLocal: monday}, (&demandStub{}).fn, nil)
	require.NoError(t, err)
	assert.Empty(t, got.Options)
	assert.Equal(t, OutcomeNoTimes, got.Outcome)
}

func TestEvaluate_Capacity(t *testing.T) {
	tests := []struct {
		name    string
		ceiling int
		demand  int
		want    int
	}{
		{name: "zero ceiling", ceiling: 0, demand: 0, want: 0},
		{name: "sold out", ceiling: 30, demand: 30, want: 0},
		{name: "one seat left", ceiling: 30, demand: 29, want: 3},
		{name: "overbooked", ceiling: 30, demand: 31, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tuesdayLunchConfig(tt.ceiling, "12:00", "12:30", "13:00")
			got, err := Evaluate(context.Background(), cfg, Query{Date: "2025-10-14", Slot: domain.SlotLunch, NowLocal: monday}, (&demandStub{seats: tt.demand}).fn, nil)
			require.NoError(t, err)
			assert.Len(t, got.Options, tt.want)
			assert.NotNil(t, got.Options)
		})
	}
}

func TestEvaluate_ZeroCeilingSkipsDemandLookup(t *testing.T) {
	cfg := tuesdayLunchConfig(0, "12:00")
	demand := &demandStub{}

	got, err := Evaluate(context.Background(), cfg, Query{Date: "2025-10-14", Slot: domain.SlotLunch, NowLocal: monday}, demand.fn, nil)
	require.NoError(t, err)

	assert.Equal(t, OutcomeSoldOut, got.Outcome)
	assert.Zero(t, demand.calls)
}

func TestEvaluate_CeilingOverride(t *testing.T) {
	cfg := tuesdayLunchConfig(10, "12:00")

	t.Run("override raises ceiling", func(t *testing.T) {
		override := func(_ context.Context, date types.DateString, slot domain.Slot, configured int) (int, error) {
			assert.Equal(t, types.DateString("2025-10-14"), date)
			assert.Equal(t, domain.SlotLunch, slot)
			assert.Equal(t, 10, configured)
			return 20, nil
		}

		got, err := Evaluate(context.Background(), cfg, Query{Date: "2025-10-14", Slot: domain.SlotLunch, NowLocal: monday}, (&demandStub{seats: 15}).fn, override)
		require.NoError(t, err)
		assert.Len(t, got.Options, 1)
		assert.Equal(t, 20, got.Ceiling)
		assert.Equal(t, 5, got.Remaining)
	})

	t.Run("override closes slot", func(t *testing.T) {
		override := func(context.Context, types.DateString, domain.Slot, int) (int, error) { return 0, nil }

		got, err := Evaluate(context.Background(), cfg, Query{Date: "2025-10-14", Slot: domain.SlotLunch, NowLocal: monday}, (&demandStub{}).fn, override)
		require.NoError(t, err)
		assert.Empty(t, got.Options)
	})

	t.Run("override error", func(t *testing.T) {
		override := func(context.Context, types.DateString, domain.Slot, int) (int, error) {
			return 0, errors.New("db down")
		}

		_, err := Evaluate(context.Background(), cfg, Query{Date: "2025-10-14", Slot: domain.SlotLunch, NowLocal: monday}, (&demandStub{}).fn, override)
		assert.ErrorIs(t, err, ErrCeilingOverride)
	})
}

func TestEvaluate_DemandError(t *testing.T) {
	cfg := tuesdayLunchConfig(10, "12:00")
	demand := &demandStub{err: errors.New("timeout")}

	_, err := Evaluate(context.Background(), cfg, Query{Date: "2025-10-14", Slot: domain.SlotLunch, NowLocal: monday}, demand.fn, nil)
	assert.ErrorIs(t, err, ErrDemand)
}

func TestEvaluate_NilDemand(t *testing.T) {
	cfg := tuesdayLunchConfig(10, "12:00")
	q := Query{Date: "2025-10-14", Slot: domain.SlotLunch, NowLocal: monday}

	_, err := Evaluate(context.Background(), cfg, q, nil, nil)
	assert.ErrorIs(t, err, ErrDemand)

	// До шага вместимости спрос не нужен
	closed, err := Evaluate(context.Background(), cfg, Query{Date: "2025-10-15", Slot: domain.SlotLunch, NowLocal: monday}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeWeekdayClosed, closed.Outcome)
}

func TestEvaluate_InvalidDate(t *testing.T) {
	cfg := tuesdayLunchConfig(10, "12:00")

	_, err := Evaluate(context.Background(), cfg, Query{Date: "14/10/2025", Slot: domain.SlotLunch, NowLocal: monday}, (&demandStub{}).fn, nil)
	assert.ErrorIs(t, err, types.ErrInvalidDateString)
}

func TestEvaluate_Idempotent(t *testing.T) {
	cfg := tuesdayLunchConfig(10, "12:00", "12:30", "13:00")
	q := Query{Date: "2025-10-14", Slot: domain.SlotLunch, NowLocal: monday}

	first, err := Evaluate(context.Background(), cfg, q, (&demandStub{seats: 3}).fn, nil)
	require.NoError(t, err)
	second, err := Evaluate(context.Background(), cfg, q, (&demandStub{seats: 3}).fn, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
