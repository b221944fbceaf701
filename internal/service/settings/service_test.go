package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	overrideRepo "github.com/m04kA/SMC-TableBooking/internal/infra/storage/override"
	"github.com/m04kA/SMC-TableBooking/internal/service/settings/models"
	"github.com/m04kA/SMC-TableBooking/pkg/logger"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

type settingsRepoStub struct {
	raw      domain.RawSettings
	upserted domain.RawSettings
	err      error
}

func (s *settingsRepoStub) GetRaw(context.Context) (domain.RawSettings, error) {
	return s.raw, s.err
}

func (s *settingsRepoStub) Upsert(_ context.Context, values domain.RawSettings) error {
	s.upserted = values
	return nil
}

type overrideRepoStub struct {
	saved   []domain.CapacityOverride
	deleted []string
	exists  bool
}

func (o *overrideRepoStub) Upsert(_ context.Context, v domain.CapacityOverride) error {
	o.saved = append(o.saved, v)
	return nil
}

func (o *overrideRepoStub) Delete(_ context.Context, date types.DateString, slot domain.Slot) error {
	if !o.exists {
		return overrideRepo.ErrOverrideNotFound
	}
	o.deleted = append(o.deleted, date.String()+"|"+slot.String())
	return nil
}

type txStub struct{}

func (txStub) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newService(settings *settingsRepoStub, overrides *overrideRepoStub) *Service {
	return NewService(settings, overrides, txStub{}, logger.NewNop())
}

func TestGet(t *testing.T) {
	repo := &settingsRepoStub{raw: domain.RawSettings{
		"open_day_2":     "1",
		"open_day_5":     "yes",
		"lunch_times":    "12:00,12:30",
		"lunch_capacity": "30",
		"closed_dates":   "2025-12-25\n2025-08-10 - 2025-08-20\ngarbage",
	}}

	resp, err := newService(repo, &overrideRepoStub{}).Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{2, 5}, resp.Schedule.OpenDays)
	assert.Equal(t, models.SlotView{Times: []string{"12:00", "12:30"}, Capacity: 30}, resp.Schedule.Slots["lunch"])
	assert.Equal(t, []string{"2025-12-25"}, resp.Schedule.ClosedDates)
	assert.Equal(t, []models.ClosedRangeView{{From: "2025-08-10", To: "2025-08-20"}}, resp.Schedule.ClosedRanges)
	assert.Len(t, resp.Issues, 1)

	_, err = newService(&settingsRepoStub{err: errors.New("db down")}, &overrideRepoStub{}).Get(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUpdate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		repo := &settingsRepoStub{raw: domain.RawSettings{"lunch_times": "12:00"}}
		resp, err := newService(repo, &overrideRepoStub{}).Update(context.Background(), &models.UpdateSettingsRequest{
			Settings: map[string]string{"lunch_times": "12:00;13:00", "lunch_capacity": "20"},
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RawSettings{"lunch_times": "12:00;13:00", "lunch_capacity": "20"}, repo.upserted)
		assert.Equal(t, []string{"12:00", "13:00"}, resp.Schedule.Slots["lunch"].Times)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := newService(&settingsRepoStub{}, &overrideRepoStub{}).Update(context.Background(), &models.UpdateSettingsRequest{
			Settings: map[string]string{"brunch_times": "11:00"},
		})
		assert.ErrorIs(t, err, ErrUnknownKey)
	})

	t.Run("malformed value is rejected", func(t *testing.T) {
		repo := &settingsRepoStub{raw: domain.RawSettings{}}
		_, err := newService(repo, &overrideRepoStub{}).Update(context.Background(), &models.UpdateSettingsRequest{
			Settings: map[string]string{"closed_dates": "2025-08-20 - 2025-08-10"},
		})
		assert.ErrorIs(t, err, ErrInvalidSettings)
		assert.Nil(t, repo.upserted)
	})

	t.Run("stored issue in another key does not block", func(t *testing.T) {
		repo := &settingsRepoStub{raw: domain.RawSettings{"dinner_capacity": "lots"}}
		_, err := newService(repo, &overrideRepoStub{}).Update(context.Background(), &models.UpdateSettingsRequest{
			Settings: map[string]string{"lunch_capacity": "25"},
		})
		require.NoError(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := newService(&settingsRepoStub{}, &overrideRepoStub{}).Update(context.Background(), &models.UpdateSettingsRequest{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestSetCapacityOverride(t *testing.T) {
	ceiling := 12

	t.Run("set", func(t *testing.T) {
		overrides := &overrideRepoStub{}
		resp, err := newService(&settingsRepoStub{}, overrides).SetCapacityOverride(context.Background(),
			&models.CapacityOverrideRequest{Date: "2025-12-31", Slot: "dinner", Ceiling: &ceiling})
		require.NoError(t, err)
		assert.Equal(t, 12, *resp.Ceiling)
		assert.Equal(t, []domain.CapacityOverride{{Date: "2025-12-31", Slot: domain.SlotDinner, Ceiling: 12}}, overrides.saved)
	})

	t.Run("remove", func(t *testing.T) {
		overrides := &overrideRepoStub{exists: true}
		resp, err := newService(&settingsRepoStub{}, overrides).SetCapacityOverride(context.Background(),
			&models.CapacityOverrideRequest{Date: "2025-12-31", Slot: "dinner"})
		require.NoError(t, err)
		assert.Nil(t, resp.Ceiling)
		assert.Equal(t, []string{"2025-12-31|dinner"}, overrides.deleted)
	})

	t.Run("remove missing", func(t *testing.T) {
		_, err := newService(&settingsRepoStub{}, &overrideRepoStub{}).SetCapacityOverride(context.Background(),
			&models.CapacityOverrideRequest{Date: "2025-12-31", Slot: "dinner"})
		assert.ErrorIs(t, err, ErrOverrideNotFound)
	})

	t.Run("invalid", func(t *testing.T) {
		negative := -1
		svc := newService(&settingsRepoStub{}, &overrideRepoStub{})
		for _, req := range []*models.CapacityOverrideRequest{
			{Date: "31.12.2025", Slot: "dinner", Ceiling: &ceiling},
			{Date: "2025-12-31", Slot: "supper", Ceiling: &ceiling},
			{Date: "2025-12-31", Slot: "dinner", Ceiling: &negative},
		} {
			_, err := svc.SetCapacityOverride(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		}
	})
}
