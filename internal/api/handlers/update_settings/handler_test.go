package update_settings

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBooking/internal/service/settings"
	"github.com/m04kA/SMC-TableBooking/internal/service/settings/models"
	"github.com/m04kA/SMC-TableBooking/pkg/logger"
)

type serviceStub struct {
	err error
	got *models.UpdateSettingsRequest
}

func (s *serviceStub) Update(_ context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.SettingsResponse{Settings: req.Settings}, nil
}

func TestHandle(t *testing.T) {
	svc := &serviceStub{}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPut, "/api/v1/admin/settings",
		strings.NewReader(`{"settings":{"dinner_capacity":"40"}}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"dinner_capacity": "40"}, svc.got.Settings)
	assert.Contains(t, rec.Body.String(), `"dinner_capacity":"40"`)
}

func TestHandle_Errors(t *testing.T) {
	const body = `{"settings":{"lunch_times":"25:00"}}`

	tests := []struct {
		name string
		body string
		err  error
		code int
	}{
		{name: "malformed body", body: `{"settings":`, code: http.StatusBadRequest},
		{name: "unknown key", body: body, err: fmt.Errorf("%w: %q", settings.ErrUnknownKey, "brunch_times"), code: http.StatusBadRequest},
		{name: "invalid value", body: body, err: fmt.Errorf("%w: lunch_times: bad", settings.ErrInvalidSettings), code: http.StatusBadRequest},
		{name: "empty", body: `{"settings":{}}`, err: settings.ErrInvalidInput, code: http.StatusBadRequest},
		{name: "internal", body: body, err: settings.ErrInternal, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&serviceStub{err: tt.err}, logger.NewNop())
			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodPut, "/api/v1/admin/settings", strings.NewReader(tt.body)))
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
