package get_reservation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBooking/internal/service/reservations"
	"github.com/m04kA/SMC-TableBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-TableBooking/pkg/logger"
)

const reference = "6f1c2a9e-3b7d-4c1e-9a55-0d2f3e4b5c6d"

type serviceStub struct {
	err error
	got string
}

func (s *serviceStub) GetByReference(_ context.Context, ref string) (*models.ReservationResponse, error) {
	s.got = ref
	if s.err != nil {
		return nil, s.err
	}
	return &models.ReservationResponse{Reference: ref, Date: "2025-10-14", Slot: "lunch", Time: "12:30", Guests: 2, Status: "confirmed"}, nil
}

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/reservations/{reference}", h.Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &serviceStub{}
	rec := serve(NewHandler(svc, logger.NewNop()), "/api/v1/reservations/"+reference)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, reference, svc.got)

	var resp models.ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "12:30", resp.Time)
	assert.Equal(t, 2, resp.Guests)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "malformed reference", err: reservations.ErrInvalidInput, code: http.StatusBadRequest},
		{name: "not found", err: reservations.ErrReservationNotFound, code: http.StatusNotFound},
		{name: "internal", err: reservations.ErrInternal, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&serviceStub{err: tt.err}, logger.NewNop()), "/api/v1/reservations/"+reference)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
