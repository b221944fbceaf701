package cancel_reservation

import (
	"context"
	"encoding/json"
	"fmt"
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
}

func (s *serviceStub) Cancel(_ context.Context, ref string) (*models.ReservationResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.ReservationResponse{Reference: ref, Status: "cancelled", Guests: 2}, nil
}

func serve(h *Handler) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/reservations/{reference}/cancel", h.Handle).Methods(http.MethodPatch)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/v1/reservations/"+reference+"/cancel", nil))
	return rec
}

func TestHandle(t *testing.T) {
	rec := serve(NewHandler(&serviceStub{}, logger.NewNop()))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, reference, resp.Reference)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "malformed reference", err: reservations.ErrInvalidInput, code: http.StatusBadRequest},
		{name: "not found", err: reservations.ErrReservationNotFound, code: http.StatusNotFound},
		{name: "already cancelled", err: fmt.Errorf("%w: status is cancelled", reservations.ErrCannotCancel), code: http.StatusConflict},
		{name: "internal", err: reservations.ErrInternal, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&serviceStub{err: tt.err}, logger.NewNop()))
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
