package domain

import "github.com/m04kA/SMC-TableBooking/pkg/types"

// CutoffMinutes минимальный запас времени между "сейчас" и бронируемым временем
// Применяется только к бронированиям на текущий день
const CutoffMinutes = 15

// Business validation constants
const (
	MinGuests             = 1
	DefaultMaxPartySize   = 12
	MaxNameLength         = 120
	MaxEmailLength        = 254
	MaxPhoneLength        = 32
	MaxNotesLength        = 500
	MaxCeiling            = 10000
	MaxClosedDatesLength  = 20000
	MaxTimesPerSlotLength = 2000
)

// Time format constants
const (
	TimeFormat = types.TimeFormat // HH:MM
	DateFormat = types.DateFormat // YYYY-MM-DD
)

// DemandStatuses статусы бронирований, занимающих места
// Используется при подсчёте спроса (DemandSnapshot)
var DemandStatuses = []ReservationStatus{
	StatusConfirmed,
}

// ActionCreateReservation действие, для которого выдаётся nonce формы бронирования
const ActionCreateReservation = "create_reservation"
