package get_availability

import (
	getAvailability "github.com/m04kA/SMC-TableBooking/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date    string       `json:"date"`
	Slot    string       `json:"slot"`
	Options []TimeOption `json:"options"`
}

// TimeOption время, которое можно забронировать
type TimeOption struct {
	Slot string `json:"slot"`
	Time string `json:"time"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		Date:    resp.Date.String(),
		Slot:    resp.Slot.String(),
		Options: toOptions(resp),
	}
}

// toOptions упорядоченный список [{slot, time}]; пустой результат - пустой массив, не null
func toOptions(resp *getAvailability.Response) []TimeOption {
	options := make([]TimeOption, len(resp.Options))
	for i, o := range resp.Options {
		options[i] = TimeOption{Slot: o.Slot.String(), Time: o.Time.String()}
	}
	return options
}
