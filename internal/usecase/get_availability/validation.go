package get_availability

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

// validateRequest валидирует и нормализует входные данные запроса
func validateRequest(req *Request) (types.DateString, domain.Slot, error) {
	if req == nil {
		return "", "", fmt.Errorf("%w: empty request", ErrInvalidQuery)
	}

	if strings.TrimSpace(req.Date) == "" {
		return "", "", fmt.Errorf("%w: date is required", ErrInvalidQuery)
	}

	date, err := types.NewDateStringFromString(req.Date)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}

	slot := domain.Slot(strings.ToLower(strings.TrimSpace(req.Slot)))
	if slot == "" {
		return "", "", fmt.Errorf("%w: slot is required", ErrInvalidQuery)
	}
	if !slot.IsValid() {
		return "", "", fmt.Errorf("%w: unknown slot %q", ErrInvalidQuery, req.Slot)
	}

	return date, slot, nil
}
