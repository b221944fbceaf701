package create_reservation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

var validate = validator.New()

// normalized проверенные и приведённые к доменным типам поля запроса
type normalized struct {
	date types.DateString
	slot domain.Slot
	time types.TimeString
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, maxPartySize int) (*normalized, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return nil, fmt.Errorf("%w: field %s failed on %s", ErrInvalidInput, strings.ToLower(fe.Field()), fe.Tag())
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.Guests > maxPartySize {
		return nil, fmt.Errorf("%w: guests must be at most %d", ErrInvalidInput, maxPartySize)
	}

	date, err := types.NewDateStringFromString(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	slot := domain.Slot(strings.ToLower(strings.TrimSpace(req.Slot)))
	if !slot.IsValid() {
		return nil, fmt.Errorf("%w: unknown slot %q", ErrInvalidInput, req.Slot)
	}

	t, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return &normalized{date: date, slot: slot, time: t}, nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
