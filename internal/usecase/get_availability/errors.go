package get_availability

import "errors"

var (
	// ErrInvalidQuery возвращается при отсутствующей или некорректной дате либо слоте
	ErrInvalidQuery = errors.New("invalid availability query")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
