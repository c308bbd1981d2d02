package slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrInvalidDuration длительность услуги должна быть положительной
	ErrInvalidDuration = fmt.Errorf("slots: duration must be positive: %w", domain.ErrInvalidInput)

	// ErrInternal ошибка чтения шаблонов или бронирований
	ErrInternal = errors.New("slots: internal error")
)
