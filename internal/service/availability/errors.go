package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrInvalidInterval startTime должен быть строго раньше endTime
	ErrInvalidInterval = fmt.Errorf("availability: start must be before end: %w", domain.ErrInvalidInterval)

	// ErrInvalidWeekday день недели вне диапазона 0..6
	ErrInvalidWeekday = fmt.Errorf("availability: weekday must be in 0..6: %w", domain.ErrInvalidInput)

	// ErrInvalidTime время не в формате HH:MM
	ErrInvalidTime = fmt.Errorf("availability: time must be HH:MM: %w", domain.ErrInvalidInput)

	// ErrInvalidGranularity шаг разбиения должен быть положительным
	ErrInvalidGranularity = fmt.Errorf("availability: granularity must be positive: %w", domain.ErrInvalidInput)

	ErrProfessionalNotFound = fmt.Errorf("availability: professional %w", domain.ErrNotFound)
	ErrTemplateNotFound     = fmt.Errorf("availability: template %w", domain.ErrNotFound)

	ErrInternal = errors.New("availability: internal error")
)
