package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("booking %w", domain.ErrNotFound)

	// ErrAccessDenied бронирование принадлежит другому клиенту или специалисту
	ErrAccessDenied = fmt.Errorf("booking access denied: %w", domain.ErrForbidden)

	// ErrCannotCancel отменить можно только ожидающее бронирование
	ErrCannotCancel = fmt.Errorf("booking cannot be cancelled: %w", domain.ErrInvalidState)

	// ErrCannotComplete завершить можно только ожидающее бронирование
	ErrCannotComplete = fmt.Errorf("booking cannot be completed: %w", domain.ErrInvalidState)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("bookings: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
