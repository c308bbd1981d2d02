package booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("booking.repository: %w", domain.ErrNotFound)

	// ErrSlotTaken возвращается при нарушении уникальности активного слота специалиста
	ErrSlotTaken = fmt.Errorf("booking.repository: %w", domain.ErrSlotUnavailable)

	// ErrReferenceNotFound возвращается, когда клиент или связь специалист-услуга не существует
	ErrReferenceNotFound = fmt.Errorf("booking.repository: referenced row: %w", domain.ErrNotFound)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
