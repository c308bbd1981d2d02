package slots

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// TemplateRepository источник активных шаблонов доступности
type TemplateRepository interface {
	ListActive(ctx context.Context, professionalID int64, weekday int) ([]*domain.AvailabilityTemplate, error)
}

// BookingRepository источник существующих бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}
