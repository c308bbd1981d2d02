package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// OccupyingStatuses статусы, при которых бронирование занимает слот
var OccupyingStatuses = []BookingStatus{StatusPending, StatusCompleted}

// IsValid проверяет, что статус входит в известный набор
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Booking represents a client's reservation of a professional's service at a date and start time
type Booking struct {
	ID                    int64
	ClientID              int64
	ProfessionalServiceID int64

	// Денормализовано из professional_services на момент создания
	ProfessionalID int64
	ServiceID      int64

	BookingDate time.Time
	StartTime   types.TimeString
	// EndTime фиксируется при создании и не пересчитывается при смене длительности услуги
	EndTime types.TimeString
	Status  BookingStatus

	CancelledAt *time.Time
	CompletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesSlot returns true if the booking blocks its start time for other clients
func (b *Booking) OccupiesSlot() bool {
	return b.Status == StatusPending || b.Status == StatusCompleted
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending
}

// CanBeCompleted returns true if the booking can be marked as completed
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusPending
}

// BookingFilter фильтр для выборки бронирований
type BookingFilter struct {
	ProfessionalID *int64
	ClientID       *int64
	Date           *time.Time
	Statuses       []BookingStatus // пусто - любые статусы
	ForUpdate      bool            // блокировать строки, если хранилище поддерживает
}
