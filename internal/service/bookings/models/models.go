package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                    int64      `json:"id"`
	ClientID              int64      `json:"clientId"`
	ProfessionalServiceID int64      `json:"professionalServiceId"`
	ProfessionalID        int64      `json:"professionalId"`
	ServiceID             int64      `json:"serviceId"`
	BookingDate           string     `json:"bookingDate"` // "2025-01-06"
	StartTime             string     `json:"startTime"`   // "10:00"
	EndTime               string     `json:"endTime"`     // "10:30"
	Status                string     `json:"status"`
	CancelledAt           *time.Time `json:"cancelledAt,omitempty"`
	CompletedAt           *time.Time `json:"completedAt,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainBooking конвертирует доменную модель в ответ
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:                    b.ID,
		ClientID:              b.ClientID,
		ProfessionalServiceID: b.ProfessionalServiceID,
		ProfessionalID:        b.ProfessionalID,
		ServiceID:             b.ServiceID,
		BookingDate:           types.FormatDate(b.BookingDate),
		StartTime:             b.StartTime.String(),
		EndTime:               b.EndTime.String(),
		Status:                string(b.Status),
		CancelledAt:           b.CancelledAt,
		CompletedAt:           b.CompletedAt,
		CreatedAt:             b.CreatedAt,
		UpdatedAt:             b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}
