package domain

import "github.com/m04kA/SMC-SalonBooking/pkg/types"

// AvailableSlot время начала, на которое можно записаться, и конец услуги при записи на него
type AvailableSlot struct {
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
}
