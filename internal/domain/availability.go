package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// TemplateStatus статус шаблона доступности
type TemplateStatus string

const (
	TemplateActive   TemplateStatus = "active"
	TemplateInactive TemplateStatus = "inactive"
)

// AvailabilityTemplate повторяющееся еженедельное окно работы специалиста.
// Weekday: понедельник=0 ... воскресенье=6.
type AvailabilityTemplate struct {
	ID             int64
	ProfessionalID int64
	Weekday        int
	StartTime      types.TimeString
	EndTime        types.TimeString
	Status         TemplateStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsActive returns true if the template takes part in slot generation
func (t *AvailabilityTemplate) IsActive() bool {
	return t.Status == TemplateActive
}

// HasValidInterval проверяет startTime < endTime
func (t *AvailabilityTemplate) HasValidInterval() bool {
	return t.StartTime.Validate() == nil &&
		t.EndTime.Validate() == nil &&
		t.StartTime.IsBefore(t.EndTime)
}
