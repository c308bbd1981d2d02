package add_availability

import (
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// AddTemplateRequest HTTP request model. weekday: 0 - понедельник ... 6 - воскресенье
type AddTemplateRequest struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "12:00"
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *AddTemplateRequest) ToServiceRequest(professionalID int64) (*models.AddTemplateRequest, error) {
	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &models.AddTemplateRequest{
		ProfessionalID: professionalID,
		Weekday:        r.Weekday,
		StartTime:      start,
		EndTime:        end,
	}, nil
}
