package bulk_create_availability

import (
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// BulkCreateRequest HTTP request model.
// Диапазон даты режется на окна по granularityMinutes (по умолчанию из конфигурации).
type BulkCreateRequest struct {
	Date               string `json:"date"`      // "2025-01-06"
	StartTime          string `json:"startTime"` // "09:00"
	EndTime            string `json:"endTime"`   // "18:00"
	GranularityMinutes int    `json:"granularityMinutes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *BulkCreateRequest) ToServiceRequest(professionalID int64) (*models.BulkCreateRequest, error) {
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &models.BulkCreateRequest{
		ProfessionalID:     professionalID,
		Date:               date,
		StartTime:          start,
		EndTime:            end,
		GranularityMinutes: r.GranularityMinutes,
	}, nil
}
